package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/DRSN-tech/cafe-backend/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/shopspring/decimal"
)

const maxRequestBodySize = 1 << 20

// ApiResponse общий конверт всех ответов API.
type ApiResponse struct {
	Code    int    `json:"code"`
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func NewApiResponse(code int, message string, data any) *ApiResponse {
	return &ApiResponse{
		Code:    code,
		Status:  strings.ReplaceAll(strings.ToUpper(http.StatusText(code)), " ", "_"),
		Message: message,
		Data:    data,
	}
}

var badRequestErrors = []error{
	e.ErrStatusBadRequest,
	e.ErrInvalidJSON,
	e.ErrProductNameRequired,
	e.ErrProductTypeRequired,
	e.ErrInvalidProductType,
	e.ErrSellingStatusRequired,
	e.ErrInvalidSellingStatus,
	e.ErrPriceMustBePositive,
	e.ErrInvalidPrice,
	e.ErrPricePrecision,
	e.ErrProductNumbersRequired,
	e.ErrProductNumberRequired,
	e.ErrInvalidQuantity,
	e.ErrNotStockTracked,
	e.ErrInvalidOrderStatus,
	e.ErrInvalidDateRange,
	e.ErrInvalidOrderID,
	e.ErrEmailRequired,
}

var notFoundErrors = []error{
	e.ErrProductNotFound,
	e.ErrStockNotFound,
	e.ErrOrderNotFound,
}

var conflictErrors = []error{
	e.ErrInsufficientStock,
	e.ErrProductNumberTaken,
}

// ToHTTPResponse сопоставляет ошибку с HTTP-статусом и сообщением для клиента.
// Внутренние ошибки наружу не отдаются.
func ToHTTPResponse(err error) (int, string) {
	var stockErr *e.InsufficientStockError
	if errors.As(err, &stockErr) {
		return http.StatusConflict, stockErr.Error()
	}

	if target, ok := matchAny(err, badRequestErrors); ok {
		return http.StatusBadRequest, target.Error()
	}
	if target, ok := matchAny(err, notFoundErrors); ok {
		return http.StatusNotFound, target.Error()
	}
	if target, ok := matchAny(err, conflictErrors); ok {
		return http.StatusConflict, target.Error()
	}

	return http.StatusInternalServerError, e.ErrInternalServerError.Error()
}

func matchAny(err error, targets []error) (error, bool) {
	for _, target := range targets {
		if errors.Is(err, target) {
			return target, true
		}
	}
	return nil, false
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	writeJSON(w, code, NewApiResponse(code, msg, nil))
}

func WriteSuccess(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, NewApiResponse(status, http.StatusText(status), data))
}

func writeJSON(w http.ResponseWriter, status int, body *ApiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// decodeJSON читает тело запроса в dst. Неизвестные поля и несколько JSON-объектов подряд считаются ошибкой.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return e.Wrap(whereami.WhereAmI(), errors.Join(e.ErrInvalidJSON, err))
	}
	if dec.More() {
		return e.Wrap(whereami.WhereAmI(), e.ErrInvalidJSON)
	}

	return nil
}

// parsePrice переводит строку вида "4000" или "4000.00" в целую цену.
// Дробная часть допускается только нулевая.
func parsePrice(s string) (int64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, e.ErrPriceMustBePositive
	}

	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, e.ErrInvalidPrice
	}

	if !d.IsPositive() {
		return 0, e.ErrPriceMustBePositive
	}

	// 1 млрд заведомо больше любой цены в кафе
	maxPrice := decimal.NewFromInt(1_000_000_000)
	if d.GreaterThan(maxPrice) {
		return 0, e.ErrInvalidPrice
	}

	if !d.Equal(d.Truncate(0)) {
		return 0, e.ErrPricePrecision
	}

	return d.IntPart(), nil
}

// parseNumbers разбирает список номеров вида "001,002,,003", пустые элементы отбрасываются.
func parseNumbers(raw string) []string {
	parts := strings.Split(raw, ",")
	numbers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			numbers = append(numbers, p)
		}
	}
	return numbers
}
