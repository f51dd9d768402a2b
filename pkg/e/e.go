package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")

	// 400 Bad Request
	ErrStatusBadRequest       = fmt.Errorf("bad request")
	ErrInvalidJSON            = fmt.Errorf("invalid json body")
	ErrProductNameRequired    = fmt.Errorf("product name is required")
	ErrProductTypeRequired    = fmt.Errorf("product type is required")
	ErrInvalidProductType     = fmt.Errorf("invalid product type")
	ErrSellingStatusRequired  = fmt.Errorf("product selling status is required")
	ErrInvalidSellingStatus   = fmt.Errorf("invalid product selling status")
	ErrPriceMustBePositive    = fmt.Errorf("price must be positive")
	ErrInvalidPrice           = fmt.Errorf("invalid price")
	ErrPricePrecision         = fmt.Errorf("price must be a whole number")
	ErrProductNumbersRequired = fmt.Errorf("product numbers are required")
	ErrProductNumberRequired  = fmt.Errorf("product number is required")
	ErrInvalidQuantity        = fmt.Errorf("quantity must not be negative")
	ErrNotStockTracked        = fmt.Errorf("product type is not stock tracked")
	ErrInvalidOrderStatus     = fmt.Errorf("invalid order status")
	ErrInvalidDateRange       = fmt.Errorf("invalid date range")
	ErrInvalidOrderID         = fmt.Errorf("invalid order id")
	ErrEmailRequired          = fmt.Errorf("email is required")

	// 404 Not Found
	ErrProductNotFound = fmt.Errorf("product not found")
	ErrStockNotFound   = fmt.Errorf("stock not found")
	ErrOrderNotFound   = fmt.Errorf("order not found")

	// 409 Conflict
	ErrInsufficientStock  = fmt.Errorf("insufficient stock")
	ErrProductNumberTaken = fmt.Errorf("product number already taken")
	ErrEventAlreadyExists = fmt.Errorf("event already exists")

	// 500
	ErrMailSendFailed       = fmt.Errorf("mail send failed")
	ErrInternalServerError  = fmt.Errorf("internal server error")
	ErrServiceUnavailable   = fmt.Errorf("service unavailable")
	ErrUnexpectedCacheValue = fmt.Errorf("unexpected cache value")
)

// InsufficientStockError описывает нехватку остатка по конкретному товару.
// Совпадает с ErrInsufficientStock при проверке через errors.Is.
type InsufficientStockError struct {
	ProductNumber string
	Requested     int64
	Available     int64
}

func (s *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: product %s requested %d, available %d",
		ErrInsufficientStock.Error(), s.ProductNumber, s.Requested, s.Available)
}

func (s *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

func NewInsufficientStockError(productNumber string, requested, available int64) *InsufficientStockError {
	return &InsufficientStockError{
		ProductNumber: productNumber,
		Requested:     requested,
		Available:     available,
	}
}

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
