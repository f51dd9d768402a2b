package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/DRSN-tech/cafe-backend/internal/usecase"
	"github.com/DRSN-tech/cafe-backend/pkg/e"
	"github.com/DRSN-tech/cafe-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const dateLayout = time.DateOnly

type OrderHandler struct {
	orderUsecase      usecase.OrderUC
	statisticsUsecase usecase.OrderStatisticsUC
	logger            logger.Logger
	now               func() time.Time
}

func NewOrderHandler(orderUsecase usecase.OrderUC, statisticsUsecase usecase.OrderStatisticsUC, logger logger.Logger) *OrderHandler {
	return &OrderHandler{
		orderUsecase:      orderUsecase,
		statisticsUsecase: statisticsUsecase,
		logger:            logger,
		now:               time.Now,
	}
}

// createOrder
//
//	@Summary		Создание заказа
//	@Description	Создает заказ из номеров товаров и списывает остатки учитываемых товаров
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			request	body		createOrderRequest					true	"Номера товаров, повторы допускаются"
//	@Success		201		{object}	ApiResponse{data=orderResponse}
//	@Failure		400		{object}	ApiResponse	"Пустой список товаров"
//	@Failure		409		{object}	ApiResponse	"Недостаточно остатка"
//	@Router			/orders/new [post]
func (o *OrderHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		o.logger.Warnf("%d %s: %v", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err)
		WriteError(w, err)
		return
	}

	if len(req.ProductNumbers) == 0 {
		WriteError(w, e.ErrProductNumbersRequired)
		return
	}

	order, err := o.orderUsecase.CreateOrder(r.Context(), usecase.NewCreateOrderReq(req.ProductNumbers, o.now()))
	if err != nil {
		o.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, newOrderResponse(order))
}

// findOrders
//
//	@Summary		Поиск заказов
//	@Description	Заказы с указанным статусом, зарегистрированные в интервале [from, to)
//	@Tags			orders
//	@Produce		json
//	@Param			from	query		string	true	"Начало интервала, RFC3339 или YYYY-MM-DD"
//	@Param			to		query		string	true	"Конец интервала, RFC3339 или YYYY-MM-DD"
//	@Param			status	query		string	true	"Статус заказа"	example(PAYMENT_COMPLETED)
//	@Success		200		{object}	ApiResponse{data=[]orderResponse}
//	@Failure		400		{object}	ApiResponse
//	@Router			/orders [get]
func (o *OrderHandler) findOrders(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	from, err := parseTime(query.Get("from"))
	if err != nil {
		WriteError(w, err)
		return
	}
	to, err := parseTime(query.Get("to"))
	if err != nil {
		WriteError(w, err)
		return
	}

	orders, err := o.orderUsecase.FindOrdersBy(r.Context(), &usecase.FindOrdersReq{
		From:   from,
		To:     to,
		Status: query.Get("status"),
	})
	if err != nil {
		o.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	res := make([]orderResponse, 0, len(orders))
	for i := range orders {
		res = append(res, newOrderResponse(&orders[i]))
	}

	WriteSuccess(w, http.StatusOK, res)
}

// changeOrderStatus
//
//	@Summary		Смена статуса заказа
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int							true	"ID заказа"
//	@Param			request	body		changeOrderStatusRequest	true	"Новый статус"
//	@Success		200		{object}	ApiResponse
//	@Failure		400		{object}	ApiResponse
//	@Failure		404		{object}	ApiResponse
//	@Router			/orders/{id}/status [patch]
func (o *OrderHandler) changeOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		WriteError(w, e.Wrap(whereami.WhereAmI(), e.ErrInvalidOrderID))
		return
	}

	var req changeOrderStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	if err := o.orderUsecase.ChangeOrderStatus(r.Context(), &usecase.ChangeOrderStatusReq{ID: id, Status: req.Status}); err != nil {
		o.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, nil)
}

// sendOrderStatisticsMail
//
//	@Summary		Письмо со статистикой продаж
//	@Description	Считает выручку по оплаченным заказам за день и отправляет письмо
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			request	body		orderStatisticsRequest	true	"Дата и адрес"
//	@Success		200		{object}	ApiResponse
//	@Failure		400		{object}	ApiResponse
//	@Router			/orders/statistics/mail [post]
func (o *OrderHandler) sendOrderStatisticsMail(w http.ResponseWriter, r *http.Request) {
	var req orderStatisticsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	date, err := time.ParseInLocation(dateLayout, req.OrderDate, time.Local)
	if err != nil {
		WriteError(w, e.Wrap(req.OrderDate, e.ErrStatusBadRequest))
		return
	}

	if err := o.statisticsUsecase.SendOrderStatisticsMail(r.Context(), &usecase.OrderStatisticsReq{OrderDate: date, Email: req.Email}); err != nil {
		o.logger.Errorf(err, "failed to send order statistics for %s", req.OrderDate)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, nil)
}

// parseTime принимает RFC3339 или дату без времени (начало дня по локальному времени).
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(dateLayout, s, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, e.Wrap(s, e.ErrInvalidDateRange)
}
