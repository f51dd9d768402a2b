package domain

import "github.com/DRSN-tech/cafe-backend/pkg/e"

// OrderStatus описывает статус заказа
type OrderStatus string

const (
	OrderStatusInit             OrderStatus = "INIT"
	OrderStatusCanceled         OrderStatus = "CANCELED"
	OrderStatusPaymentCompleted OrderStatus = "PAYMENT_COMPLETED"
	OrderStatusPaymentFailed    OrderStatus = "PAYMENT_FAILED"
	OrderStatusReceived         OrderStatus = "RECEIVED"
	OrderStatusCompleted        OrderStatus = "COMPLETED"
)

var orderStatusTexts = map[OrderStatus]string{
	OrderStatusInit:             "Order created",
	OrderStatusCanceled:         "Canceled",
	OrderStatusPaymentCompleted: "Payment completed",
	OrderStatusPaymentFailed:    "Payment failed",
	OrderStatusReceived:         "Order received",
	OrderStatusCompleted:        "Completed",
}

func (s OrderStatus) Text() string {
	return orderStatusTexts[s]
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if _, ok := orderStatusTexts[status]; !ok {
		return "", e.ErrInvalidOrderStatus
	}

	return status, nil
}
