package domain

import "time"

// Order описывает заказ. Сумма заказа всегда равна сумме цен его позиций.
type Order struct {
	ID           int64
	Status       OrderStatus
	TotalPrice   int64
	RegisteredAt time.Time
	Lines        []OrderLine
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// OrderLine одна единица товара в заказе с ценой на момент заказа
type OrderLine struct {
	ID            int64
	OrderID       int64
	ProductID     int64
	ProductNumber string
	ProductName   string
	Price         int64
}

// NewOrder собирает заказ в статусе INIT: по одной позиции на каждый товар из products.
func NewOrder(products []Product, registeredAt time.Time) *Order {
	lines := make([]OrderLine, 0, len(products))
	for _, p := range products {
		lines = append(lines, NewOrderLine(p))
	}

	return &Order{
		Status:       OrderStatusInit,
		TotalPrice:   TotalPrice(lines),
		RegisteredAt: registeredAt,
		Lines:        lines,
	}
}

func NewOrderLine(p Product) OrderLine {
	return OrderLine{
		ProductID:     p.ID,
		ProductNumber: p.ProductNumber,
		ProductName:   p.Name,
		Price:         p.Price,
	}
}

// TotalPrice суммирует цены позиций
func TotalPrice(lines []OrderLine) int64 {
	var total int64
	for _, l := range lines {
		total += l.Price
	}
	return total
}
