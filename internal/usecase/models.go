package usecase

import (
	"time"

	"github.com/DRSN-tech/cafe-backend/internal/domain"
)

// PRODUCT USECASE

// CreateProductReq — запрос на добавление нового товара.
type CreateProductReq struct {
	Type          string
	SellingStatus string
	Name          string
	Price         int64
}

// GetProductsReq — запрос информации о товарах по их номерам.
type GetProductsReq struct {
	Numbers []string
}

// GetProductsRes — найденные товары в порядке запроса и номера, которых нет в каталоге.
type GetProductsRes struct {
	Products         []ProductInfo
	NotFoundProducts []string
}

type GetSellingProductsRes struct {
	Products []ProductInfo
}

// ProductInfo — DTO с информацией о товаре для внешнего использования.
type ProductInfo struct {
	ID            int64
	ProductNumber string
	Type          string
	SellingStatus string
	Name          string
	Price         int64
}

// ORDER USECASE

// CreateOrderReq — номера товаров (с повторами) и время регистрации заказа.
type CreateOrderReq struct {
	ProductNumbers []string
	RegisteredAt   time.Time
}

// OrderRes — проекция заказа только для чтения.
type OrderRes struct {
	ID           int64
	Status       string
	RegisteredAt time.Time
	TotalPrice   int64
	Products     []OrderProductRes
}

type OrderProductRes struct {
	ProductNumber string
	Name          string
	Price         int64
}

type FindOrdersReq struct {
	From   time.Time
	To     time.Time
	Status string
}

type ChangeOrderStatusReq struct {
	ID     int64
	Status string
}

// STOCK USECASE

type RegisterStockReq struct {
	ProductNumber string
	Quantity      int64
}

type StockRes struct {
	ProductNumber string
	Quantity      int64
}

// MAIL USECASE

type SendMailReq struct {
	From    string
	To      string
	Subject string
	Content string
}

// OrderStatisticsReq — дата, за которую считается выручка, и адрес получателя.
type OrderStatisticsReq struct {
	OrderDate time.Time
	Email     string
}

// INFRASTUCTURE

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
	Failed     OutboxStatus = "failed"
)

const OrderCreatedEventType = "order.created"

// OutboxNotifyChannel канал NOTIFY/LISTEN, через который запись в outbox будит воркер.
const OutboxNotifyChannel = "outbox_pending"

// OutboxEvent — событие, записанное в одной транзакции с заказом и ожидающее отправки в Kafka.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   string
	OrderID     int64
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

type WriteMessageReq struct {
	EventID   string
	EventType string
	Order     *domain.Order
}

type WriteRawMessageReq struct {
	OrderID int64
	Payload []byte
}

// MAPPERS

func NewProductInfo(p *domain.Product) ProductInfo {
	return ProductInfo{
		ID:            p.ID,
		ProductNumber: p.ProductNumber,
		Type:          string(p.Type),
		SellingStatus: string(p.SellingStatus),
		Name:          p.Name,
		Price:         p.Price,
	}
}

func NewArrProductInfo(products []domain.Product) []ProductInfo {
	result := make([]ProductInfo, 0, len(products))
	for i := range products {
		result = append(result, NewProductInfo(&products[i]))
	}
	return result
}

func NewGetProductsRes(pr []ProductInfo, notFoundProducts []string) *GetProductsRes {
	return &GetProductsRes{
		Products:         pr,
		NotFoundProducts: notFoundProducts,
	}
}

func NewGetProductsReq(numbers []string) *GetProductsReq {
	return &GetProductsReq{Numbers: numbers}
}

func NewCreateProductReq(productType, sellingStatus, name string, price int64) *CreateProductReq {
	return &CreateProductReq{
		Type:          productType,
		SellingStatus: sellingStatus,
		Name:          name,
		Price:         price,
	}
}

func NewCreateOrderReq(productNumbers []string, registeredAt time.Time) *CreateOrderReq {
	return &CreateOrderReq{
		ProductNumbers: productNumbers,
		RegisteredAt:   registeredAt,
	}
}

func NewOrderRes(order *domain.Order) *OrderRes {
	products := make([]OrderProductRes, 0, len(order.Lines))
	for _, l := range order.Lines {
		products = append(products, OrderProductRes{
			ProductNumber: l.ProductNumber,
			Name:          l.ProductName,
			Price:         l.Price,
		})
	}

	return &OrderRes{
		ID:           order.ID,
		Status:       string(order.Status),
		RegisteredAt: order.RegisteredAt,
		TotalPrice:   order.TotalPrice,
		Products:     products,
	}
}

func NewStockRes(stock *domain.Stock) *StockRes {
	return &StockRes{
		ProductNumber: stock.ProductNumber,
		Quantity:      stock.Quantity,
	}
}

func NewSendMailReq(from, to, subject, content string) *SendMailReq {
	return &SendMailReq{
		From:    from,
		To:      to,
		Subject: subject,
		Content: content,
	}
}

func NewOutboxEvent(eventID, eventType string, orderID int64, payload []byte) *OutboxEvent {
	return &OutboxEvent{
		EventID:   eventID,
		EventType: eventType,
		OrderID:   orderID,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: time.Now().UTC(),
	}
}

func NewWriteMessageReq(eventID, eventType string, order *domain.Order) *WriteMessageReq {
	return &WriteMessageReq{
		EventID:   eventID,
		EventType: eventType,
		Order:     order,
	}
}

func NewWriteRawMessageReq(orderID int64, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		OrderID: orderID,
		Payload: payload,
	}
}
