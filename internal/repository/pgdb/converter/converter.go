package converter

import (
	"github.com/DRSN-tech/cafe-backend/internal/domain"
	"github.com/DRSN-tech/cafe-backend/internal/usecase"
)

// ProductConverter преобразует сущности Product между domain и моделью PostgreSQL.
type ProductConverter interface {
	ToModel(entity *domain.Product) *ProductModel
	ToEntity(model *ProductModel) *domain.Product
}

// StockConverter преобразует сущности Stock между domain и моделью PostgreSQL.
type StockConverter interface {
	ToModel(entity *domain.Stock) *StockModel
	ToEntity(model *StockModel) *domain.Stock
}

// OrderConverter преобразует заказ с позициями между domain и моделями PostgreSQL.
type OrderConverter interface {
	ToModel(entity *domain.Order) *OrderModel
	ToLineModels(entity *domain.Order) []OrderLineModel
	ToEntity(model *OrderModel, lines []OrderLineModel) *domain.Order
}

type MailHistoryConverter interface {
	ToModel(entity *domain.MailHistory) *MailHistoryModel
	ToEntity(model *MailHistoryModel) *domain.MailHistory
}

// OutboxEventConverter преобразует сущности OutboxEvent между usecase и моделью PostgreSQL.
type OutboxEventConverter interface {
	ToModel(entity *usecase.OutboxEvent) *OutboxEventModel
	ToEntity(model *OutboxEventModel) *usecase.OutboxEvent
	ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent
}

type ProductConverterImpl struct{}

func NewProductConverterImpl() *ProductConverterImpl {
	return &ProductConverterImpl{}
}

func (c *ProductConverterImpl) ToModel(entity *domain.Product) *ProductModel {
	if entity == nil {
		return nil
	}

	return &ProductModel{
		ID:            entity.ID,
		ProductNumber: entity.ProductNumber,
		Type:          string(entity.Type),
		SellingStatus: string(entity.SellingStatus),
		Name:          entity.Name,
		Price:         entity.Price,
		CreatedAt:     entity.CreatedAt,
		UpdatedAt:     entity.UpdatedAt,
	}
}

func (c *ProductConverterImpl) ToEntity(model *ProductModel) *domain.Product {
	if model == nil {
		return nil
	}

	return &domain.Product{
		ID:            model.ID,
		ProductNumber: model.ProductNumber,
		Type:          domain.ProductType(model.Type),
		SellingStatus: domain.SellingStatus(model.SellingStatus),
		Name:          model.Name,
		Price:         model.Price,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

type StockConverterImpl struct{}

func NewStockConverterImpl() *StockConverterImpl {
	return &StockConverterImpl{}
}

func (c *StockConverterImpl) ToModel(entity *domain.Stock) *StockModel {
	if entity == nil {
		return nil
	}

	return &StockModel{
		ID:            entity.ID,
		ProductNumber: entity.ProductNumber,
		Quantity:      entity.Quantity,
	}
}

func (c *StockConverterImpl) ToEntity(model *StockModel) *domain.Stock {
	if model == nil {
		return nil
	}

	return &domain.Stock{
		ID:            model.ID,
		ProductNumber: model.ProductNumber,
		Quantity:      model.Quantity,
	}
}

type OrderConverterImpl struct{}

func NewOrderConverterImpl() *OrderConverterImpl {
	return &OrderConverterImpl{}
}

func (c *OrderConverterImpl) ToModel(entity *domain.Order) *OrderModel {
	if entity == nil {
		return nil
	}

	return &OrderModel{
		ID:           entity.ID,
		Status:       string(entity.Status),
		TotalPrice:   entity.TotalPrice,
		RegisteredAt: entity.RegisteredAt,
		CreatedAt:    entity.CreatedAt,
		UpdatedAt:    entity.UpdatedAt,
	}
}

func (c *OrderConverterImpl) ToLineModels(entity *domain.Order) []OrderLineModel {
	if entity == nil {
		return nil
	}

	lines := make([]OrderLineModel, 0, len(entity.Lines))
	for _, l := range entity.Lines {
		lines = append(lines, OrderLineModel{
			ID:            l.ID,
			OrderID:       l.OrderID,
			ProductID:     l.ProductID,
			ProductNumber: l.ProductNumber,
			ProductName:   l.ProductName,
			Price:         l.Price,
		})
	}
	return lines
}

func (c *OrderConverterImpl) ToEntity(model *OrderModel, lines []OrderLineModel) *domain.Order {
	if model == nil {
		return nil
	}

	orderLines := make([]domain.OrderLine, 0, len(lines))
	for _, l := range lines {
		orderLines = append(orderLines, domain.OrderLine{
			ID:            l.ID,
			OrderID:       l.OrderID,
			ProductID:     l.ProductID,
			ProductNumber: l.ProductNumber,
			ProductName:   l.ProductName,
			Price:         l.Price,
		})
	}

	return &domain.Order{
		ID:           model.ID,
		Status:       domain.OrderStatus(model.Status),
		TotalPrice:   model.TotalPrice,
		RegisteredAt: model.RegisteredAt,
		Lines:        orderLines,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

type MailHistoryConverterImpl struct{}

func NewMailHistoryConverterImpl() *MailHistoryConverterImpl {
	return &MailHistoryConverterImpl{}
}

func (c *MailHistoryConverterImpl) ToModel(entity *domain.MailHistory) *MailHistoryModel {
	if entity == nil {
		return nil
	}

	return &MailHistoryModel{
		ID:        entity.ID,
		From:      entity.From,
		To:        entity.To,
		Subject:   entity.Subject,
		Content:   entity.Content,
		CreatedAt: entity.CreatedAt,
	}
}

func (c *MailHistoryConverterImpl) ToEntity(model *MailHistoryModel) *domain.MailHistory {
	if model == nil {
		return nil
	}

	return &domain.MailHistory{
		ID:        model.ID,
		From:      model.From,
		To:        model.To,
		Subject:   model.Subject,
		Content:   model.Content,
		CreatedAt: model.CreatedAt,
	}
}

type OutboxEventConverterImpl struct{}

func NewOutboxEventConverterImpl() *OutboxEventConverterImpl {
	return &OutboxEventConverterImpl{}
}

func (c *OutboxEventConverterImpl) ToModel(entity *usecase.OutboxEvent) *OutboxEventModel {
	if entity == nil {
		return nil
	}

	return &OutboxEventModel{
		ID:          entity.ID,
		EventID:     entity.EventID,
		EventType:   entity.EventType,
		OrderID:     entity.OrderID,
		Payload:     entity.Payload,
		Status:      string(entity.Status),
		CreatedAt:   entity.CreatedAt,
		ProcessedAt: entity.ProcessedAt,
	}
}

func (c *OutboxEventConverterImpl) ToEntity(model *OutboxEventModel) *usecase.OutboxEvent {
	if model == nil {
		return nil
	}

	return &usecase.OutboxEvent{
		ID:          model.ID,
		EventID:     model.EventID,
		EventType:   model.EventType,
		OrderID:     model.OrderID,
		Payload:     model.Payload,
		Status:      usecase.OutboxStatus(model.Status),
		CreatedAt:   model.CreatedAt,
		ProcessedAt: model.ProcessedAt,
	}
}

func (c *OutboxEventConverterImpl) ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent {
	result := make([]*usecase.OutboxEvent, 0, len(models))
	for _, m := range models {
		result = append(result, c.ToEntity(m))
	}
	return result
}
