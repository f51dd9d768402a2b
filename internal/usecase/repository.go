package usecase

import (
	"context"
	"time"

	"github.com/DRSN-tech/cafe-backend/internal/domain"
)

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	// FindLatestProductNumber возвращает "" для пустого каталога.
	FindLatestProductNumber(ctx context.Context) (string, error)
	FindAllBySellingStatusIn(ctx context.Context, statuses []domain.SellingStatus) ([]domain.Product, error)
	// FindAllByProductNumberIn возвращает по одной записи на найденный номер, ненайденные пропускаются.
	FindAllByProductNumberIn(ctx context.Context, numbers []string) ([]domain.Product, error)
}

type StockRepository interface {
	// FindAllByProductNumberInForUpdate блокирует строки остатков до конца транзакции.
	FindAllByProductNumberInForUpdate(ctx context.Context, numbers []string) ([]domain.Stock, error)
	// Decrease возвращает *e.InsufficientStockError, если остатка не хватает.
	Decrease(ctx context.Context, productNumber string, quantity int64) error
	Upsert(ctx context.Context, stock *domain.Stock) (*domain.Stock, error)
	FindByProductNumber(ctx context.Context, productNumber string) (*domain.Stock, error)
}

type OrderRepository interface {
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	// FindOrdersBy ищет заказы с from <= registered_at < to и указанным статусом.
	FindOrdersBy(ctx context.Context, from, to time.Time, status domain.OrderStatus) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error
}

type MailHistoryRepository interface {
	Save(ctx context.Context, history *domain.MailHistory) (*domain.MailHistory, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
	MarkAsPending(ctx context.Context, id int64) error
	MarkAsFailed(ctx context.Context, id int64) error
}

type CacheRepository interface {
	GetProducts(ctx context.Context, numbers []string) (map[string]ProductInfo, error)
	SetProducts(ctx context.Context, products []ProductInfo) error
	DeleteProducts(ctx context.Context, numbers []string) error
	// GetSellingProducts возвращает found=false при промахе кэша.
	GetSellingProducts(ctx context.Context) (products []ProductInfo, found bool, err error)
	SetSellingProducts(ctx context.Context, products []ProductInfo) error
	DeleteSellingProducts(ctx context.Context) error
}

type ReportRepository interface {
	Upload(ctx context.Context, object *domain.Object) (string, error)
}
