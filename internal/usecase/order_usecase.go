package usecase

import (
	"context"
	"sort"

	"github.com/DRSN-tech/cafe-backend/internal/domain"
	"github.com/DRSN-tech/cafe-backend/pkg/e"
	"github.com/DRSN-tech/cafe-backend/pkg/logger"
	"github.com/google/uuid"
)

// OrderUseCase реализует создание заказов, их поиск и смену статуса.
type OrderUseCase struct {
	productRepo ProductRepository
	stockRepo   StockRepository
	orderRepo   OrderRepository
	outboxRepo  OutboxRepository
	producer    MessageProducer
	txManager   TxManager
	logger      logger.Logger
}

func NewOrderUC(
	productRepo ProductRepository,
	stockRepo StockRepository,
	orderRepo OrderRepository,
	outboxRepo OutboxRepository,
	producer MessageProducer,
	txManager TxManager,
	logger logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		productRepo: productRepo,
		stockRepo:   stockRepo,
		orderRepo:   orderRepo,
		outboxRepo:  outboxRepo,
		producer:    producer,
		txManager:   txManager,
		logger:      logger,
	}
}

// CreateOrder создаёт заказ из номеров товаров. Проверка и списание остатков, сохранение заказа
// и запись события выполняются в одной транзакции: при нехватке остатка хотя бы по одному товару
// заказ не создаётся и остатки не меняются.
func (o *OrderUseCase) CreateOrder(ctx context.Context, req *CreateOrderReq) (*OrderRes, error) {
	const op = "OrderUseCase.CreateOrder"

	var saved *domain.Order
	err := o.txManager.Do(ctx, func(ctx context.Context) error {
		products, err := o.findProductsBy(ctx, req.ProductNumbers)
		if err != nil {
			return err
		}

		if err := o.deductStockQuantities(ctx, products); err != nil {
			return err
		}

		saved, err = o.orderRepo.Save(ctx, domain.NewOrder(products, req.RegisteredAt))
		if err != nil {
			return err
		}

		return o.writeOrderCreatedEvent(ctx, saved)
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	o.logger.Infof("order %d created: %d lines, total %d", saved.ID, len(saved.Lines), saved.TotalPrice)
	return NewOrderRes(saved), nil
}

// findProductsBy возвращает товары по одному на каждый запрошенный номер с сохранением порядка и повторов.
// Номера, которых нет в каталоге, пропускаются.
func (o *OrderUseCase) findProductsBy(ctx context.Context, numbers []string) ([]domain.Product, error) {
	if len(numbers) == 0 {
		return nil, nil
	}

	found, err := o.productRepo.FindAllByProductNumberIn(ctx, distinct(numbers))
	if err != nil {
		return nil, err
	}

	byNumber := make(map[string]domain.Product, len(found))
	for _, p := range found {
		byNumber[p.ProductNumber] = p
	}

	products := make([]domain.Product, 0, len(numbers))
	unmatched := make(map[string]struct{})
	for _, n := range numbers {
		p, ok := byNumber[n]
		if !ok {
			unmatched[n] = struct{}{}
			continue
		}
		products = append(products, p)
	}

	for n := range unmatched {
		o.logger.Warnf("product %s not found in catalog, skipped", n)
	}

	return products, nil
}

// deductStockQuantities сначала проверяет остатки всех учитываемых товаров и только потом списывает их.
// Строки остатков блокируются в порядке номеров, чтобы параллельные заказы не взаимоблокировались.
func (o *OrderUseCase) deductStockQuantities(ctx context.Context, products []domain.Product) error {
	counts := make(map[string]int64)
	for _, p := range products {
		if p.IsStockTracked() {
			counts[p.ProductNumber]++
		}
	}

	if len(counts) == 0 {
		return nil
	}

	numbers := make([]string, 0, len(counts))
	for n := range counts {
		numbers = append(numbers, n)
	}
	sort.Strings(numbers)

	stocks, err := o.stockRepo.FindAllByProductNumberInForUpdate(ctx, numbers)
	if err != nil {
		return err
	}

	stockMap := make(map[string]domain.Stock, len(stocks))
	for _, s := range stocks {
		stockMap[s.ProductNumber] = s
	}

	for _, n := range numbers {
		// товар без строки остатка считается закончившимся
		stock, ok := stockMap[n]
		if !ok {
			stock = *domain.NewStock(n, 0)
		}

		if stock.IsQuantityLessThan(counts[n]) {
			return e.NewInsufficientStockError(n, counts[n], stock.Quantity)
		}
	}

	for _, n := range numbers {
		if err := o.stockRepo.Decrease(ctx, n, counts[n]); err != nil {
			return err
		}
	}

	return nil
}

func (o *OrderUseCase) writeOrderCreatedEvent(ctx context.Context, order *domain.Order) error {
	eventID := uuid.NewString()

	payload, err := o.producer.GetPayloadBytes(NewWriteMessageReq(eventID, OrderCreatedEventType, order))
	if err != nil {
		return err
	}

	_, err = o.outboxRepo.Create(ctx, NewOutboxEvent(eventID, OrderCreatedEventType, order.ID, payload))
	return err
}

// FindOrdersBy возвращает заказы с указанным статусом, зарегистрированные в [From, To).
func (o *OrderUseCase) FindOrdersBy(ctx context.Context, req *FindOrdersReq) ([]OrderRes, error) {
	const op = "OrderUseCase.FindOrdersBy"

	if !req.From.Before(req.To) {
		return nil, e.Wrap(op, e.ErrInvalidDateRange)
	}

	status, err := domain.ParseOrderStatus(req.Status)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	orders, err := o.orderRepo.FindOrdersBy(ctx, req.From, req.To, status)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	result := make([]OrderRes, 0, len(orders))
	for i := range orders {
		result = append(result, *NewOrderRes(&orders[i]))
	}

	return result, nil
}

func (o *OrderUseCase) ChangeOrderStatus(ctx context.Context, req *ChangeOrderStatusReq) error {
	const op = "OrderUseCase.ChangeOrderStatus"

	if req.ID <= 0 {
		return e.Wrap(op, e.ErrInvalidOrderID)
	}

	status, err := domain.ParseOrderStatus(req.Status)
	if err != nil {
		return e.Wrap(op, err)
	}

	if err := o.orderRepo.UpdateStatus(ctx, req.ID, status); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

func distinct(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}
