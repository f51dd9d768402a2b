package usecase

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/DRSN-tech/cafe-backend/internal/domain"
	"github.com/DRSN-tech/cafe-backend/pkg/e"
	"github.com/DRSN-tech/cafe-backend/pkg/logger"
	"github.com/stretchr/testify/mock"
)

func testLogger() logger.Logger {
	return logger.NewSlogLoggerWithWriter(io.Discard, slog.LevelError)
}

// memStore хранилище в памяти. Транзакции выполняются по одной, при ошибке состояние откатывается.
type memStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	products map[string]domain.Product
	stocks   map[string]int64
	orders   []domain.Order
	outbox   []*OutboxEvent
	history  []domain.MailHistory
	nextID   int64

	decreaseCalls int
	saveErr       error
	createErrs    []error
}

func newMemStore() *memStore {
	return &memStore{
		products: make(map[string]domain.Product),
		stocks:   make(map[string]int64),
	}
}

func (s *memStore) addProduct(number string, t domain.ProductType, price int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.products[number] = domain.Product{
		ID:            s.nextID,
		ProductNumber: number,
		Type:          t,
		SellingStatus: domain.SellingStatusSelling,
		Name:          "product " + number,
		Price:         price,
	}
}

func (s *memStore) setStock(number string, q int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stocks[number] = q
}

func (s *memStore) stock(number string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stocks[number]
}

func (s *memStore) orderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

func (s *memStore) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	stocks := make(map[string]int64, len(s.stocks))
	for k, v := range s.stocks {
		stocks[k] = v
	}
	products := make(map[string]domain.Product, len(s.products))
	for k, v := range s.products {
		products[k] = v
	}
	orders, outbox := len(s.orders), len(s.outbox)
	s.mu.Unlock()

	err := fn(ctx)
	if err != nil {
		s.mu.Lock()
		s.stocks = stocks
		s.products = products
		s.orders = s.orders[:orders]
		s.outbox = s.outbox[:outbox]
		s.mu.Unlock()
	}

	return err
}

type fakeProductRepo struct{ s *memStore }

func (r fakeProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if len(r.s.createErrs) > 0 {
		err := r.s.createErrs[0]
		r.s.createErrs = r.s.createErrs[1:]
		return nil, err
	}
	if _, ok := r.s.products[p.ProductNumber]; ok {
		return nil, e.ErrProductNumberTaken
	}

	r.s.nextID++
	created := *p
	created.ID = r.s.nextID
	created.CreatedAt = time.Now()
	r.s.products[p.ProductNumber] = created
	return &created, nil
}

func (r fakeProductRepo) FindLatestProductNumber(context.Context) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	latest := ""
	for n := range r.s.products {
		if n > latest {
			latest = n
		}
	}
	return latest, nil
}

func (r fakeProductRepo) FindAllBySellingStatusIn(_ context.Context, statuses []domain.SellingStatus) ([]domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var result []domain.Product
	for _, p := range r.s.products {
		for _, st := range statuses {
			if p.SellingStatus == st {
				result = append(result, p)
			}
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ProductNumber < result[j].ProductNumber })
	return result, nil
}

func (r fakeProductRepo) FindAllByProductNumberIn(_ context.Context, numbers []string) ([]domain.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var result []domain.Product
	for _, n := range numbers {
		if p, ok := r.s.products[n]; ok {
			result = append(result, p)
		}
	}
	return result, nil
}

type fakeStockRepo struct{ s *memStore }

func (r fakeStockRepo) FindAllByProductNumberInForUpdate(_ context.Context, numbers []string) ([]domain.Stock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var result []domain.Stock
	for _, n := range numbers {
		if q, ok := r.s.stocks[n]; ok {
			result = append(result, domain.Stock{ProductNumber: n, Quantity: q})
		}
	}
	return result, nil
}

func (r fakeStockRepo) Decrease(_ context.Context, number string, quantity int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.decreaseCalls++
	stock := domain.NewStock(number, r.s.stocks[number])
	if err := stock.Decrease(quantity); err != nil {
		return err
	}
	r.s.stocks[number] = stock.Quantity
	return nil
}

func (r fakeStockRepo) Upsert(_ context.Context, stock *domain.Stock) (*domain.Stock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.stocks[stock.ProductNumber] = stock.Quantity
	return stock, nil
}

func (r fakeStockRepo) FindByProductNumber(_ context.Context, number string) (*domain.Stock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	q, ok := r.s.stocks[number]
	if !ok {
		return nil, e.ErrStockNotFound
	}
	return domain.NewStock(number, q), nil
}

type fakeOrderRepo struct{ s *memStore }

func (r fakeOrderRepo) Save(_ context.Context, order *domain.Order) (*domain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.saveErr != nil {
		return nil, r.s.saveErr
	}

	r.s.nextID++
	saved := *order
	saved.ID = r.s.nextID
	saved.Lines = make([]domain.OrderLine, len(order.Lines))
	for i, l := range order.Lines {
		r.s.nextID++
		l.ID = r.s.nextID
		l.OrderID = saved.ID
		saved.Lines[i] = l
	}
	r.s.orders = append(r.s.orders, saved)
	return &saved, nil
}

func (r fakeOrderRepo) FindOrdersBy(_ context.Context, from, to time.Time, status domain.OrderStatus) ([]domain.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var result []domain.Order
	for _, o := range r.s.orders {
		if o.Status == status && !o.RegisteredAt.Before(from) && o.RegisteredAt.Before(to) {
			result = append(result, o)
		}
	}
	return result, nil
}

func (r fakeOrderRepo) UpdateStatus(_ context.Context, id int64, status domain.OrderStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.orders {
		if r.s.orders[i].ID == id {
			r.s.orders[i].Status = status
			return nil
		}
	}
	return e.ErrOrderNotFound
}

type fakeOutboxRepo struct{ s *memStore }

func (r fakeOutboxRepo) Create(_ context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextID++
	created := *event
	created.ID = r.s.nextID
	r.s.outbox = append(r.s.outbox, &created)
	return &created, nil
}

func (r fakeOutboxRepo) GetAndMarkAsProcessing(context.Context, int) ([]*OutboxEvent, error) {
	return nil, nil
}

func (r fakeOutboxRepo) MarkAsProcessed(context.Context, int64) error {
	return nil
}

func (r fakeOutboxRepo) MarkAsPending(context.Context, int64) error {
	return nil
}

func (r fakeOutboxRepo) MarkAsFailed(context.Context, int64) error {
	return nil
}

type fakeProducer struct{}

func (fakeProducer) GetPayloadBytes(req *WriteMessageReq) ([]byte, error) {
	return []byte(req.EventID), nil
}

func (fakeProducer) WriteRawMessage(context.Context, *WriteRawMessageReq) error {
	return nil
}

type mockCacheRepo struct {
	mock.Mock
}

func (m *mockCacheRepo) GetProducts(ctx context.Context, numbers []string) (map[string]ProductInfo, error) {
	args := m.Called(ctx, numbers)
	res, _ := args.Get(0).(map[string]ProductInfo)
	return res, args.Error(1)
}

func (m *mockCacheRepo) SetProducts(ctx context.Context, products []ProductInfo) error {
	return m.Called(ctx, products).Error(0)
}

func (m *mockCacheRepo) DeleteProducts(ctx context.Context, numbers []string) error {
	return m.Called(ctx, numbers).Error(0)
}

func (m *mockCacheRepo) GetSellingProducts(ctx context.Context) ([]ProductInfo, bool, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).([]ProductInfo)
	return res, args.Bool(1), args.Error(2)
}

func (m *mockCacheRepo) SetSellingProducts(ctx context.Context, products []ProductInfo) error {
	return m.Called(ctx, products).Error(0)
}

func (m *mockCacheRepo) DeleteSellingProducts(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockMailClient struct {
	mock.Mock
}

func (m *mockMailClient) SendMail(ctx context.Context, req *SendMailReq) (bool, error) {
	args := m.Called(ctx, req)
	return args.Bool(0), args.Error(1)
}

type fakeMailHistoryRepo struct{ s *memStore }

func (r fakeMailHistoryRepo) Save(_ context.Context, h *domain.MailHistory) (*domain.MailHistory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextID++
	saved := *h
	saved.ID = r.s.nextID
	r.s.history = append(r.s.history, saved)
	return &saved, nil
}

type mockReportsInfra struct {
	mock.Mock
}

func (m *mockReportsInfra) ArchiveReport(report *domain.SalesReport) {
	m.Called(report)
}
