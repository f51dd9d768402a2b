package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DRSN-tech/cafe-backend/internal/usecase"
	"github.com/DRSN-tech/cafe-backend/pkg/e"
	"github.com/DRSN-tech/cafe-backend/pkg/logger"
	"github.com/DRSN-tech/cafe-backend/pkg/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type mockProductUC struct{ mock.Mock }

func (m *mockProductUC) CreateProduct(ctx context.Context, req *usecase.CreateProductReq) (*usecase.ProductInfo, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*usecase.ProductInfo)
	return res, args.Error(1)
}

func (m *mockProductUC) GetSellingProducts(ctx context.Context) (*usecase.GetSellingProductsRes, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).(*usecase.GetSellingProductsRes)
	return res, args.Error(1)
}

func (m *mockProductUC) GetProductsInfo(ctx context.Context, req *usecase.GetProductsReq) (*usecase.GetProductsRes, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*usecase.GetProductsRes)
	return res, args.Error(1)
}

type mockOrderUC struct{ mock.Mock }

func (m *mockOrderUC) CreateOrder(ctx context.Context, req *usecase.CreateOrderReq) (*usecase.OrderRes, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*usecase.OrderRes)
	return res, args.Error(1)
}

func (m *mockOrderUC) FindOrdersBy(ctx context.Context, req *usecase.FindOrdersReq) ([]usecase.OrderRes, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).([]usecase.OrderRes)
	return res, args.Error(1)
}

func (m *mockOrderUC) ChangeOrderStatus(ctx context.Context, req *usecase.ChangeOrderStatusReq) error {
	return m.Called(ctx, req).Error(0)
}

type mockStockUC struct{ mock.Mock }

func (m *mockStockUC) RegisterStock(ctx context.Context, req *usecase.RegisterStockReq) (*usecase.StockRes, error) {
	args := m.Called(ctx, req)
	res, _ := args.Get(0).(*usecase.StockRes)
	return res, args.Error(1)
}

func (m *mockStockUC) GetStock(ctx context.Context, productNumber string) (*usecase.StockRes, error) {
	args := m.Called(ctx, productNumber)
	res, _ := args.Get(0).(*usecase.StockRes)
	return res, args.Error(1)
}

type mockMailUC struct{ mock.Mock }

func (m *mockMailUC) SendMail(ctx context.Context, req *usecase.SendMailReq) (bool, error) {
	args := m.Called(ctx, req)
	return args.Bool(0), args.Error(1)
}

type mockStatisticsUC struct{ mock.Mock }

func (m *mockStatisticsUC) SendOrderStatisticsMail(ctx context.Context, req *usecase.OrderStatisticsReq) error {
	return m.Called(ctx, req).Error(0)
}

type HandlersSuite struct {
	suite.Suite

	product    *mockProductUC
	order      *mockOrderUC
	stock      *mockStockUC
	mail       *mockMailUC
	statistics *mockStatisticsUC
	mux        *chi.Mux
}

func TestHandlersSuite(t *testing.T) {
	suite.Run(t, new(HandlersSuite))
}

func (s *HandlersSuite) SetupTest() {
	s.product = new(mockProductUC)
	s.order = new(mockOrderUC)
	s.stock = new(mockStockUC)
	s.mail = new(mockMailUC)
	s.statistics = new(mockStatisticsUC)

	s.mux = chi.NewMux()
	log := logger.NewSlogLoggerWithWriter(io.Discard, slog.LevelError)
	m := metrics.NewServerMetrics("http", prometheus.NewRegistry())
	NewRouter(s.mux, log, m, "/swagger/doc.json").Init(UseCases{
		Product:    s.product,
		Order:      s.order,
		Stock:      s.stock,
		Mail:       s.mail,
		Statistics: s.statistics,
	})
}

func (s *HandlersSuite) do(method, target, body string) (*httptest.ResponseRecorder, ApiResponse) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)

	var res ApiResponse
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &res))
	}
	return rec, res
}

func (s *HandlersSuite) TestCreateProduct() {
	s.product.On("CreateProduct", mock.Anything, usecase.NewCreateProductReq("HANDMADE", "SELLING", "Americano", 4000)).
		Return(&usecase.ProductInfo{ID: 1, ProductNumber: "001", Type: "HANDMADE", SellingStatus: "SELLING", Name: "Americano", Price: 4000}, nil)

	rec, res := s.do(http.MethodPost, "/api/v1/products/new",
		`{"type":"HANDMADE","sellingStatus":"SELLING","name":"Americano","price":"4000.00"}`)

	s.Equal(http.StatusCreated, rec.Code)
	s.Equal(http.StatusCreated, res.Code)
	s.Equal("CREATED", res.Status)
	data := res.Data.(map[string]any)
	s.Equal("001", data["productNumber"])
	s.Equal(float64(4000), data["price"])
}

func (s *HandlersSuite) TestCreateProduct_BadInput() {
	rec, res := s.do(http.MethodPost, "/api/v1/products/new", `{"type":"HANDMADE","name":"Tea","price":12.5}`)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(e.ErrPricePrecision.Error(), res.Message)

	rec, res = s.do(http.MethodPost, "/api/v1/products/new", `{"type":`)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(e.ErrInvalidJSON.Error(), res.Message)

	s.product.AssertNotCalled(s.T(), "CreateProduct", mock.Anything, mock.Anything)
}

func (s *HandlersSuite) TestGetSellingProducts() {
	s.product.On("GetSellingProducts", mock.Anything).Return(&usecase.GetSellingProductsRes{
		Products: []usecase.ProductInfo{{ProductNumber: "001"}, {ProductNumber: "002"}},
	}, nil)

	rec, res := s.do(http.MethodGet, "/api/v1/products/selling", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Len(res.Data, 2)
}

func (s *HandlersSuite) TestGetProductsInfo() {
	s.product.On("GetProductsInfo", mock.Anything, usecase.NewGetProductsReq([]string{"001", "404"})).
		Return(&usecase.GetProductsRes{
			Products:         []usecase.ProductInfo{{ProductNumber: "001"}},
			NotFoundProducts: []string{"404"},
		}, nil)

	rec, res := s.do(http.MethodGet, "/api/v1/products?numbers=001,404", "")
	s.Equal(http.StatusOK, rec.Code)
	data := res.Data.(map[string]any)
	s.Equal([]any{"404"}, data["notFoundProducts"])
}

func (s *HandlersSuite) TestGetProductsInfo_Empty() {
	s.product.On("GetProductsInfo", mock.Anything, mock.MatchedBy(func(req *usecase.GetProductsReq) bool {
		return len(req.Numbers) == 0
	})).Return(nil, e.Wrap("ProductUseCase.GetProductsInfo", e.ErrProductNumbersRequired))

	rec, res := s.do(http.MethodGet, "/api/v1/products?numbers=", "")
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(e.ErrProductNumbersRequired.Error(), res.Message)
}

func (s *HandlersSuite) TestCreateOrder() {
	registeredAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.order.On("CreateOrder", mock.Anything, mock.MatchedBy(func(req *usecase.CreateOrderReq) bool {
		return len(req.ProductNumbers) == 3 && !req.RegisteredAt.IsZero()
	})).Return(&usecase.OrderRes{
		ID:           7,
		Status:       "INIT",
		RegisteredAt: registeredAt,
		TotalPrice:   5000,
		Products: []usecase.OrderProductRes{
			{ProductNumber: "001", Name: "Cola", Price: 1000},
			{ProductNumber: "001", Name: "Cola", Price: 1000},
			{ProductNumber: "002", Name: "Bun", Price: 3000},
		},
	}, nil)

	rec, res := s.do(http.MethodPost, "/api/v1/orders/new", `{"productNumbers":["001","001","002"]}`)
	s.Equal(http.StatusCreated, rec.Code)
	data := res.Data.(map[string]any)
	s.Equal(float64(5000), data["totalPrice"])
	s.Len(data["products"], 3)
}

func (s *HandlersSuite) TestCreateOrder_EmptyList() {
	rec, res := s.do(http.MethodPost, "/api/v1/orders/new", `{"productNumbers":[]}`)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(e.ErrProductNumbersRequired.Error(), res.Message)
	s.order.AssertNotCalled(s.T(), "CreateOrder", mock.Anything, mock.Anything)
}

func (s *HandlersSuite) TestCreateOrder_InsufficientStock() {
	s.order.On("CreateOrder", mock.Anything, mock.Anything).
		Return(nil, e.Wrap("OrderUseCase.CreateOrder", e.NewInsufficientStockError("001", 3, 2)))

	rec, res := s.do(http.MethodPost, "/api/v1/orders/new", `{"productNumbers":["001","001","001"]}`)
	s.Equal(http.StatusConflict, rec.Code)
	s.Equal("CONFLICT", res.Status)
	s.Contains(res.Message, "product 001")
}

func (s *HandlersSuite) TestFindOrders() {
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)
	s.order.On("FindOrdersBy", mock.Anything, &usecase.FindOrdersReq{From: from, To: to, Status: "INIT"}).
		Return([]usecase.OrderRes{{ID: 1, Status: "INIT"}}, nil)

	rec, res := s.do(http.MethodGet, "/api/v1/orders?from=2024-05-01T00:00:00Z&to=2024-05-02T00:00:00Z&status=INIT", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Len(res.Data, 1)

	rec, _ = s.do(http.MethodGet, "/api/v1/orders?from=yesterday&to=2024-05-02&status=INIT", "")
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlersSuite) TestChangeOrderStatus() {
	s.order.On("ChangeOrderStatus", mock.Anything, &usecase.ChangeOrderStatusReq{ID: 5, Status: "COMPLETED"}).
		Return(e.ErrOrderNotFound)

	rec, _ := s.do(http.MethodPatch, "/api/v1/orders/5/status", `{"status":"COMPLETED"}`)
	s.Equal(http.StatusNotFound, rec.Code)

	rec, res := s.do(http.MethodPatch, "/api/v1/orders/abc/status", `{"status":"COMPLETED"}`)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(e.ErrInvalidOrderID.Error(), res.Message)
}

func (s *HandlersSuite) TestSendOrderStatisticsMail() {
	date := time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local)
	s.statistics.On("SendOrderStatisticsMail", mock.Anything, &usecase.OrderStatisticsReq{OrderDate: date, Email: "owner@cafe.local"}).
		Return(nil)

	rec, _ := s.do(http.MethodPost, "/api/v1/orders/statistics/mail", `{"orderDate":"2024-03-05","email":"owner@cafe.local"}`)
	s.Equal(http.StatusOK, rec.Code)

	rec, _ = s.do(http.MethodPost, "/api/v1/orders/statistics/mail", `{"orderDate":"05.03.2024","email":"owner@cafe.local"}`)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlersSuite) TestStocks() {
	s.stock.On("RegisterStock", mock.Anything, &usecase.RegisterStockReq{ProductNumber: "002", Quantity: 10}).
		Return(&usecase.StockRes{ProductNumber: "002", Quantity: 10}, nil)
	s.stock.On("GetStock", mock.Anything, "009").Return(nil, e.ErrStockNotFound)

	rec, res := s.do(http.MethodPost, "/api/v1/stocks", `{"productNumber":"002","quantity":10}`)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(float64(10), res.Data.(map[string]any)["quantity"])

	rec, _ = s.do(http.MethodGet, "/api/v1/stocks/009", "")
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *HandlersSuite) TestSendMail() {
	s.mail.On("SendMail", mock.Anything, usecase.NewSendMailReq("a@cafe.local", "b@cafe.local", "hi", "hello")).
		Return(true, nil)

	rec, res := s.do(http.MethodPost, "/api/v1/mail", `{"from":"a@cafe.local","to":"b@cafe.local","subject":"hi","content":"hello"}`)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(true, res.Data.(map[string]any)["sent"])
}

func (s *HandlersSuite) TestHealthAndMetrics() {
	rec, res := s.do(http.MethodGet, "/health", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("UP", res.Data.(map[string]any)["status"])

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	metricsRec := httptest.NewRecorder()
	s.mux.ServeHTTP(metricsRec, req)
	s.Equal(http.StatusOK, metricsRec.Code)
	s.Contains(metricsRec.Body.String(), `cafe_http_http_requests_total{method="GET",route="/health",status="200"} 1`)
}
