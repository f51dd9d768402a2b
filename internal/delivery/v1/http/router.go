package http

import (
	"net/http"

	_ "github.com/DRSN-tech/cafe-backend/docs" // Импорт сгенерированных файлов
	"github.com/DRSN-tech/cafe-backend/internal/usecase"
	"github.com/DRSN-tech/cafe-backend/pkg/logger"
	"github.com/DRSN-tech/cafe-backend/pkg/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// UseCases набор сценариев, которые обслуживает HTTP API.
type UseCases struct {
	Product    usecase.ProductUC
	Order      usecase.OrderUC
	Stock      usecase.StockUC
	Mail       usecase.MailUC
	Statistics usecase.OrderStatisticsUC
}

type Router struct {
	router     *chi.Mux
	logger     logger.Logger
	metrics    *metrics.ServerMetrics
	swaggerURL string
}

func NewRouter(router *chi.Mux, logger logger.Logger, metrics *metrics.ServerMetrics, swaggerURL string) *Router {
	return &Router{router: router, logger: logger, metrics: metrics, swaggerURL: swaggerURL}
}

func (r *Router) Init(uc UseCases) {
	r.router.Use(middleware.RequestID)
	r.router.Use(middleware.Recoverer)
	r.router.Use(metricsMiddleware(r.metrics))

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(r.swaggerURL), // ссылка на JSON
	))
	r.router.Method(http.MethodGet, "/metrics", r.metrics.Handler())
	r.router.Get("/health", health)

	r.router.Route("/api/v1", func(v1 chi.Router) {
		registerProductRoutes(v1, NewProductHandler(uc.Product, r.logger))
		registerOrderRoutes(v1, NewOrderHandler(uc.Order, uc.Statistics, r.logger))
		registerStockRoutes(v1, NewStockHandler(uc.Stock, r.logger))
		registerMailRoutes(v1, NewMailHandler(uc.Mail, r.logger))
	})
}

func registerProductRoutes(router chi.Router, prHandler *ProductHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Get("/", prHandler.getProductsInfo)
		pr.Post("/new", prHandler.createProduct)
		pr.Get("/selling", prHandler.getSellingProducts)
	})
}

func registerOrderRoutes(router chi.Router, orHandler *OrderHandler) {
	router.Route("/orders", func(or chi.Router) {
		or.Get("/", orHandler.findOrders)
		or.Post("/new", orHandler.createOrder)
		or.Patch("/{id}/status", orHandler.changeOrderStatus)
		or.Post("/statistics/mail", orHandler.sendOrderStatisticsMail)
	})
}

func registerStockRoutes(router chi.Router, stHandler *StockHandler) {
	router.Route("/stocks", func(st chi.Router) {
		st.Post("/", stHandler.registerStock)
		st.Get("/{productNumber}", stHandler.getStock)
	})
}

func registerMailRoutes(router chi.Router, mlHandler *MailHandler) {
	router.Post("/mail", mlHandler.sendMail)
}

// health
//
//	@Summary	Проверка доступности
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	ApiResponse
//	@Router		/health [get]
func health(w http.ResponseWriter, _ *http.Request) {
	WriteSuccess(w, http.StatusOK, map[string]string{"status": "UP"})
}
