package http

import (
	"net/http"

	"github.com/DRSN-tech/cafe-backend/internal/usecase"
	"github.com/DRSN-tech/cafe-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type StockHandler struct {
	stockUsecase usecase.StockUC
	logger       logger.Logger
}

func NewStockHandler(stockUsecase usecase.StockUC, logger logger.Logger) *StockHandler {
	return &StockHandler{stockUsecase: stockUsecase, logger: logger}
}

// registerStock
//
//	@Summary		Установка остатка
//	@Description	Задает остаток для товара типа BOTTLE или BAKERY
//	@Tags			stocks
//	@Accept			json
//	@Produce		json
//	@Param			request	body		registerStockRequest				true	"Остаток"
//	@Success		200		{object}	ApiResponse{data=stockResponse}
//	@Failure		400		{object}	ApiResponse
//	@Failure		404		{object}	ApiResponse
//	@Router			/stocks [post]
func (s *StockHandler) registerStock(w http.ResponseWriter, r *http.Request) {
	var req registerStockRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err)
		return
	}

	stock, err := s.stockUsecase.RegisterStock(r.Context(), &usecase.RegisterStockReq{
		ProductNumber: req.ProductNumber,
		Quantity:      req.Quantity,
	})
	if err != nil {
		s.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newStockResponse(stock))
}

// getStock
//
//	@Summary		Остаток товара
//	@Tags			stocks
//	@Produce		json
//	@Param			productNumber	path		string							true	"Номер товара"
//	@Success		200				{object}	ApiResponse{data=stockResponse}
//	@Failure		404				{object}	ApiResponse
//	@Router			/stocks/{productNumber} [get]
func (s *StockHandler) getStock(w http.ResponseWriter, r *http.Request) {
	stock, err := s.stockUsecase.GetStock(r.Context(), chi.URLParam(r, "productNumber"))
	if err != nil {
		s.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newStockResponse(stock))
}
