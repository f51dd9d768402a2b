package usecase

import (
	"context"
	"strings"

	"github.com/DRSN-tech/cafe-backend/internal/domain"
	"github.com/DRSN-tech/cafe-backend/pkg/e"
	"github.com/DRSN-tech/cafe-backend/pkg/logger"
)

// StockUseCase управляет остатками товаров с учётом количества.
type StockUseCase struct {
	productRepo ProductRepository
	stockRepo   StockRepository
	logger      logger.Logger
}

func NewStockUC(productRepo ProductRepository, stockRepo StockRepository, logger logger.Logger) *StockUseCase {
	return &StockUseCase{
		productRepo: productRepo,
		stockRepo:   stockRepo,
		logger:      logger,
	}
}

// RegisterStock задаёт остаток товара. Товар должен существовать и иметь учитываемый тип.
func (s *StockUseCase) RegisterStock(ctx context.Context, req *RegisterStockReq) (*StockRes, error) {
	const op = "StockUseCase.RegisterStock"

	number := strings.TrimSpace(req.ProductNumber)
	if number == "" {
		return nil, e.Wrap(op, e.ErrProductNumberRequired)
	}

	if req.Quantity < 0 {
		return nil, e.Wrap(op, e.ErrInvalidQuantity)
	}

	products, err := s.productRepo.FindAllByProductNumberIn(ctx, []string{number})
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if len(products) == 0 {
		return nil, e.Wrap(op, e.ErrProductNotFound)
	}
	if !products[0].IsStockTracked() {
		return nil, e.Wrap(op, e.ErrNotStockTracked)
	}

	stock, err := s.stockRepo.Upsert(ctx, domain.NewStock(number, req.Quantity))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	s.logger.Infof("stock for product %s set to %d", stock.ProductNumber, stock.Quantity)
	return NewStockRes(stock), nil
}

func (s *StockUseCase) GetStock(ctx context.Context, productNumber string) (*StockRes, error) {
	const op = "StockUseCase.GetStock"

	if strings.TrimSpace(productNumber) == "" {
		return nil, e.Wrap(op, e.ErrProductNumberRequired)
	}

	stock, err := s.stockRepo.FindByProductNumber(ctx, productNumber)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewStockRes(stock), nil
}
