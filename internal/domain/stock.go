package domain

import "github.com/DRSN-tech/cafe-backend/pkg/e"

// Stock описывает остаток товара с учётом количества
type Stock struct {
	ID            int64
	ProductNumber string
	Quantity      int64 // не бывает отрицательным
}

func NewStock(productNumber string, quantity int64) *Stock {
	return &Stock{
		ProductNumber: productNumber,
		Quantity:      quantity,
	}
}

// IsQuantityLessThan сообщает, что остатка не хватает на quantity единиц.
func (s *Stock) IsQuantityLessThan(quantity int64) bool {
	return s.Quantity < quantity
}

// Decrease уменьшает остаток. Если остатка не хватает, количество не меняется.
func (s *Stock) Decrease(quantity int64) error {
	if s.IsQuantityLessThan(quantity) {
		return e.NewInsufficientStockError(s.ProductNumber, quantity, s.Quantity)
	}

	s.Quantity -= quantity
	return nil
}
