package domain

import (
	"fmt"
	"time"
)

// Product описывает товар кафе
type Product struct {
	ID            int64
	ProductNumber string // внешний номер товара, "001", "002", ...
	Type          ProductType
	SellingStatus SellingStatus
	Name          string
	Price         int64 // Цена в целых единицах валюты
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

func NewProduct(productNumber string, productType ProductType, sellingStatus SellingStatus, name string, price int64) *Product {
	return &Product{
		ProductNumber: productNumber,
		Type:          productType,
		SellingStatus: sellingStatus,
		Name:          name,
		Price:         price,
	}
}

// IsStockTracked сообщает, учитывается ли остаток товара.
func (p *Product) IsStockTracked() bool {
	return IsStockTracked(p.Type)
}

// NextProductNumber возвращает номер, следующий за latest. Для пустого каталога это "001".
func NextProductNumber(latest string) (string, error) {
	if latest == "" {
		return formatProductNumber(1), nil
	}

	var n int
	if _, err := fmt.Sscanf(latest, "%d", &n); err != nil {
		return "", fmt.Errorf("parse product number %q: %w", latest, err)
	}

	return formatProductNumber(n + 1), nil
}

func formatProductNumber(n int) string {
	return fmt.Sprintf("%03d", n)
}
