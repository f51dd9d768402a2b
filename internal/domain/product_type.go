package domain

import "github.com/DRSN-tech/cafe-backend/pkg/e"

// ProductType описывает тип товара
type ProductType string

const (
	ProductTypeHandmade ProductType = "HANDMADE" // готовится под заказ
	ProductTypeBottle   ProductType = "BOTTLE"
	ProductTypeBakery   ProductType = "BAKERY"
)

var productTypeTexts = map[ProductType]string{
	ProductTypeHandmade: "Made-to-order drink",
	ProductTypeBottle:   "Bottled drink",
	ProductTypeBakery:   "Bakery",
}

// Типы, для которых ведётся учёт остатков
var stockTrackedTypes = map[ProductType]struct{}{
	ProductTypeBottle: {},
	ProductTypeBakery: {},
}

// IsStockTracked сообщает, уменьшается ли остаток товара этого типа при заказе.
func IsStockTracked(t ProductType) bool {
	_, ok := stockTrackedTypes[t]
	return ok
}

func (t ProductType) Text() string {
	return productTypeTexts[t]
}

// ParseProductType проверяет строку и возвращает тип товара.
func ParseProductType(s string) (ProductType, error) {
	if s == "" {
		return "", e.ErrProductTypeRequired
	}

	t := ProductType(s)
	if _, ok := productTypeTexts[t]; !ok {
		return "", e.ErrInvalidProductType
	}

	return t, nil
}
