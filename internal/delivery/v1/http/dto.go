package http

import (
	"encoding/json"
	"time"

	"github.com/DRSN-tech/cafe-backend/internal/usecase"
)

type createProductRequest struct {
	Type          string      `json:"type" example:"HANDMADE"`
	SellingStatus string      `json:"sellingStatus" example:"SELLING"`
	Name          string      `json:"name" example:"Americano"`
	Price         json.Number `json:"price" swaggertype:"number" example:"4000"`
}

type productResponse struct {
	ID            int64  `json:"id"`
	ProductNumber string `json:"productNumber" example:"001"`
	Type          string `json:"type" example:"HANDMADE"`
	SellingStatus string `json:"sellingStatus" example:"SELLING"`
	Name          string `json:"name" example:"Americano"`
	Price         int64  `json:"price" example:"4000"`
}

type productsInfoResponse struct {
	Products         []productResponse `json:"products"`
	NotFoundProducts []string          `json:"notFoundProducts"`
}

type createOrderRequest struct {
	ProductNumbers []string `json:"productNumbers" example:"001,002"`
}

type orderProductResponse struct {
	ProductNumber string `json:"productNumber"`
	Name          string `json:"name"`
	Price         int64  `json:"price"`
}

type orderResponse struct {
	ID           int64                  `json:"id"`
	Status       string                 `json:"status" example:"INIT"`
	RegisteredAt time.Time              `json:"registeredAt"`
	TotalPrice   int64                  `json:"totalPrice"`
	Products     []orderProductResponse `json:"products"`
}

type changeOrderStatusRequest struct {
	Status string `json:"status" example:"PAYMENT_COMPLETED"`
}

type orderStatisticsRequest struct {
	OrderDate string `json:"orderDate" example:"2024-03-05"`
	Email     string `json:"email" example:"owner@cafe.local"`
}

type registerStockRequest struct {
	ProductNumber string `json:"productNumber" example:"002"`
	Quantity      int64  `json:"quantity" example:"10"`
}

type stockResponse struct {
	ProductNumber string `json:"productNumber"`
	Quantity      int64  `json:"quantity"`
}

type sendMailRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Content string `json:"content"`
}

type sendMailResponse struct {
	Sent bool `json:"sent"`
}

func newProductResponse(p usecase.ProductInfo) productResponse {
	return productResponse{
		ID:            p.ID,
		ProductNumber: p.ProductNumber,
		Type:          p.Type,
		SellingStatus: p.SellingStatus,
		Name:          p.Name,
		Price:         p.Price,
	}
}

func newProductResponses(products []usecase.ProductInfo) []productResponse {
	res := make([]productResponse, 0, len(products))
	for _, p := range products {
		res = append(res, newProductResponse(p))
	}
	return res
}

func newOrderResponse(o *usecase.OrderRes) orderResponse {
	products := make([]orderProductResponse, 0, len(o.Products))
	for _, p := range o.Products {
		products = append(products, orderProductResponse{
			ProductNumber: p.ProductNumber,
			Name:          p.Name,
			Price:         p.Price,
		})
	}

	return orderResponse{
		ID:           o.ID,
		Status:       o.Status,
		RegisteredAt: o.RegisteredAt,
		TotalPrice:   o.TotalPrice,
		Products:     products,
	}
}

func newStockResponse(s *usecase.StockRes) stockResponse {
	return stockResponse{ProductNumber: s.ProductNumber, Quantity: s.Quantity}
}
