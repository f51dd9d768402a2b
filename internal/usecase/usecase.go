package usecase

import "context"

type ProductUC interface {
	CreateProduct(ctx context.Context, req *CreateProductReq) (*ProductInfo, error)
	GetSellingProducts(ctx context.Context) (*GetSellingProductsRes, error)
	GetProductsInfo(ctx context.Context, req *GetProductsReq) (*GetProductsRes, error)
}

type OrderUC interface {
	CreateOrder(ctx context.Context, req *CreateOrderReq) (*OrderRes, error)
	FindOrdersBy(ctx context.Context, req *FindOrdersReq) ([]OrderRes, error)
	ChangeOrderStatus(ctx context.Context, req *ChangeOrderStatusReq) error
}

type StockUC interface {
	RegisterStock(ctx context.Context, req *RegisterStockReq) (*StockRes, error)
	GetStock(ctx context.Context, productNumber string) (*StockRes, error)
}

type MailUC interface {
	SendMail(ctx context.Context, req *SendMailReq) (bool, error)
}

type OrderStatisticsUC interface {
	SendOrderStatisticsMail(ctx context.Context, req *OrderStatisticsReq) error
}
