package http

import (
	"net/http"

	"github.com/DRSN-tech/cafe-backend/internal/usecase"
	"github.com/DRSN-tech/cafe-backend/pkg/e"
	"github.com/DRSN-tech/cafe-backend/pkg/logger"
)

type ProductHandler struct {
	productUsecase usecase.ProductUC
	logger         logger.Logger
}

func NewProductHandler(productUsecase usecase.ProductUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{productUsecase: productUsecase, logger: logger}
}

// createProduct
//
//	@Summary		Регистрация нового товара
//	@Description	Создает товар со следующим по порядку номером
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			request	body		createProductRequest					true	"Товар"
//	@Success		201		{object}	ApiResponse{data=productResponse}		"Товар создан"
//	@Failure		400		{object}	ApiResponse								"Ошибка валидации"
//	@Failure		409		{object}	ApiResponse								"Номер товара занят"
//	@Router			/products/new [post]
func (p *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := decodeJSON(w, r, &req); err != nil {
		p.logger.Warnf("%d %s: %v", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err)
		WriteError(w, err)
		return
	}

	price, err := parsePrice(req.Price.String())
	if err != nil {
		p.logger.Warnf("%d %s: %v", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err)
		WriteError(w, err)
		return
	}

	created, err := p.productUsecase.CreateProduct(r.Context(), usecase.NewCreateProductReq(req.Type, req.SellingStatus, req.Name, price))
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, newProductResponse(*created))
}

// getSellingProducts
//
//	@Summary		Товары витрины
//	@Description	Возвращает товары в статусах SELLING и HOLD
//	@Tags			products
//	@Produce		json
//	@Success		200	{object}	ApiResponse{data=[]productResponse}
//	@Router			/products/selling [get]
func (p *ProductHandler) getSellingProducts(w http.ResponseWriter, r *http.Request) {
	res, err := p.productUsecase.GetSellingProducts(r.Context())
	if err != nil {
		p.logger.Errorf(err, "failed to get selling products")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, newProductResponses(res.Products))
}

// getProductsInfo
//
//	@Summary		Информация о товарах
//	@Description	Возвращает товары по номерам в порядке запроса и список ненайденных номеров
//	@Tags			products
//	@Produce		json
//	@Param			numbers	query		string									true	"Номера через запятую"	example(001,002)
//	@Success		200		{object}	ApiResponse{data=productsInfoResponse}
//	@Failure		400		{object}	ApiResponse
//	@Router			/products [get]
func (p *ProductHandler) getProductsInfo(w http.ResponseWriter, r *http.Request) {
	numbers := parseNumbers(r.URL.Query().Get("numbers"))

	res, err := p.productUsecase.GetProductsInfo(r.Context(), usecase.NewGetProductsReq(numbers))
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, productsInfoResponse{
		Products:         newProductResponses(res.Products),
		NotFoundProducts: res.NotFoundProducts,
	})
}
