package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/DRSN-tech/cafe-backend/internal/domain"
	"github.com/DRSN-tech/cafe-backend/pkg/e"
	"github.com/DRSN-tech/cafe-backend/pkg/jitter"
	"github.com/DRSN-tech/cafe-backend/pkg/logger"
	"golang.org/x/sync/singleflight"
)

const (
	createProductAttempts = 3
	createProductBackoff  = 50 * time.Millisecond
	createProductMaxDelay = 500 * time.Millisecond
	cacheFillTimeout      = 500 * time.Millisecond
	sharedLoadTimeout     = 3 * time.Second
	sellingProductsKey    = "selling"
)

// ProductUseCase реализует бизнес-логику каталога товаров.
type ProductUseCase struct {
	productRepo ProductRepository
	cacheRepo   CacheRepository
	txManager   TxManager
	logger      logger.Logger
	group       singleflight.Group
}

func NewProductUC(
	productRepo ProductRepository,
	cacheRepo CacheRepository,
	txManager TxManager,
	logger logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		cacheRepo:   cacheRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// CreateProduct добавляет товар со следующим по порядку номером.
// Если номер успели занять параллельно, попытка повторяется с задержкой.
func (p *ProductUseCase) CreateProduct(ctx context.Context, req *CreateProductReq) (*ProductInfo, error) {
	const op = "ProductUseCase.CreateProduct"

	productType, sellingStatus, err := p.validateProduct(req)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	var created *domain.Product
	for attempt := 0; attempt < createProductAttempts; attempt++ {
		created, err = p.createWithNextNumber(ctx, productType, sellingStatus, req)
		if err == nil {
			break
		}

		if !errors.Is(err, e.ErrProductNumberTaken) {
			return nil, e.Wrap(op, err)
		}

		p.logger.Warnf("product number race, attempt %d: %v", attempt+1, err)
		if attempt == createProductAttempts-1 {
			break
		}
		delay := jitter.ExponentialBackoff(createProductBackoff, createProductMaxDelay, attempt, jitter.DefaultJitter)
		if sleepErr := jitter.Sleep(ctx, delay); sleepErr != nil {
			return nil, e.Wrap(op, sleepErr)
		}
	}
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	// Витрина изменилась, старый список в кэше больше не актуален
	if err := p.cacheRepo.DeleteSellingProducts(ctx); err != nil {
		p.logger.Warnf("Failed to delete selling products from cache: %v", e.Wrap(op, err))
	}

	info := NewProductInfo(created)
	return &info, nil
}

func (p *ProductUseCase) createWithNextNumber(
	ctx context.Context,
	productType domain.ProductType,
	sellingStatus domain.SellingStatus,
	req *CreateProductReq,
) (*domain.Product, error) {
	var created *domain.Product
	err := p.txManager.Do(ctx, func(ctx context.Context) error {
		latest, err := p.productRepo.FindLatestProductNumber(ctx)
		if err != nil {
			return err
		}

		number, err := domain.NextProductNumber(latest)
		if err != nil {
			return err
		}

		created, err = p.productRepo.Create(ctx, domain.NewProduct(number, productType, sellingStatus, strings.TrimSpace(req.Name), req.Price))
		return err
	})

	return created, err
}

// GetSellingProducts возвращает товары витрины (SELLING и HOLD).
// Одновременные промахи кэша схлопываются в один запрос к БД.
func (p *ProductUseCase) GetSellingProducts(ctx context.Context) (*GetSellingProductsRes, error) {
	const op = "ProductUseCase.GetSellingProducts"

	cached, found, err := p.cacheRepo.GetSellingProducts(ctx)
	if err != nil {
		p.logger.Warnf("Failed to get selling products from cache: %v", e.Wrap(op, err))
	}
	if err == nil && found {
		return &GetSellingProductsRes{Products: cached}, nil
	}

	// загрузка общая для всех ожидающих, поэтому отмена первого запроса её не прерывает
	ch := p.group.DoChan(sellingProductsKey, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedLoadTimeout)
		defer cancel()

		products, err := p.productRepo.FindAllBySellingStatusIn(loadCtx, domain.ForDisplay())
		if err != nil {
			return nil, err
		}

		infos := NewArrProductInfo(products)
		if err := p.cacheRepo.SetSellingProducts(loadCtx, infos); err != nil {
			p.logger.Warnf("Failed to cache selling products: %v", e.Wrap(op, err))
		}

		return infos, nil
	})

	select {
	case <-ctx.Done():
		return nil, e.Wrap(op, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, e.Wrap(op, res.Err)
		}
		return &GetSellingProductsRes{Products: res.Val.([]ProductInfo)}, nil
	}
}

// GetProductsInfo возвращает информацию о товарах по их номерам.
func (p *ProductUseCase) GetProductsInfo(ctx context.Context, req *GetProductsReq) (*GetProductsRes, error) {
	const op = "ProductUseCase.GetProductsInfo"

	// Валидация
	if len(req.Numbers) == 0 {
		return nil, e.Wrap(op, e.ErrProductNumbersRequired)
	}

	// Поиск товаров в кэше
	cacheProductsMap, err := p.cacheRepo.GetProducts(ctx, req.Numbers)
	if err != nil {
		p.logger.Warnf("Failed to get products from cache: %v", e.Wrap(op, err))
		cacheProductsMap = nil
	}

	var nonCacheable []string
	for _, number := range distinct(req.Numbers) {
		if _, ok := cacheProductsMap[number]; !ok {
			nonCacheable = append(nonCacheable, number)
		}
	}

	// Получение товаров из БД
	dbProductsMap := make(map[string]ProductInfo)
	if len(nonCacheable) > 0 {
		products, err := p.productRepo.FindAllByProductNumberIn(ctx, nonCacheable)
		if err != nil {
			return nil, e.Wrap(op, err)
		}

		productsInfoFromDB := NewArrProductInfo(products)
		for _, info := range productsInfoFromDB {
			dbProductsMap[info.ProductNumber] = info
		}

		// Фоновое добавление товаров в кэш
		if len(productsInfoFromDB) > 0 {
			go func() {
				bgCtx, cancel := context.WithTimeout(context.Background(), cacheFillTimeout)
				defer cancel()

				if err := p.cacheRepo.SetProducts(bgCtx, productsInfoFromDB); err != nil {
					p.logger.Warnf("Failed to cache products in background: %v", e.Wrap(op, err))
				}
			}()
		}
	}

	// Формирование результата
	result := make([]ProductInfo, 0, len(req.Numbers))
	notFoundProducts := make([]string, 0)
	for _, number := range req.Numbers {
		if pr, ok := cacheProductsMap[number]; ok {
			result = append(result, pr)
		} else if pr, ok := dbProductsMap[number]; ok {
			result = append(result, pr)
		} else {
			notFoundProducts = append(notFoundProducts, number)
		}
	}

	return NewGetProductsRes(result, notFoundProducts), nil
}

// validateProduct проверяет корректность входных данных запроса на добавление товара.
func (p *ProductUseCase) validateProduct(req *CreateProductReq) (domain.ProductType, domain.SellingStatus, error) {
	productType, err := domain.ParseProductType(req.Type)
	if err != nil {
		return "", "", err
	}

	sellingStatus, err := domain.ParseSellingStatus(req.SellingStatus)
	if err != nil {
		return "", "", err
	}

	if strings.TrimSpace(req.Name) == "" {
		return "", "", e.ErrProductNameRequired
	}

	if req.Price <= 0 {
		return "", "", e.ErrPriceMustBePositive
	}

	return productType, sellingStatus, nil
}
