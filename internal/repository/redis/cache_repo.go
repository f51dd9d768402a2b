package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/DRSN-tech/cafe-backend/internal/cfg"
	"github.com/DRSN-tech/cafe-backend/internal/repository/redis/converter"
	"github.com/DRSN-tech/cafe-backend/internal/usecase"
	"github.com/DRSN-tech/cafe-backend/pkg/e"
	"github.com/DRSN-tech/cafe-backend/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

const sellingProductsKey = "products:selling"

type CacheRepo struct {
	client r.Cmdable
	conv   converter.ProductInfoConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCacheRepo(client r.Cmdable, conv converter.ProductInfoConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

// GetProducts возвращает закэшированные товары по номерам, игнорируя промахи и логируя их
func (c *CacheRepo) GetProducts(ctx context.Context, numbers []string) (map[string]usecase.ProductInfo, error) {
	keys := c.buildProductCacheKeys(numbers)

	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	result := make(map[string]usecase.ProductInfo, len(values))
	for i, val := range values {
		data, err := redisValueToBytes(val, keys[i])
		if err != nil {
			c.logger.Warnf("%v", e.Wrap(whereami.WhereAmI(), err))
		}

		if data == nil {
			continue // cache miss
		}

		var model converter.ProductInfoRedisModel
		if err := json.Unmarshal(data, &model); err != nil {
			c.logger.Warnf("Redis unmarshal failed: %v", e.Wrap(whereami.WhereAmI(), err))
			continue
		}

		if model.ProductNumber != numbers[i] {
			c.logger.Warnf("Cache key mismatch: key_number: %s, model_number: %s", numbers[i], model.ProductNumber)
			if err := c.client.Del(ctx, keys[i]).Err(); err != nil {
				c.logger.Warnf("Redis del failed: %v", e.Wrap(whereami.WhereAmI(), err))
			}
			continue // cache miss
		}
		result[numbers[i]] = *c.conv.ToUseCase(&model)
	}

	return result, nil
}

// SetProducts кэширует несколько товаров одним pipeline с заданным TTL.
func (c *CacheRepo) SetProducts(ctx context.Context, products []usecase.ProductInfo) error {
	models := c.conv.ToArrRedisModel(products)

	pipeline := c.client.Pipeline()
	for _, model := range models {
		data, err := json.Marshal(model)
		if err != nil {
			c.logger.Warnf("Failed to marshal product for caching (product number: %s): %v",
				model.ProductNumber, e.Wrap(whereami.WhereAmI(), err))
			continue
		}

		pipeline.Set(ctx, c.productKey(model.ProductNumber), data, c.cfg.ProductTTL)
	}

	if _, err := pipeline.Exec(ctx); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// DeleteProducts удаляет товары из кэша по номерам
func (c *CacheRepo) DeleteProducts(ctx context.Context, numbers []string) error {
	if len(numbers) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, c.buildProductCacheKeys(numbers)...).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// GetSellingProducts возвращает список витрины из кэша; found=false при промахе.
func (c *CacheRepo) GetSellingProducts(ctx context.Context) ([]usecase.ProductInfo, bool, error) {
	data, err := c.client.Get(ctx, sellingProductsKey).Bytes()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return nil, false, nil
		}
		return nil, false, e.Wrap(whereami.WhereAmI(), err)
	}

	var models []converter.ProductInfoRedisModel
	if err := json.Unmarshal(data, &models); err != nil {
		c.logger.Warnf("Redis unmarshal failed: %v", e.Wrap(whereami.WhereAmI(), err))
		return nil, false, nil
	}

	return c.conv.ToArrUseCase(models), true, nil
}

func (c *CacheRepo) SetSellingProducts(ctx context.Context, products []usecase.ProductInfo) error {
	data, err := json.Marshal(c.conv.ToArrRedisModel(products))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := c.client.Set(ctx, sellingProductsKey, data, c.cfg.ProductTTL).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (c *CacheRepo) DeleteSellingProducts(ctx context.Context) error {
	if err := c.client.Del(ctx, sellingProductsKey).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// buildProductCacheKeys формирует Redis-ключи из номеров товаров
func (c *CacheRepo) buildProductCacheKeys(numbers []string) []string {
	keys := make([]string, len(numbers))
	for i, number := range numbers {
		keys[i] = c.productKey(number)
	}

	return keys
}

// productKey возвращает Redis-ключ для одного товара
func (c *CacheRepo) productKey(number string) string {
	return fmt.Sprintf("product:%s", number)
}

// redisValueToBytes конвертирует значение из Redis в []byte.
// Поддерживает string и []byte, возвращает ошибку для неизвестных типов.
func redisValueToBytes(val any, key string) ([]byte, error) {
	switch v := val.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	case nil:
		return nil, nil // cache miss
	default:
		return nil, fmt.Errorf("key %s: %T: %w", key, val, e.ErrUnexpectedCacheValue)
	}
}
