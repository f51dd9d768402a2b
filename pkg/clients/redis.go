package clients

import (
	"context"
	"time"

	"github.com/DRSN-tech/cafe-backend/internal/cfg"
	"github.com/DRSN-tech/cafe-backend/pkg/e"
	"github.com/DRSN-tech/cafe-backend/pkg/jitter"
	"github.com/DRSN-tech/cafe-backend/pkg/logger"
	"github.com/jimlawless/whereami"
	r "github.com/redis/go-redis/v9"
)

const (
	pingAttempts  = 3
	pingBaseDelay = 200 * time.Millisecond
	pingMaxDelay  = time.Second
)

// RedisClient клиент кэша каталога.
type RedisClient struct {
	Client *r.Client
	logger logger.Logger
}

func NewRedisClient(cfg *cfg.RedisCfg, logger logger.Logger) *RedisClient {
	client := r.NewClient(&r.Options{
		Addr:         cfg.Addr,
		Username:     cfg.User,
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	})

	return &RedisClient{
		Client: client,
		logger: logger,
	}
}

// Ping проверяет доступность Redis, делая несколько попыток с растущей задержкой.
func (c *RedisClient) Ping(ctx context.Context) error {
	var err error
	for attempt := 0; attempt < pingAttempts; attempt++ {
		if err = c.Client.Ping(ctx).Err(); err == nil {
			return nil
		}

		c.logger.Warnf("Redis ping failed (attempt %d): %v", attempt+1, err)
		if attempt == pingAttempts-1 {
			break
		}
		if sleepErr := jitter.Sleep(ctx, jitter.ExponentialBackoff(pingBaseDelay, pingMaxDelay, attempt, jitter.DefaultJitter)); sleepErr != nil {
			return e.Wrap(whereami.WhereAmI(), sleepErr)
		}
	}

	return e.Wrap(whereami.WhereAmI(), err)
}

func (c *RedisClient) Close() error {
	return c.Client.Close()
}
