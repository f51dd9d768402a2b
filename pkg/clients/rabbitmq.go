package clients

import (
	"context"
	"time"

	"github.com/DRSN-tech/cafe-backend/internal/cfg"
	"github.com/DRSN-tech/cafe-backend/pkg/e"
	"github.com/DRSN-tech/cafe-backend/pkg/jitter"
	"github.com/DRSN-tech/cafe-backend/pkg/logger"
	"github.com/jimlawless/whereami"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	exchangeType  = "topic"
	dialBaseDelay = time.Second
	dialMaxDelay  = 8 * time.Second
)

type RabbitMQClient struct {
	Conn    *amqp.Connection
	Channel *amqp.Channel
}

// NewRabbitMQClient подключается к брокеру с повторами и объявляет exchange для писем.
func NewRabbitMQClient(ctx context.Context, cfg *cfg.RabbitMQCfg, logger logger.Logger) (*RabbitMQClient, error) {
	var (
		conn *amqp.Connection
		err  error
	)

	for attempt := 0; attempt < cfg.DialAttempts; attempt++ {
		conn, err = amqp.Dial(cfg.URL)
		if err == nil {
			break
		}

		logger.Warnf("Failed to connect to RabbitMQ (attempt %d): %v", attempt+1, err)
		if attempt == cfg.DialAttempts-1 {
			break
		}
		if sleepErr := jitter.Sleep(ctx, jitter.ExponentialBackoff(dialBaseDelay, dialMaxDelay, attempt, jitter.DefaultJitter)); sleepErr != nil {
			return nil, e.Wrap(whereami.WhereAmI(), sleepErr)
		}
	}
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if conn == nil {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrServiceUnavailable)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange, // name
		exchangeType, // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	// подтверждения публикаций: письмо считается отправленным только после ack брокера
	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &RabbitMQClient{Conn: conn, Channel: ch}, nil
}

func (c *RabbitMQClient) Close() error {
	if err := c.Channel.Close(); err != nil && err != amqp.ErrClosed {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if err := c.Conn.Close(); err != nil && err != amqp.ErrClosed {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	return nil
}
