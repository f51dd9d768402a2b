package rabbitmq

import (
	"context"
	"encoding/json"
	"time"

	"github.com/DRSN-tech/cafe-backend/internal/cfg"
	"github.com/DRSN-tech/cafe-backend/internal/usecase"
	"github.com/DRSN-tech/cafe-backend/pkg/e"
	"github.com/DRSN-tech/cafe-backend/pkg/logger"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

// publisher публикует сообщение и ждёт подтверждения брокера: ack true, nack false.
type publisher interface {
	Publish(ctx context.Context, exchange, key string, msg amqp.Publishing) (bool, error)
}

type channelPublisher struct {
	ch *amqp.Channel
}

func (p channelPublisher) Publish(ctx context.Context, exchange, key string, msg amqp.Publishing) (bool, error) {
	confirm, err := p.ch.PublishWithDeferredConfirmWithContext(ctx,
		exchange, // exchange
		key,      // routing key
		false,    // mandatory
		false,    // immediate
		msg,
	)
	if err != nil {
		return false, err
	}

	// канал не в confirm-режиме: подтверждений не будет
	if confirm == nil {
		return true, nil
	}

	return confirm.WaitContext(ctx)
}

// mailMessage тело сообщения для сервиса рассылки.
type mailMessage struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Content string `json:"content"`
}

// MailClient ставит письма в очередь RabbitMQ. Доставкой занимается отдельный сервис рассылки.
type MailClient struct {
	ch     publisher
	cfg    *cfg.RabbitMQCfg
	logger logger.Logger
}

// NewMailClient ожидает канал в confirm-режиме (clients.NewRabbitMQClient его включает).
func NewMailClient(ch *amqp.Channel, cfg *cfg.RabbitMQCfg, logger logger.Logger) *MailClient {
	return newMailClient(channelPublisher{ch: ch}, cfg, logger)
}

func newMailClient(ch publisher, cfg *cfg.RabbitMQCfg, logger logger.Logger) *MailClient {
	return &MailClient{
		ch:     ch,
		cfg:    cfg,
		logger: logger,
	}
}

// SendMail возвращает true после подтверждения брокера и false, если брокер отказал (nack).
func (m *MailClient) SendMail(ctx context.Context, req *usecase.SendMailReq) (bool, error) {
	const op = "MailClient.SendMail"

	body, err := json.Marshal(mailMessage{
		From:    req.From,
		To:      req.To,
		Subject: req.Subject,
		Content: req.Content,
	})
	if err != nil {
		return false, e.Wrap(op, err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	acked, err := m.ch.Publish(ctx, m.cfg.Exchange, m.cfg.RoutingKey, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return false, e.Wrap(op, err)
	}
	if !acked {
		m.logger.Warnf("mail to %s rejected by broker: %s", req.To, req.Subject)
		return false, nil
	}

	m.logger.Debugf("mail to %s queued: %s", req.To, req.Subject)
	return true, nil
}
