package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/DRSN-tech/cafe-backend/internal/cfg"
	"github.com/DRSN-tech/cafe-backend/internal/usecase"
	"github.com/DRSN-tech/cafe-backend/pkg/logger"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	exchange string
	key      string
	msg      amqp.Publishing
	nack     bool
	err      error
}

func (f *fakePublisher) Publish(_ context.Context, exchange, key string, msg amqp.Publishing) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	f.exchange, f.key, f.msg = exchange, key, msg
	return !f.nack, nil
}

func newTestClient(pub *fakePublisher) *MailClient {
	return newMailClient(pub, &cfg.RabbitMQCfg{Exchange: "mail", RoutingKey: "mail.send"},
		logger.NewSlogLoggerWithWriter(io.Discard, slog.LevelError))
}

func TestMailClient_SendMail(t *testing.T) {
	pub := &fakePublisher{}
	client := newTestClient(pub)

	ok, err := client.SendMail(context.Background(), usecase.NewSendMailReq(
		"no-reply@cafe.local", "owner@cafe.local", "[Sales statistics] 2024-03-05", "Total sales: 7500",
	))
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, "mail", pub.exchange)
	assert.Equal(t, "mail.send", pub.key)
	assert.Equal(t, "application/json", pub.msg.ContentType)
	assert.Equal(t, amqp.Persistent, pub.msg.DeliveryMode)
	assert.NotEmpty(t, pub.msg.MessageId)

	var body mailMessage
	require.NoError(t, json.Unmarshal(pub.msg.Body, &body))
	assert.Equal(t, mailMessage{
		From:    "no-reply@cafe.local",
		To:      "owner@cafe.local",
		Subject: "[Sales statistics] 2024-03-05",
		Content: "Total sales: 7500",
	}, body)
}

func TestMailClient_SendMailPublishError(t *testing.T) {
	client := newTestClient(&fakePublisher{err: amqp.ErrClosed})

	ok, err := client.SendMail(context.Background(), usecase.NewSendMailReq("a@b", "c@d", "s", "c"))
	assert.False(t, ok)
	assert.True(t, errors.Is(err, amqp.ErrClosed))
}

func TestMailClient_SendMailNacked(t *testing.T) {
	pub := &fakePublisher{nack: true}
	client := newTestClient(pub)

	ok, err := client.SendMail(context.Background(), usecase.NewSendMailReq("a@b", "c@d", "s", "c"))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "mail.send", pub.key)
}
