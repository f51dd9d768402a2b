package kafka

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/DRSN-tech/cafe-backend/internal/cfg"
	"github.com/DRSN-tech/cafe-backend/internal/domain"
	"github.com/DRSN-tech/cafe-backend/internal/usecase"
	"github.com/DRSN-tech/cafe-backend/pkg/logger"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

func testLogger() logger.Logger {
	return logger.NewSlogLoggerWithWriter(io.Discard, slog.LevelError)
}

type fakeWriter struct {
	mu   sync.Mutex
	msgs []kafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { return nil }

func (f *fakeWriter) messages() []kafka.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]kafka.Message(nil), f.msgs...)
}

func TestGetPayloadBytes_EncodesOrder(t *testing.T) {
	p := newProducer(&fakeWriter{}, testLogger(), &cfg.KafkaCfg{Topic: "cafe.orders"})

	registeredAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	order := &domain.Order{
		ID:           42,
		Status:       domain.OrderStatusInit,
		TotalPrice:   3500,
		RegisteredAt: registeredAt,
		Lines: []domain.OrderLine{
			{ProductID: 1, ProductNumber: "001", ProductName: "Cola", Price: 1000},
			{ProductID: 2, ProductNumber: "002", ProductName: "Bagel", Price: 2500},
		},
	}

	payload, err := p.GetPayloadBytes(usecase.NewWriteMessageReq("evt-1", usecase.OrderCreatedEventType, order))
	require.NoError(t, err)

	var event structpb.Struct
	require.NoError(t, proto.Unmarshal(payload, &event))

	fields := event.AsMap()
	assert.Equal(t, "evt-1", fields["event_id"])
	assert.Equal(t, "order.created", fields["event_type"])
	assert.Equal(t, float64(42), fields["order_id"])
	assert.Equal(t, "INIT", fields["status"])
	assert.Equal(t, "2024-05-01T12:00:00Z", fields["registered_at"])
	assert.Equal(t, float64(3500), fields["total_price"])

	lines, ok := fields["lines"].([]any)
	require.True(t, ok)
	require.Len(t, lines, 2)
	assert.Equal(t, "002", lines[1].(map[string]any)["product_number"])
}

func TestWriteRawMessage_KeyIsOrderID(t *testing.T) {
	w := &fakeWriter{}
	p := newProducer(w, testLogger(), &cfg.KafkaCfg{})

	require.NoError(t, p.WriteRawMessage(context.Background(), usecase.NewWriteRawMessageReq(7, []byte("payload"))))

	msgs := w.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "7", string(msgs[0].Key))
	assert.Equal(t, "payload", string(msgs[0].Value))
}

func TestNewProducer_RequiresBrokers(t *testing.T) {
	_, err := NewProducer(testLogger(), &cfg.KafkaCfg{})
	assert.Error(t, err)
}
