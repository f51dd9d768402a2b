package clients

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/DRSN-tech/cafe-backend/pkg/logger"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisClient() (*RedisClient, redismock.ClientMock) {
	db, mock := redismock.NewClientMock()
	return &RedisClient{Client: db, logger: logger.NewSlogLoggerWithWriter(io.Discard, slog.LevelError)}, mock
}

func TestRedisClient_PingRetries(t *testing.T) {
	client, mock := newTestRedisClient()
	mock.ExpectPing().SetErr(errors.New("connection refused"))
	mock.ExpectPing().SetVal("PONG")

	require.NoError(t, client.Ping(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisClient_PingGivesUp(t *testing.T) {
	client, mock := newTestRedisClient()
	for i := 0; i < pingAttempts; i++ {
		mock.ExpectPing().SetErr(errors.New("connection refused"))
	}

	err := client.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisClient_PingCancelled(t *testing.T) {
	client, mock := newTestRedisClient()
	mock.ExpectPing().SetErr(errors.New("connection refused"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := client.Ping(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
