package tr

import (
	"context"
	"testing"

	"github.com/DRSN-tech/cafe-backend/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTx подменяет только то, что нужно для проверки контекста.
type fakeTx struct {
	pgx.Tx
}

type fakeQuerier struct {
	Querier
}

func TestTxFromCtx_NotFound(t *testing.T) {
	_, err := TxFromCtx(context.Background())
	assert.ErrorIs(t, err, e.ErrTransactionNotFound)
}

func TestTxFromCtx_RoundTrip(t *testing.T) {
	tx := &fakeTx{}
	ctx := WithTx(context.Background(), tx)

	got, err := TxFromCtx(ctx)
	require.NoError(t, err)
	assert.Same(t, tx, got)
}

func TestQuerierFromCtx(t *testing.T) {
	pool := &fakeQuerier{}

	assert.Same(t, pool, QuerierFromCtx(context.Background(), pool))

	tx := &fakeTx{}
	assert.Same(t, tx, QuerierFromCtx(WithTx(context.Background(), tx), pool))
}

func TestManagerDo_ReusesAmbientTx(t *testing.T) {
	m := NewManager(nil, pgx.TxOptions{})
	tx := &fakeTx{}
	ctx := WithTx(context.Background(), tx)

	called := false
	err := m.Do(ctx, func(ctx context.Context) error {
		called = true
		got, err := TxFromCtx(ctx)
		require.NoError(t, err)
		assert.Same(t, tx, got)
		return nil
	})

	require.NoError(t, err)
	assert.True(t, called)
}
