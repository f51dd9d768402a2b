package jitter

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBackoff_DoublesUntilMax(t *testing.T) {
	base := 100 * time.Millisecond
	max := time.Second

	assert.Equal(t, 100*time.Millisecond, Backoff(base, max, 0))
	assert.Equal(t, 200*time.Millisecond, Backoff(base, max, 1))
	assert.Equal(t, 400*time.Millisecond, Backoff(base, max, 2))
	assert.Equal(t, 800*time.Millisecond, Backoff(base, max, 3))
	assert.Equal(t, time.Second, Backoff(base, max, 4))
	assert.Equal(t, time.Second, Backoff(base, max, 60))
}

func TestDuration_StaysInRange(t *testing.T) {
	d := 100 * time.Millisecond
	for i := 0; i < 100; i++ {
		got := Duration(d, DefaultJitter)
		assert.GreaterOrEqual(t, got, d)
		assert.LessOrEqual(t, got, d+d/2)
	}
}

func TestDurationWithSeed_Deterministic(t *testing.T) {
	d := time.Second
	a := DurationWithSeed(d, DefaultJitter, rand.New(rand.NewSource(7)))
	b := DurationWithSeed(d, DefaultJitter, rand.New(rand.NewSource(7)))
	assert.Equal(t, a, b)
}

func TestDuration_ZeroFactor(t *testing.T) {
	assert.Equal(t, time.Second, Duration(time.Second, 0))
}

func TestSleep_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Sleep(ctx, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSleep_Elapsed(t *testing.T) {
	assert.NoError(t, Sleep(context.Background(), time.Millisecond))
}
