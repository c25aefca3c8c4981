package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(attempts int) RetryConfig {
	return RetryConfig{MaxAttempts: attempts, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
}

func TestRetrySucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), "publish", fastConfig(3), func() error {
		calls++
		if calls < 3 {
			return errors.New("broker unavailable")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryExhausted(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := Retry(context.Background(), "publish", fastConfig(2), func() error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}

func TestRetryPermanentStops(t *testing.T) {
	bad := errors.New("bad payload")
	calls := 0
	err := Retry(context.Background(), "publish", fastConfig(5), func() error {
		calls++
		return Permanent(bad)
	})
	assert.Same(t, bad, err)
	assert.Equal(t, 1, calls)
	assert.Nil(t, Permanent(nil))
}

func TestRetryCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Retry(ctx, "publish", fastConfig(3), func() error { return errors.New("x") })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRetryDelay(t *testing.T) {
	cfg := RetryConfig{InitialDelay: time.Second, MaxDelay: 4 * time.Second}.withDefaults()
	assert.Equal(t, 3, cfg.MaxAttempts)

	for range 20 {
		d := cfg.delay(2)
		assert.GreaterOrEqual(t, d, time.Second)
		assert.LessOrEqual(t, d, 2*time.Second)

		capped := cfg.delay(40)
		assert.GreaterOrEqual(t, capped, 2*time.Second)
		assert.LessOrEqual(t, capped, 4*time.Second)
	}
}
