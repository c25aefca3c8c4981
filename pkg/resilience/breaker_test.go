package resilience

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreakerOpensAfterThreshold(t *testing.T) {
	b := NewBreaker("publish", BreakerConfig{Threshold: 2, Cooldown: time.Minute})
	fail := errors.New("broker down")
	calls := 0
	fn := func() error { calls++; return fail }

	assert.ErrorIs(t, b.Do(fn), fail)
	assert.Equal(t, StateClosed, b.State())
	assert.ErrorIs(t, b.Do(fn), fail)
	assert.Equal(t, StateOpen, b.State())

	err := b.Do(fn)
	assert.ErrorIs(t, err, ErrOpen)
	assert.Equal(t, 2, calls)
}

func TestBreakerProbeAfterCooldown(t *testing.T) {
	now := time.Unix(1000, 0)
	b := NewBreaker("publish", BreakerConfig{Threshold: 1, Cooldown: 10 * time.Second})
	b.now = func() time.Time { return now }

	require.Error(t, b.Do(func() error { return errors.New("down") }))
	require.ErrorIs(t, b.Do(func() error { return nil }), ErrOpen)

	now = now.Add(11 * time.Second)
	require.Error(t, b.Do(func() error { return errors.New("still down") }))
	assert.Equal(t, StateOpen, b.State())

	now = now.Add(11 * time.Second)
	require.NoError(t, b.Do(func() error { return nil }))
	assert.Equal(t, StateClosed, b.State())
}

func TestBreakerSuccessResetsFailures(t *testing.T) {
	b := NewBreaker("publish", BreakerConfig{Threshold: 2})
	fail := errors.New("down")
	_ = b.Do(func() error { return fail })
	_ = b.Do(func() error { return nil })
	_ = b.Do(func() error { return fail })
	assert.Equal(t, StateClosed, b.State())
}
