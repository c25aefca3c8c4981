package resilience

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// ErrOpen is returned while a breaker rejects calls.
var ErrOpen = errors.New("breaker is open")

type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

type BreakerConfig struct {
	// Threshold is the number of consecutive failures that opens the breaker.
	Threshold int
	// Cooldown is how long an open breaker waits before letting one probe
	// call through.
	Cooldown time.Duration
}

// Breaker stops calling a failing dependency. The watch process wraps the
// index.complete publisher in one so a dead broker does not add a full retry
// cycle to every purge.
type Breaker struct {
	name     string
	cfg      BreakerConfig
	now      func() time.Time
	logger   *slog.Logger
	mu       sync.Mutex
	state    State
	failures int
	openedAt time.Time
	probing  bool
}

// NewBreaker returns a closed breaker. Zero fields of cfg default to five
// failures and a thirty second cooldown.
func NewBreaker(name string, cfg BreakerConfig) *Breaker {
	if cfg.Threshold <= 0 {
		cfg.Threshold = 5
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 30 * time.Second
	}
	return &Breaker{
		name:   name,
		cfg:    cfg,
		now:    time.Now,
		logger: slog.Default().With("component", "breaker", "name", name),
	}
}

// Do runs fn unless the breaker is open. Rejected calls return an error
// wrapping ErrOpen without calling fn.
func (b *Breaker) Do(fn func() error) error {
	if err := b.allow(); err != nil {
		return err
	}
	err := fn()
	b.record(err)
	return err
}

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Breaker) allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch b.state {
	case StateOpen:
		wait := b.cfg.Cooldown - b.now().Sub(b.openedAt)
		if wait > 0 {
			return fmt.Errorf("%s: %w (retry in %v)", b.name, ErrOpen, wait.Round(time.Millisecond))
		}
		b.state = StateHalfOpen
		b.probing = true
		b.logger.Info("breaker half-open")
	case StateHalfOpen:
		if b.probing {
			return fmt.Errorf("%s: %w (probe in flight)", b.name, ErrOpen)
		}
		b.probing = true
	}
	return nil
}

func (b *Breaker) record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.probing = false
	if err == nil {
		if b.state != StateClosed {
			b.logger.Info("breaker closed")
		}
		b.state = StateClosed
		b.failures = 0
		return
	}
	b.failures++
	if b.state == StateHalfOpen || b.failures >= b.cfg.Threshold {
		if b.state != StateOpen {
			b.logger.Warn("breaker opened", "consecutive_failures", b.failures, "error", err)
		}
		b.state = StateOpen
		b.openedAt = b.now()
	}
}
