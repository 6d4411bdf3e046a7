package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/bakar-bkr-studio/app-gestion-auto-entreprise/internal/logger"
	"github.com/sony/gobreaker"
)

// BreakerSettings tunes the circuit breaker put in front of a table.
type BreakerSettings struct {
	MaxRequests uint32
	Timeout     time.Duration
	MaxFailures uint32
}

// NewBreaker builds a breaker that opens after MaxFailures consecutive
// backend failures. A missing row is not a failure.
func NewBreaker(name string, s BreakerSettings) *gobreaker.CircuitBreaker {
	if s.MaxRequests == 0 {
		s.MaxRequests = 1
	}
	if s.Timeout <= 0 {
		s.Timeout = 5 * time.Second
	}
	if s.MaxFailures == 0 {
		s.MaxFailures = 3
	}
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: s.MaxRequests,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, context.Canceled)
		},
	})
}

// BreakerTable fails fast while the wrapped table keeps failing.
type BreakerTable[R any] struct {
	inner Table[R]
	cb    *gobreaker.CircuitBreaker
}

func WithBreaker[R any](inner Table[R], cb *gobreaker.CircuitBreaker) *BreakerTable[R] {
	return &BreakerTable[R]{inner: inner, cb: cb}
}

func (t *BreakerTable[R]) ListAll(ctx context.Context, orderBy string) ([]R, error) {
	out, err := t.cb.Execute(func() (interface{}, error) {
		return t.inner.ListAll(ctx, orderBy)
	})
	if err != nil {
		return nil, err
	}
	return out.([]R), nil
}

func (t *BreakerTable[R]) Insert(ctx context.Context, row R) (R, error) {
	out, err := t.cb.Execute(func() (interface{}, error) {
		return t.inner.Insert(ctx, row)
	})
	if err != nil {
		var zero R
		return zero, err
	}
	return out.(R), nil
}

func (t *BreakerTable[R]) Update(ctx context.Context, id string, patch map[string]any) (R, error) {
	out, err := t.cb.Execute(func() (interface{}, error) {
		return t.inner.Update(ctx, id, patch)
	})
	if err != nil {
		var zero R
		return zero, err
	}
	return out.(R), nil
}

func (t *BreakerTable[R]) Delete(ctx context.Context, id string) error {
	_, err := t.cb.Execute(func() (interface{}, error) {
		return nil, t.inner.Delete(ctx, id)
	})
	return err
}
