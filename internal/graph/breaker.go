package graph

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"

	"github.com/smehra/proconnect/internal/domain"
)

// BreakerOptions tunes the circuit breaker wrapping a remote accessor.
type BreakerOptions struct {
	// ConsecutiveFailures before the breaker opens. Defaults to 5.
	ConsecutiveFailures uint32
	// Timeout the breaker stays open before probing again. Defaults to 30s.
	Timeout time.Duration
}

// WithBreaker decorates a remote accessor with a circuit breaker so a
// struggling graph store fails fast instead of piling up blocked requests.
// ErrNotFound is a valid answer, not a store failure, and never trips the
// breaker.
func WithBreaker(inner Accessor, opts BreakerOptions) Accessor {
	failures := opts.ConsecutiveFailures
	if failures == 0 {
		failures = 5
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "graph-accessor",
		Timeout: timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound)
		},
	})

	return &breakerAccessor{inner: inner, cb: cb}
}

type breakerAccessor struct {
	inner Accessor
	cb    *gobreaker.CircuitBreaker
}

func (b *breakerAccessor) DirectNeighbors(ctx context.Context, userID string) ([]string, error) {
	return execute(b.cb, func() ([]string, error) {
		return b.inner.DirectNeighbors(ctx, userID)
	})
}

func (b *breakerAccessor) FeatureVector(ctx context.Context, userID string) ([]float64, error) {
	return execute(b.cb, func() ([]float64, error) {
		return b.inner.FeatureVector(ctx, userID)
	})
}

func (b *breakerAccessor) EmbeddingVector(ctx context.Context, userID string) ([]float64, error) {
	return execute(b.cb, func() ([]float64, error) {
		return b.inner.EmbeddingVector(ctx, userID)
	})
}

func (b *breakerAccessor) ListUsers(ctx context.Context) ([]domain.UserVectors, error) {
	return execute(b.cb, func() ([]domain.UserVectors, error) {
		return b.inner.ListUsers(ctx)
	})
}

func (b *breakerAccessor) ListJobs(ctx context.Context) ([]domain.Job, error) {
	return execute(b.cb, func() ([]domain.Job, error) {
		return b.inner.ListJobs(ctx)
	})
}

func (b *breakerAccessor) EdgeExists(ctx context.Context, userA, userB string) (bool, error) {
	return execute(b.cb, func() (bool, error) {
		return b.inner.EdgeExists(ctx, userA, userB)
	})
}

func execute[T any](cb *gobreaker.CircuitBreaker, fn func() (T, error)) (T, error) {
	res, err := cb.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	value, _ := res.(T)
	return value, nil
}
