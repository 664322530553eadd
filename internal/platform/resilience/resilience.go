// Package resilience wraps calls to unreliable rate sources with three
// independent strategies composed outermost first: a time limiter, a
// circuit breaker and a retry policy.
package resilience

import (
	"context"
	"fmt"
	"time"
)

// Call is a unit of work that can be decorated.
type Call[T any] func(ctx context.Context) (T, error)

// Config holds the tunables for every strategy.
type Config struct {
	Timeout     time.Duration
	MaxAttempts int
	RetryWait   time.Duration
	Breaker     BreakerConfig
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		Timeout:     2 * time.Second,
		MaxAttempts: 2,
		RetryWait:   100 * time.Millisecond,
		Breaker:     DefaultBreakerConfig(),
	}
}

// Policy bundles the strategies guarding one named call site.
type Policy struct {
	TimeLimiter TimeLimiter
	Breaker     *CircuitBreaker
	Retry       Retry
}

// Decorate composes call as TimeLimiter(CircuitBreaker(Retry(call))).
// Panics raised by call are turned into errors before any strategy sees them.
func Decorate[T any](p Policy, call Call[T]) Call[T] {
	inner := Recovering(call)
	inner = Retrying(p.Retry, inner)
	if p.Breaker != nil {
		inner = Guarded(p.Breaker, inner)
	}
	return TimeLimited(p.TimeLimiter, inner)
}

// Execute runs call through the policy.
func Execute[T any](ctx context.Context, p Policy, call Call[T]) (T, error) {
	return Decorate(p, call)(ctx)
}

// Recovering converts a panic inside call into an ordinary error.
func Recovering[T any](call Call[T]) Call[T] {
	return func(ctx context.Context) (value T, err error) {
		defer func() {
			if r := recover(); r != nil {
				var zero T
				value = zero
				err = fmt.Errorf("panic during call: %v", r)
			}
		}()
		return call(ctx)
	}
}
