package resilience

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/fx_rates_service/internal/apperrors"
)

// TimeLimiter bounds the total duration of a call.
type TimeLimiter struct {
	Name    string
	Timeout time.Duration
}

// TimeLimited runs call on a worker goroutine and stops waiting once the
// limit passes. The worker's context is cancelled at that point so the
// underlying transport can give up; the worker itself is abandoned and
// writes into a buffered channel nobody reads, so it never blocks.
func TimeLimited[T any](tl TimeLimiter, call Call[T]) Call[T] {
	return func(ctx context.Context) (T, error) {
		if tl.Timeout <= 0 {
			return call(ctx)
		}
		ctx, cancel := context.WithTimeout(ctx, tl.Timeout)
		defer cancel()

		type outcome struct {
			value T
			err   error
		}
		done := make(chan outcome, 1)
		go func() {
			v, err := call(ctx)
			done <- outcome{value: v, err: err}
		}()

		select {
		case o := <-done:
			if o.err != nil && ctx.Err() != nil {
				return o.value, limitError(tl.Name, ctx.Err())
			}
			return o.value, o.err
		case <-ctx.Done():
			var zero T
			return zero, limitError(tl.Name, ctx.Err())
		}
	}
}

func limitError(name string, cause error) error {
	if errors.Is(cause, context.DeadlineExceeded) {
		return apperrors.NewProviderUnavailableError(name, "timed out", cause)
	}
	return apperrors.NewProviderUnavailableError(name, "call cancelled", cause)
}
