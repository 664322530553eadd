package resilience

import (
	"context"
	"time"
)

// Retry re-invokes a failed call with a fixed pause. MaxAttempts counts
// every invocation, the first one included. Only errors are retried; a
// successful call returning an empty value is final.
type Retry struct {
	MaxAttempts int
	Wait        time.Duration
}

// Retrying applies r to call.
func Retrying[T any](r Retry, call Call[T]) Call[T] {
	return func(ctx context.Context) (T, error) {
		attempts := r.MaxAttempts
		if attempts < 1 {
			attempts = 1
		}
		var zero T
		var lastErr error
		for attempt := 1; attempt <= attempts; attempt++ {
			v, err := call(ctx)
			if err == nil {
				return v, nil
			}
			lastErr = err
			if attempt == attempts || ctx.Err() != nil {
				break
			}
			if !pause(ctx, r.Wait) {
				break
			}
		}
		return zero, lastErr
	}
}

// pause sleeps for d and reports false if ctx ended first.
func pause(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
