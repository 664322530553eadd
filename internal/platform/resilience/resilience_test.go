package resilience_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SscSPs/fx_rates_service/internal/apperrors"
	"github.com/SscSPs/fx_rates_service/internal/platform/resilience"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetrying(t *testing.T) {
	t.Run("retries an error once then succeeds", func(t *testing.T) {
		var calls int32
		call := resilience.Retrying(resilience.Retry{MaxAttempts: 2, Wait: time.Millisecond}, func(ctx context.Context) (string, error) {
			if atomic.AddInt32(&calls, 1) == 1 {
				return "", errors.New("transient")
			}
			return "ok", nil
		})
		v, err := call(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "ok", v)
		assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
	})

	t.Run("gives up after max attempts with the last error", func(t *testing.T) {
		var calls int32
		call := resilience.Retrying(resilience.Retry{MaxAttempts: 2, Wait: time.Millisecond}, func(ctx context.Context) (string, error) {
			n := atomic.AddInt32(&calls, 1)
			return "", fmt.Errorf("attempt %d", n)
		})
		_, err := call(context.Background())
		assert.EqualError(t, err, "attempt 2")
		assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
	})

	t.Run("empty success is never retried", func(t *testing.T) {
		var calls int32
		call := resilience.Retrying(resilience.Retry{MaxAttempts: 3}, func(ctx context.Context) (*int, error) {
			atomic.AddInt32(&calls, 1)
			return nil, nil
		})
		v, err := call(context.Background())
		require.NoError(t, err)
		assert.Nil(t, v)
		assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
	})

	t.Run("stops waiting when the context ends", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		var calls int32
		call := resilience.Retrying(resilience.Retry{MaxAttempts: 5, Wait: time.Hour}, func(ctx context.Context) (int, error) {
			atomic.AddInt32(&calls, 1)
			cancel()
			return 0, errors.New("fail")
		})
		_, err := call(ctx)
		assert.Error(t, err)
		assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
	})
}

func TestTimeLimited(t *testing.T) {
	t.Run("returns promptly with provider unavailable", func(t *testing.T) {
		released := make(chan struct{})
		call := resilience.TimeLimited(resilience.TimeLimiter{Name: "slow", Timeout: 20 * time.Millisecond}, func(ctx context.Context) (int, error) {
			<-ctx.Done()
			close(released)
			return 0, ctx.Err()
		})

		start := time.Now()
		_, err := call(context.Background())
		elapsed := time.Since(start)

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrProviderUnavailable)
		assert.Contains(t, err.Error(), "timed out")
		assert.Less(t, elapsed, time.Second)

		select {
		case <-released:
		case <-time.After(time.Second):
			t.Fatal("worker context was not cancelled")
		}
	})

	t.Run("fast call passes through", func(t *testing.T) {
		call := resilience.TimeLimited(resilience.TimeLimiter{Name: "fast", Timeout: time.Second}, func(ctx context.Context) (int, error) {
			return 7, nil
		})
		v, err := call(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 7, v)
	})
}

func TestRecovering(t *testing.T) {
	call := resilience.Recovering(func(ctx context.Context) (int, error) {
		panic("adapter bug")
	})
	_, err := call(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "adapter bug")
}

func TestDecorate_BreakerCountsOneOutcomePerRetriedCall(t *testing.T) {
	cfg := resilience.DefaultConfig()
	cfg.RetryWait = time.Millisecond
	registry := resilience.NewRegistry(cfg)
	policy := registry.Policy("flaky")

	var invocations int32
	failing := func(ctx context.Context) (int, error) {
		atomic.AddInt32(&invocations, 1)
		return 0, errors.New("down")
	}

	for i := 0; i < 5; i++ {
		_, err := resilience.Execute(context.Background(), policy, failing)
		require.Error(t, err)
	}
	// Five composed calls, two attempts each.
	assert.EqualValues(t, 10, atomic.LoadInt32(&invocations))
	assert.Equal(t, resilience.StateOpen, registry.Breaker("flaky").State())

	_, err := resilience.Execute(context.Background(), policy, failing)
	assert.ErrorIs(t, err, apperrors.ErrProviderUnavailable)
	assert.EqualValues(t, 10, atomic.LoadInt32(&invocations))
}

func TestDecorate_TimeoutBoundsRetries(t *testing.T) {
	cfg := resilience.DefaultConfig()
	cfg.Timeout = 30 * time.Millisecond
	cfg.RetryWait = time.Hour
	policy := resilience.NewRegistry(cfg).Policy("slow")

	start := time.Now()
	_, err := resilience.Execute(context.Background(), policy, func(ctx context.Context) (int, error) {
		return 0, errors.New("fail")
	})
	assert.ErrorIs(t, err, apperrors.ErrProviderUnavailable)
	assert.Less(t, time.Since(start), time.Second)
}

func TestRegistry_SharesBreakersByName(t *testing.T) {
	registry := resilience.NewRegistry(resilience.DefaultConfig())
	a := registry.Breaker("mock-a")
	assert.Same(t, a, registry.Breaker("mock-a"))
	assert.NotSame(t, a, registry.Breaker("mock-b"))
	assert.Equal(t, []string{"mock-a", "mock-b"}, registry.Names())
	assert.Equal(t, map[string]resilience.State{"mock-a": resilience.StateClosed, "mock-b": resilience.StateClosed}, registry.States())
}
