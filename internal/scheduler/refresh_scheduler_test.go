package scheduler_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SscSPs/fx_rates_service/internal/core/domain"
	"github.com/SscSPs/fx_rates_service/internal/scheduler"
	"github.com/stretchr/testify/assert"
)

type countingRefresher struct {
	calls int32
}

func (r *countingRefresher) RefreshAll(ctx context.Context) domain.RefreshSummary {
	atomic.AddInt32(&r.calls, 1)
	return domain.RefreshSummary{Failures: []string{"failed to save rate USD->XXX: not found"}}
}

func (r *countingRefresher) Calls() int {
	return int(atomic.LoadInt32(&r.calls))
}

func TestStartRunsOnStartAndOnTicks(t *testing.T) {
	refresher := &countingRefresher{}
	s := scheduler.NewRefreshScheduler(refresher, 10*time.Millisecond, true, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		s.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return refresher.Calls() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after cancel")
	}
}

func TestStartWithoutRunOnStart(t *testing.T) {
	refresher := &countingRefresher{}
	s := scheduler.NewRefreshScheduler(refresher, time.Hour, false, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s.Start(ctx)

	assert.Equal(t, 0, refresher.Calls())
}

func TestStartDisabledInterval(t *testing.T) {
	refresher := &countingRefresher{}
	s := scheduler.NewRefreshScheduler(refresher, 0, true, nil)

	s.Start(context.Background())

	assert.Equal(t, 0, refresher.Calls())
}
