// Package scheduler triggers rate refresh passes on a fixed interval.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	portssvc "github.com/SscSPs/fx_rates_service/internal/core/ports/services"
)

// RefreshScheduler calls RefreshAll every Interval until its context ends.
type RefreshScheduler struct {
	refresher  portssvc.RateRefreshSvc
	interval   time.Duration
	runOnStart bool
	logger     *slog.Logger
}

func NewRefreshScheduler(refresher portssvc.RateRefreshSvc, interval time.Duration, runOnStart bool, logger *slog.Logger) *RefreshScheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RefreshScheduler{
		refresher:  refresher,
		interval:   interval,
		runOnStart: runOnStart,
		logger:     logger,
	}
}

// Start blocks until ctx is done. A pass already running when ctx ends is
// allowed to finish, since RefreshAll detaches from cancellation.
func (s *RefreshScheduler) Start(ctx context.Context) {
	if s.interval <= 0 {
		s.logger.Warn("Refresh scheduler disabled", slog.Duration("interval", s.interval))
		return
	}

	s.logger.Info("Starting refresh scheduler", slog.Duration("interval", s.interval))
	if s.runOnStart {
		s.run(ctx)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Stopping refresh scheduler")
			return
		case <-ticker.C:
			s.run(ctx)
		}
	}
}

func (s *RefreshScheduler) run(ctx context.Context) {
	summary := s.refresher.RefreshAll(ctx)
	if summary.HasFailures() {
		s.logger.Warn("Scheduled refresh finished with failures",
			slog.Int("rates_saved", summary.RatesSaved),
			slog.Int("failures", len(summary.Failures)))
	}
}
