package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/fx_rates_service/internal/core/domain"
	portsevents "github.com/SscSPs/fx_rates_service/internal/core/ports/events"
	portssvc "github.com/SscSPs/fx_rates_service/internal/core/ports/services"
	"github.com/SscSPs/fx_rates_service/internal/platform/metrics"
)

// RateRefreshService pulls the latest rates for every known currency and
// appends them to storage, one rate at a time.
type RateRefreshService struct {
	BaseService
	currencies portssvc.CurrencyReaderSvc
	aggregator portssvc.RateAggregatorSvc
	recorder   portssvc.ProviderRateRecorder
	publisher  portsevents.RefreshEventPublisher
	metrics    *metrics.Metrics
}

var _ portssvc.RateRefreshSvc = (*RateRefreshService)(nil)

// RefreshOption configures a RateRefreshService.
type RefreshOption func(*RateRefreshService)

// WithRefreshPublisher announces every finished pass.
func WithRefreshPublisher(p portsevents.RefreshEventPublisher) RefreshOption {
	return func(s *RateRefreshService) {
		s.publisher = p
	}
}

// WithRefreshMetrics records pass totals.
func WithRefreshMetrics(m *metrics.Metrics) RefreshOption {
	return func(s *RateRefreshService) {
		s.metrics = m
	}
}

func NewRateRefreshService(currencies portssvc.CurrencyReaderSvc, aggregator portssvc.RateAggregatorSvc, recorder portssvc.ProviderRateRecorder, options ...RefreshOption) *RateRefreshService {
	s := &RateRefreshService{
		currencies: currencies,
		aggregator: aggregator,
		recorder:   recorder,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// RefreshAll runs one pass. It is detached from ctx cancellation so a
// caller going away does not cut a pass short, and it never fails as a
// whole: per-rate problems are listed in the summary.
func (s *RateRefreshService) RefreshAll(ctx context.Context) domain.RefreshSummary {
	ctx = context.WithoutCancel(ctx)
	start := time.Now()
	summary := domain.RefreshSummary{StartedAt: start, Failures: []string{}}

	s.LogInfo(ctx, "Rate refresh started")

	currencies, err := s.currencies.ListCurrencies(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list currencies for refresh")
		summary.Failures = append(summary.Failures, fmt.Sprintf("failed to list currencies: %v", err))
		return s.finish(ctx, summary)
	}
	summary.CurrenciesInSystem = len(currencies)

	for _, currency := range currencies {
		base := strings.ToUpper(strings.TrimSpace(currency.CurrencyCode))
		summary.CurrenciesProcessed++

		success, ok := s.aggregator.FetchLatestRates(ctx, base).(domain.AggregationSuccess)
		if !ok {
			s.LogInfo(ctx, "No provider returned rates", slog.String("base", base))
			continue
		}
		summary.ProvidersWithData++
		s.persist(ctx, base, success.Chosen, &summary)
	}

	return s.finish(ctx, summary)
}

func (s *RateRefreshService) persist(ctx context.Context, base string, chosen *domain.ProviderRatesResponse, summary *domain.RefreshSummary) {
	for _, target := range chosen.TargetCodes() {
		rate, _ := chosen.Rate(target)
		if strings.TrimSpace(target) == "" || rate.IsZero() {
			continue
		}
		if strings.EqualFold(target, base) {
			continue
		}

		err := s.recorder.RecordProviderRate(ctx, domain.ProviderRate{
			BaseCurrencyCode:   base,
			TargetCurrencyCode: target,
			Rate:               rate,
			Timestamp:          chosen.Timestamp,
			Provider:           chosen.Provider,
		})
		if err != nil {
			msg := fmt.Sprintf("failed to save rate %s->%s: %v", base, target, err)
			s.LogWarn(ctx, "Failed to save rate",
				slog.String("base", base),
				slog.String("target", target),
				slog.String("error", err.Error()))
			summary.Failures = append(summary.Failures, msg)
			continue
		}
		summary.RatesSaved++
	}
}

func (s *RateRefreshService) finish(ctx context.Context, summary domain.RefreshSummary) domain.RefreshSummary {
	summary.Duration = time.Since(summary.StartedAt)
	s.metrics.ObserveRefresh(summary.RatesSaved, len(summary.Failures), summary.Duration)

	s.LogInfo(ctx, "Rate refresh finished",
		slog.Int("currencies_in_system", summary.CurrenciesInSystem),
		slog.Int("currencies_processed", summary.CurrenciesProcessed),
		slog.Int("providers_with_data", summary.ProvidersWithData),
		slog.Int("rates_saved", summary.RatesSaved),
		slog.Int("failures", len(summary.Failures)),
		slog.Duration("duration", summary.Duration))

	if s.publisher != nil {
		if err := s.publisher.PublishRefreshCompleted(ctx, summary); err != nil {
			s.LogError(ctx, err, "Failed to publish refresh event")
		}
	}
	return summary
}
