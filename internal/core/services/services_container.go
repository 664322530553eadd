package services

import (
	"log/slog"

	portscache "github.com/SscSPs/fx_rates_service/internal/core/ports/cache"
	portsevents "github.com/SscSPs/fx_rates_service/internal/core/ports/events"
	portsprov "github.com/SscSPs/fx_rates_service/internal/core/ports/providers"
	portsrepo "github.com/SscSPs/fx_rates_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fx_rates_service/internal/core/ports/services"
	"github.com/SscSPs/fx_rates_service/internal/platform/config"
	"github.com/SscSPs/fx_rates_service/internal/platform/metrics"
	"github.com/SscSPs/fx_rates_service/internal/platform/resilience"
)

// ContainerDeps carries the optional collaborators of the service container.
type ContainerDeps struct {
	Providers []portsprov.RatesProvider
	Metrics   *metrics.Metrics
	Publisher portsevents.RefreshEventPublisher
	RateCache portscache.RateCache
	Logger    *slog.Logger
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, deps ContainerDeps) *portssvc.ServiceContainer {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	container := &portssvc.ServiceContainer{}

	currencySvc := NewCurrencyService(repos.CurrencyRepo)
	var rateOpts []ExchangeRateOption
	if deps.RateCache != nil {
		rateOpts = append(rateOpts, WithRateCache(deps.RateCache))
	}
	exchangeRateSvc := NewExchangeRateService(repos.ExchangeRateRepo, currencySvc, rateOpts...)
	aggregator := NewRateAggregatorService(
		deps.Providers,
		cfg.Resilience.ProviderOrder,
		ResilienceConfig(cfg.Resilience),
		WithAggregatorMetrics(deps.Metrics),
		WithAggregatorLogger(deps.Logger),
	)

	refreshOpts := []RefreshOption{WithRefreshMetrics(deps.Metrics)}
	if deps.Publisher != nil {
		refreshOpts = append(refreshOpts, WithRefreshPublisher(deps.Publisher))
	}

	container.Currency = currencySvc
	container.ExchangeRate = exchangeRateSvc
	container.Aggregator = aggregator
	container.Refresh = NewRateRefreshService(currencySvc, aggregator, exchangeRateSvc, refreshOpts...)

	return container
}

// ResilienceConfig maps configuration onto the resilience strategies.
func ResilienceConfig(c config.ResilienceConfig) resilience.Config {
	return resilience.Config{
		Timeout:     c.Timeout,
		MaxAttempts: c.RetryMaxAttempts,
		RetryWait:   c.RetryWait,
		Breaker: resilience.BreakerConfig{
			WindowSize:           c.WindowSize,
			MinimumCalls:         c.MinimumCalls,
			FailureRateThreshold: c.FailureRateThreshold,
			OpenWait:             c.OpenWait,
			HalfOpenMaxCalls:     c.HalfOpenCalls,
		},
	}
}
