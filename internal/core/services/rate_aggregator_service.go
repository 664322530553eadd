package services

import (
	"context"
	"log/slog"
	"sort"

	"github.com/SscSPs/fx_rates_service/internal/core/domain"
	portsprov "github.com/SscSPs/fx_rates_service/internal/core/ports/providers"
	portssvc "github.com/SscSPs/fx_rates_service/internal/core/ports/services"
	"github.com/SscSPs/fx_rates_service/internal/platform/metrics"
	"github.com/SscSPs/fx_rates_service/internal/platform/resilience"
)

// RateAggregatorService walks the providers in priority order and returns
// the first non-empty answer. Each call goes through the provider's
// resilience policy; breaker state lives in the service's registry.
type RateAggregatorService struct {
	BaseService
	providers []portsprov.RatesProvider
	registry  *resilience.Registry
	metrics   *metrics.Metrics
}

var _ portssvc.RateAggregatorSvc = (*RateAggregatorService)(nil)

// AggregatorOption configures a RateAggregatorService.
type AggregatorOption func(*aggregatorOptions)

type aggregatorOptions struct {
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// WithAggregatorMetrics records attempts and breaker states.
func WithAggregatorMetrics(m *metrics.Metrics) AggregatorOption {
	return func(o *aggregatorOptions) {
		o.metrics = m
	}
}

// WithAggregatorLogger sets the logger used for breaker transitions.
func WithAggregatorLogger(logger *slog.Logger) AggregatorOption {
	return func(o *aggregatorOptions) {
		o.logger = logger
	}
}

// NewRateAggregatorService orders providers by providerOrder and creates
// one breaker per provider.
func NewRateAggregatorService(providers []portsprov.RatesProvider, providerOrder []string, cfg resilience.Config, options ...AggregatorOption) *RateAggregatorService {
	opts := aggregatorOptions{logger: slog.Default()}
	for _, option := range options {
		option(&opts)
	}

	userHook := cfg.Breaker.OnStateChange
	cfg.Breaker.OnStateChange = func(name string, from, to resilience.State) {
		opts.logger.Warn("Circuit breaker state changed",
			slog.String("provider", name),
			slog.String("from", from.String()),
			slog.String("to", to.String()))
		opts.metrics.SetCircuitState(name, int(to))
		if userHook != nil {
			userHook(name, from, to)
		}
	}

	s := &RateAggregatorService{
		providers: OrderProviders(providers, providerOrder),
		registry:  resilience.NewRegistry(cfg),
		metrics:   opts.metrics,
	}
	for _, p := range s.providers {
		s.registry.Breaker(p.Name())
		s.metrics.SetCircuitState(p.Name(), int(resilience.StateClosed))
	}
	return s
}

// OrderProviders stable-sorts providers by their position in order.
// Providers not named in order keep their relative order after the named
// ones. An empty order keeps the input order.
func OrderProviders(providers []portsprov.RatesProvider, order []string) []portsprov.RatesProvider {
	out := make([]portsprov.RatesProvider, len(providers))
	copy(out, providers)
	if len(order) == 0 {
		return out
	}

	rank := make(map[string]int, len(order))
	for i, name := range order {
		if _, seen := rank[name]; !seen {
			rank[name] = i
		}
	}
	position := func(p portsprov.RatesProvider) int {
		if r, ok := rank[p.Name()]; ok {
			return r
		}
		return len(order)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return position(out[i]) < position(out[j])
	})
	return out
}

// Providers returns the provider names in walk order.
func (s *RateAggregatorService) Providers() []string {
	names := make([]string, len(s.providers))
	for i, p := range s.providers {
		names[i] = p.Name()
	}
	return names
}

// Registry exposes the breaker registry.
func (s *RateAggregatorService) Registry() *resilience.Registry {
	return s.registry
}

func (s *RateAggregatorService) FetchLatestRates(ctx context.Context, baseCurrencyCode string) domain.AggregationResult {
	attempts := make([]domain.ProviderAttempt, 0, len(s.providers))

	for _, p := range s.providers {
		provider := p
		name := provider.Name()
		resp, err := resilience.Execute(ctx, s.registry.Policy(name), func(ctx context.Context) (*domain.ProviderRatesResponse, error) {
			return provider.FetchLatestRates(ctx, baseCurrencyCode)
		})

		// An open circuit comes back as a ProviderUnavailable error and is
		// logged as an error attempt ("circuit open"), not as an empty one.
		// Either way the walk moves on to the next provider.
		switch {
		case err != nil:
			s.LogWarn(ctx, "Rate provider failed",
				slog.String("provider", name),
				slog.String("base", baseCurrencyCode),
				slog.String("error", err.Error()))
			s.metrics.ObserveAttempt(name, metrics.OutcomeError)
			attempts = append(attempts, domain.ProviderAttempt{ProviderName: name, ErrorMessage: err.Error()})
		case resp.IsEmpty():
			s.LogDebug(ctx, "Rate provider returned no data",
				slog.String("provider", name),
				slog.String("base", baseCurrencyCode))
			s.metrics.ObserveAttempt(name, metrics.OutcomeNoData)
			attempts = append(attempts, domain.ProviderAttempt{ProviderName: name})
		default:
			s.metrics.ObserveAttempt(name, metrics.OutcomeData)
			attempts = append(attempts, domain.ProviderAttempt{ProviderName: name, ReturnedData: true})
			return domain.AggregationSuccess{Chosen: resp, Attempts: attempts}
		}
	}

	return domain.AggregationNoData{Attempts: attempts}
}

func (s *RateAggregatorService) ProviderHealth() domain.ProviderHealth {
	statuses := make([]domain.ProviderStatus, 0, len(s.providers))
	for _, p := range s.providers {
		state := s.registry.Breaker(p.Name()).State()
		statuses = append(statuses, domain.ProviderStatus{
			Name:         p.Name(),
			CircuitState: state.String(),
			Available:    state != resilience.StateOpen,
		})
	}
	return domain.NewProviderHealth(statuses)
}
