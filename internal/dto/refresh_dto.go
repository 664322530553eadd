package dto

import (
	"time"

	"github.com/SscSPs/fx_rates_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RefreshSummaryResponse is returned by the manual refresh trigger.
type RefreshSummaryResponse struct {
	CurrenciesInSystem  int       `json:"currenciesInSystem"`
	CurrenciesProcessed int       `json:"currenciesProcessed"`
	ProvidersWithData   int       `json:"providersWithData"`
	RatesSaved          int       `json:"ratesSaved"`
	Failures            []string  `json:"failures"`
	StartedAt           time.Time `json:"startedAt"`
	DurationMillis      int64     `json:"durationMillis"`
}

// ToRefreshSummaryResponse converts a domain.RefreshSummary.
func ToRefreshSummaryResponse(s domain.RefreshSummary) RefreshSummaryResponse {
	failures := s.Failures
	if failures == nil {
		failures = []string{}
	}
	return RefreshSummaryResponse{
		CurrenciesInSystem:  s.CurrenciesInSystem,
		CurrenciesProcessed: s.CurrenciesProcessed,
		ProvidersWithData:   s.ProvidersWithData,
		RatesSaved:          s.RatesSaved,
		Failures:            failures,
		StartedAt:           s.StartedAt,
		DurationMillis:      s.Duration.Milliseconds(),
	}
}

// ProviderHealthResponse mirrors domain.ProviderHealth.
type ProviderHealthResponse struct {
	Providers []domain.ProviderStatus `json:"providers"`
	Available int                     `json:"available"`
	Total     int                     `json:"total"`
	Degraded  bool                    `json:"degraded"`
}

// ToProviderHealthResponse converts a domain.ProviderHealth.
func ToProviderHealthResponse(h domain.ProviderHealth) ProviderHealthResponse {
	providers := h.Providers
	if providers == nil {
		providers = []domain.ProviderStatus{}
	}
	return ProviderHealthResponse{
		Providers: providers,
		Available: h.Available,
		Total:     h.Total,
		Degraded:  h.Degraded,
	}
}

// AggregatedRatesResponse is the result of consulting the providers for one base.
type AggregatedRatesResponse struct {
	BaseCurrencyCode string                     `json:"baseCurrencyCode"`
	HasData          bool                       `json:"hasData"`
	Provider         string                     `json:"provider,omitempty"`
	Timestamp        *time.Time                 `json:"timestamp,omitempty"`
	Rates            map[string]decimal.Decimal `json:"rates,omitempty"`
	Attempts         []domain.ProviderAttempt   `json:"attempts"`
}

// ToAggregatedRatesResponse converts either aggregation outcome.
func ToAggregatedRatesResponse(base string, result domain.AggregationResult) AggregatedRatesResponse {
	resp := AggregatedRatesResponse{
		BaseCurrencyCode: base,
		Attempts:         result.ProviderAttempts(),
	}
	if resp.Attempts == nil {
		resp.Attempts = []domain.ProviderAttempt{}
	}
	if success, ok := result.(domain.AggregationSuccess); ok {
		ts := success.Chosen.Timestamp
		resp.HasData = true
		resp.Provider = success.Chosen.Provider
		resp.Timestamp = &ts
		resp.Rates = success.Chosen.Rates()
	}
	return resp
}
