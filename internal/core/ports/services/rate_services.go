package services

import (
	"context"

	"github.com/SscSPs/fx_rates_service/internal/core/domain"
)

// RateAggregatorSvc consults the registered providers in priority order.
type RateAggregatorSvc interface {
	// FetchLatestRates walks the providers and returns the first non-empty answer.
	// It never returns an error; see domain.AggregationNoData.
	FetchLatestRates(ctx context.Context, baseCurrencyCode string) domain.AggregationResult

	// ProviderHealth reports the circuit state of every provider.
	ProviderHealth() domain.ProviderHealth
}

// RateRefreshSvc runs a refresh pass over every known currency.
type RateRefreshSvc interface {
	// RefreshAll never fails as a whole; problems are listed in the summary.
	RefreshAll(ctx context.Context) domain.RefreshSummary
}
