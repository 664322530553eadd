package providers

import (
	"context"

	"github.com/SscSPs/fx_rates_service/internal/core/domain"
)

// RatesProvider is implemented by every external rate source.
type RatesProvider interface {
	// Name returns a stable name unique among registered providers.
	Name() string

	// FetchLatestRates returns the latest rates for baseCurrencyCode.
	// A nil response with a nil error means the provider has no data
	// (disabled, or the source answered with an empty set). The only error
	// kind returned is *apperrors.ProviderUnavailableError.
	FetchLatestRates(ctx context.Context, baseCurrencyCode string) (*domain.ProviderRatesResponse, error)
}
