package cache

import (
	"context"

	"github.com/SscSPs/fx_rates_service/internal/core/domain"
)

// RateCache keeps recently read pair lookups out of the database.
type RateCache interface {
	// GetRate returns nil, nil on a miss.
	GetRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error)
	SetRate(ctx context.Context, fromCode, toCode string, rate domain.ExchangeRate) error
	// InvalidatePair drops both directions of a pair.
	InvalidatePair(ctx context.Context, fromCode, toCode string) error
}
