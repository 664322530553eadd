package events

import (
	"context"

	"github.com/SscSPs/fx_rates_service/internal/core/domain"
)

// RefreshEventPublisher announces completed refresh passes.
type RefreshEventPublisher interface {
	PublishRefreshCompleted(ctx context.Context, summary domain.RefreshSummary) error
}
