package providers

import (
	"log/slog"
	"net/http"

	portsprov "github.com/SscSPs/fx_rates_service/internal/core/ports/providers"
	"github.com/SscSPs/fx_rates_service/internal/platform/config"
)

// NewProvidersFromConfig builds every configured adapter in registration
// order (mock-a, mock-b, fixer). Mock sources without a base URL are
// skipped; fixer is always registered and stays disabled without a key.
// Any malformed URL fails the whole call.
func NewProvidersFromConfig(cfg config.ProvidersConfig, client *http.Client, logger *slog.Logger) ([]portsprov.RatesProvider, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var out []portsprov.RatesProvider

	if cfg.MockABaseURL != "" {
		p, err := NewMockAProvider(cfg.MockABaseURL, client)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	} else {
		logger.Info("Rate provider not configured", slog.String("provider", MockAName))
	}

	if cfg.MockBBaseURL != "" {
		p, err := NewMockBProvider(cfg.MockBBaseURL, client)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	} else {
		logger.Info("Rate provider not configured", slog.String("provider", MockBName))
	}

	fixer, err := NewFixerProvider(cfg.FixerBaseURL, cfg.FixerAccessKey, cfg.FixerFixedBase, client)
	if err != nil {
		return nil, err
	}
	if !fixer.Enabled() {
		logger.Info("Rate provider disabled: no access key", slog.String("provider", FixerName))
	}
	out = append(out, fixer)

	return out, nil
}
