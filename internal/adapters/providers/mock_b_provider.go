package providers

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/SscSPs/fx_rates_service/internal/core/domain"
	portsprov "github.com/SscSPs/fx_rates_service/internal/core/ports/providers"
	"github.com/shopspring/decimal"
)

// MockBName is the registered name of the second mock source.
const MockBName = "mock-b"

type mockBItem struct {
	CurrencyCode string          `json:"currencyCode"`
	ExchangeRate decimal.Decimal `json:"exchangeRate"`
	Description  string          `json:"description"`
}

type mockBResponse struct {
	Success    bool        `json:"success"`
	Source     string      `json:"source"`
	LastUpdate int64       `json:"lastUpdate"`
	Data       []mockBItem `json:"data"`
}

// MockBProvider reads GET {base}/api/rates?from=CODE.
type MockBProvider struct {
	src httpSource
}

var _ portsprov.RatesProvider = (*MockBProvider)(nil)

// NewMockBProvider validates baseURL and returns the adapter.
func NewMockBProvider(baseURL string, client *http.Client) (*MockBProvider, error) {
	src, err := newHTTPSource(MockBName, baseURL, client)
	if err != nil {
		return nil, err
	}
	return &MockBProvider{src: src}, nil
}

func (p *MockBProvider) Name() string { return MockBName }

func (p *MockBProvider) FetchLatestRates(ctx context.Context, baseCurrencyCode string) (*domain.ProviderRatesResponse, error) {
	base, err := normalizeBaseCode(MockBName, baseCurrencyCode)
	if err != nil {
		return nil, err
	}

	var body mockBResponse
	if err := p.src.getJSON(ctx, "/api/rates", url.Values{"from": {base}}, &body); err != nil {
		return nil, err
	}
	if !body.Success {
		return nil, p.src.unavailable("source reported failure", nil)
	}
	if body.LastUpdate <= 0 || body.Data == nil {
		return nil, p.src.unavailable("response is missing required fields", nil)
	}

	raw := make(map[string]decimal.Decimal, len(body.Data))
	for _, item := range body.Data {
		raw[item.CurrencyCode] = item.ExchangeRate
	}
	rates := positiveRates(raw)
	if len(rates) == 0 {
		return nil, nil
	}
	return domain.NewProviderRatesResponse(MockBName, base, time.Unix(body.LastUpdate, 0).UTC(), rates), nil
}
