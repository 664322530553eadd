package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SscSPs/fx_rates_service/internal/core/domain"
	portsprov "github.com/SscSPs/fx_rates_service/internal/core/ports/providers"
	"github.com/shopspring/decimal"
)

// MockAName is the registered name of the first mock source.
const MockAName = "mock-a"

type mockAResponse struct {
	Base      string                     `json:"base"`
	Timestamp string                     `json:"timestamp"`
	Rates     map[string]decimal.Decimal `json:"rates"`
}

// MockAProvider reads GET {base}/rates?base=CODE.
type MockAProvider struct {
	src httpSource
}

var _ portsprov.RatesProvider = (*MockAProvider)(nil)

// NewMockAProvider validates baseURL and returns the adapter.
func NewMockAProvider(baseURL string, client *http.Client) (*MockAProvider, error) {
	src, err := newHTTPSource(MockAName, baseURL, client)
	if err != nil {
		return nil, err
	}
	return &MockAProvider{src: src}, nil
}

func (p *MockAProvider) Name() string { return MockAName }

func (p *MockAProvider) FetchLatestRates(ctx context.Context, baseCurrencyCode string) (*domain.ProviderRatesResponse, error) {
	base, err := normalizeBaseCode(MockAName, baseCurrencyCode)
	if err != nil {
		return nil, err
	}

	var body mockAResponse
	if err := p.src.getJSON(ctx, "/rates", url.Values{"base": {base}}, &body); err != nil {
		return nil, err
	}
	if strings.TrimSpace(body.Base) == "" || body.Timestamp == "" || body.Rates == nil {
		return nil, p.src.unavailable("response is missing required fields", nil)
	}
	if got := strings.ToUpper(strings.TrimSpace(body.Base)); got != base {
		return nil, p.src.unavailable(fmt.Sprintf("response base %s does not match requested %s", got, base), nil)
	}
	ts, err := parseISOTimestamp(body.Timestamp)
	if err != nil {
		return nil, p.src.unavailable("invalid timestamp", err)
	}

	rates := positiveRates(body.Rates)
	if len(rates) == 0 {
		return nil, nil
	}
	return domain.NewProviderRatesResponse(MockAName, base, ts, rates), nil
}

func parseISOTimestamp(v string) (time.Time, error) {
	ts, err := time.Parse(time.RFC3339Nano, v)
	if err == nil {
		return ts, nil
	}
	if local, lerr := time.Parse("2006-01-02T15:04:05", v); lerr == nil {
		return local.UTC(), nil
	}
	return time.Time{}, err
}
