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

// FixerName is the registered name of the fixer-style source.
const FixerName = "fixer"

// DefaultFixerBaseURL is used when no base URL is configured.
const DefaultFixerBaseURL = "http://data.fixer.io/api"

type fixerError struct {
	Code int    `json:"code"`
	Type string `json:"type"`
	Info string `json:"info"`
}

type fixerResponse struct {
	Success   bool                       `json:"success"`
	Timestamp int64                      `json:"timestamp"`
	Base      string                     `json:"base"`
	Rates     map[string]decimal.Decimal `json:"rates"`
	Error     *fixerError                `json:"error"`
}

// FixerProvider reads GET {base}/latest?access_key=KEY&base=CODE.
//
// Without an access key the provider is disabled and reports no data
// without calling out. When fixedBase is set (plans that only quote one
// base) the request is always made in fixedBase and the answer is rebased
// onto the requested currency.
type FixerProvider struct {
	src       httpSource
	accessKey string
	fixedBase string
}

var _ portsprov.RatesProvider = (*FixerProvider)(nil)

// NewFixerProvider validates baseURL and fixedBase and returns the adapter.
func NewFixerProvider(baseURL, accessKey, fixedBase string, client *http.Client) (*FixerProvider, error) {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultFixerBaseURL
	}
	src, err := newHTTPSource(FixerName, baseURL, client)
	if err != nil {
		return nil, err
	}
	fixedBase = strings.ToUpper(strings.TrimSpace(fixedBase))
	if fixedBase != "" {
		if _, err := normalizeBaseCode(FixerName, fixedBase); err != nil {
			return nil, fmt.Errorf("provider %s: invalid fixed base: %w", FixerName, err)
		}
	}
	return &FixerProvider{
		src:       src,
		accessKey: strings.TrimSpace(accessKey),
		fixedBase: fixedBase,
	}, nil
}

func (p *FixerProvider) Name() string { return FixerName }

// Enabled reports whether an access key is configured.
func (p *FixerProvider) Enabled() bool { return p.accessKey != "" }

func (p *FixerProvider) FetchLatestRates(ctx context.Context, baseCurrencyCode string) (*domain.ProviderRatesResponse, error) {
	base, err := normalizeBaseCode(FixerName, baseCurrencyCode)
	if err != nil {
		return nil, err
	}
	if !p.Enabled() {
		return nil, nil
	}

	requestBase := base
	if p.fixedBase != "" {
		requestBase = p.fixedBase
	}

	var body fixerResponse
	query := url.Values{"access_key": {p.accessKey}, "base": {requestBase}}
	if err := p.src.getJSON(ctx, "/latest", query, &body); err != nil {
		return nil, err
	}
	if !body.Success {
		info := "source reported failure"
		if body.Error != nil && body.Error.Info != "" {
			info = body.Error.Info
		}
		return nil, p.src.unavailable(info, nil)
	}
	if body.Timestamp <= 0 || body.Rates == nil {
		return nil, p.src.unavailable("response is missing required fields", nil)
	}

	rates := positiveRates(body.Rates)
	if requestBase != base && len(rates) > 0 {
		rates, err = rebase(rates, requestBase, base)
		if err != nil {
			return nil, p.src.unavailable(err.Error(), nil)
		}
	}
	if len(rates) == 0 {
		return nil, nil
	}
	return domain.NewProviderRatesResponse(FixerName, base, time.Unix(body.Timestamp, 0).UTC(), rates), nil
}

// rebase converts rates quoted in from into rates quoted in to by dividing
// each rate by to's own rate. from itself becomes 1/rate(to) and to
// becomes exactly 1.
func rebase(rates map[string]decimal.Decimal, from, to string) (map[string]decimal.Decimal, error) {
	pivot, ok := rates[to]
	if !ok || !pivot.IsPositive() {
		return nil, fmt.Errorf("requested base %s missing from %s quotes", to, from)
	}
	out := make(map[string]decimal.Decimal, len(rates)+1)
	for code, rate := range rates {
		out[code] = rate.Div(pivot)
	}
	out[from] = decimal.NewFromInt(1).Div(pivot)
	return out, nil
}
