package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ProviderRatesResponse is a normalized snapshot of one provider's rates for a base.
// It is immutable once constructed; Rates returns a copy.
type ProviderRatesResponse struct {
	Provider         string
	BaseCurrencyCode string
	Timestamp        time.Time
	rates            map[string]decimal.Decimal
}

// NewProviderRatesResponse copies rates, upper-casing the target codes.
func NewProviderRatesResponse(provider, base string, ts time.Time, rates map[string]decimal.Decimal) *ProviderRatesResponse {
	copied := make(map[string]decimal.Decimal, len(rates))
	for code, rate := range rates {
		copied[strings.ToUpper(strings.TrimSpace(code))] = rate
	}
	return &ProviderRatesResponse{
		Provider:         provider,
		BaseCurrencyCode: strings.ToUpper(base),
		Timestamp:        ts,
		rates:            copied,
	}
}

// IsEmpty reports whether the snapshot carries no rates. A nil response is empty.
func (r *ProviderRatesResponse) IsEmpty() bool {
	return r == nil || len(r.rates) == 0
}

// Len returns the number of target currencies.
func (r *ProviderRatesResponse) Len() int {
	if r == nil {
		return 0
	}
	return len(r.rates)
}

// Rate looks up a single target code.
func (r *ProviderRatesResponse) Rate(code string) (decimal.Decimal, bool) {
	if r == nil {
		return decimal.Decimal{}, false
	}
	rate, ok := r.rates[strings.ToUpper(code)]
	return rate, ok
}

// Rates returns a copy of the target -> rate mapping.
func (r *ProviderRatesResponse) Rates() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, r.Len())
	if r == nil {
		return out
	}
	for code, rate := range r.rates {
		out[code] = rate
	}
	return out
}

// TargetCodes returns the target codes in ascending order.
func (r *ProviderRatesResponse) TargetCodes() []string {
	if r == nil {
		return nil
	}
	codes := make([]string, 0, len(r.rates))
	for code := range r.rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
