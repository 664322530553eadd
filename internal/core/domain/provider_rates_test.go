package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/fx_rates_service/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewProviderRatesResponse_CopiesAndNormalizes(t *testing.T) {
	src := map[string]decimal.Decimal{
		"eur":  decimal.RequireFromString("0.92"),
		" GBP": decimal.RequireFromString("0.79"),
	}
	resp := domain.NewProviderRatesResponse("mock-a", "usd", time.Unix(1700000000, 0), src)

	src["JPY"] = decimal.NewFromInt(150)

	assert.Equal(t, "USD", resp.BaseCurrencyCode)
	assert.Equal(t, 2, resp.Len())
	assert.Equal(t, []string{"EUR", "GBP"}, resp.TargetCodes())

	rate, ok := resp.Rate("eur")
	assert.True(t, ok)
	assert.True(t, rate.Equal(decimal.RequireFromString("0.92")))

	copied := resp.Rates()
	delete(copied, "EUR")
	assert.Equal(t, 2, resp.Len())
}

func TestProviderRatesResponse_IsEmpty(t *testing.T) {
	tests := []struct {
		name string
		resp *domain.ProviderRatesResponse
		want bool
	}{
		{name: "nil response", resp: nil, want: true},
		{name: "no rates", resp: domain.NewProviderRatesResponse("p", "USD", time.Now(), nil), want: true},
		{
			name: "one rate",
			resp: domain.NewProviderRatesResponse("p", "USD", time.Now(), map[string]decimal.Decimal{"EUR": decimal.NewFromInt(1)}),
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.resp.IsEmpty())
		})
	}
}

func TestNewProviderHealth(t *testing.T) {
	status := func(name string, available bool) domain.ProviderStatus {
		return domain.ProviderStatus{Name: name, Available: available}
	}
	tests := []struct {
		name         string
		statuses     []domain.ProviderStatus
		wantDegraded bool
	}{
		{name: "all available", statuses: []domain.ProviderStatus{status("a", true), status("b", true)}, wantDegraded: false},
		{name: "exactly half available", statuses: []domain.ProviderStatus{status("a", true), status("b", false)}, wantDegraded: false},
		{name: "one of three available", statuses: []domain.ProviderStatus{status("a", true), status("b", false), status("c", false)}, wantDegraded: true},
		{name: "none available", statuses: []domain.ProviderStatus{status("a", false)}, wantDegraded: true},
		{name: "no providers", statuses: nil, wantDegraded: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := domain.NewProviderHealth(tt.statuses)
			assert.Equal(t, tt.wantDegraded, h.Degraded)
			assert.Equal(t, len(tt.statuses), h.Total)
		})
	}
}
