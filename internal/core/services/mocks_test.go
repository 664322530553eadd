package services_test

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/SscSPs/fx_rates_service/internal/core/domain"
	"github.com/SscSPs/fx_rates_service/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock CurrencyRepository ---
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) FindExchangeRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCode, toCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) ListLatestRatesForBase(ctx context.Context, base string) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, base)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

// --- Mock CurrencyService ---
type MockCurrencyService struct {
	mock.Mock
}

func (m *MockCurrencyService) GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

// --- Mock RateAggregator ---
type MockRateAggregator struct {
	mock.Mock
}

func (m *MockRateAggregator) FetchLatestRates(ctx context.Context, base string) domain.AggregationResult {
	args := m.Called(ctx, base)
	return args.Get(0).(domain.AggregationResult)
}

func (m *MockRateAggregator) ProviderHealth() domain.ProviderHealth {
	args := m.Called()
	return args.Get(0).(domain.ProviderHealth)
}

// --- Mock ProviderRateRecorder ---
type MockRateRecorder struct {
	mock.Mock
}

func (m *MockRateRecorder) RecordProviderRate(ctx context.Context, rate domain.ProviderRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

// --- Mock RefreshEventPublisher ---
type MockRateCache struct {
	mock.Mock
}

func (m *MockRateCache) GetRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCode, toCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockRateCache) SetRate(ctx context.Context, fromCode, toCode string, rate domain.ExchangeRate) error {
	args := m.Called(ctx, fromCode, toCode, rate)
	return args.Error(0)
}

func (m *MockRateCache) InvalidatePair(ctx context.Context, fromCode, toCode string) error {
	args := m.Called(ctx, fromCode, toCode)
	return args.Error(0)
}

type MockRefreshPublisher struct {
	mock.Mock
}

func (m *MockRefreshPublisher) PublishRefreshCompleted(ctx context.Context, summary domain.RefreshSummary) error {
	args := m.Called(ctx, summary)
	return args.Error(0)
}

// fakeProvider answers with fetch and counts invocations.
type fakeProvider struct {
	name  string
	calls int32
	fetch func(ctx context.Context, base string) (*domain.ProviderRatesResponse, error)
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) FetchLatestRates(ctx context.Context, base string) (*domain.ProviderRatesResponse, error) {
	atomic.AddInt32(&p.calls, 1)
	return p.fetch(ctx, base)
}

func (p *fakeProvider) Calls() int {
	return int(atomic.LoadInt32(&p.calls))
}

// memoryRecorder is a concurrency-safe ProviderRateRecorder that rejects unknown targets.
type memoryRecorder struct {
	mu      sync.Mutex
	known   map[string]bool
	records []domain.ProviderRate
}

func (r *memoryRecorder) RecordProviderRate(ctx context.Context, rate domain.ProviderRate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.known[rate.TargetCurrencyCode] {
		return errUnknownCurrency(rate.TargetCurrencyCode)
	}
	r.records = append(r.records, rate)
	return nil
}

func (r *memoryRecorder) Records() []domain.ProviderRate {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.ProviderRate, len(r.records))
	copy(out, r.records)
	return out
}

type errUnknownCurrency string

func (e errUnknownCurrency) Error() string {
	return "currency '" + string(e) + "' not found"
}
