package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/fx_rates_service/internal/apperrors"
	"github.com/SscSPs/fx_rates_service/internal/core/domain"
	portscache "github.com/SscSPs/fx_rates_service/internal/core/ports/cache"
	portsrepo "github.com/SscSPs/fx_rates_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fx_rates_service/internal/core/ports/services"
	"github.com/SscSPs/fx_rates_service/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExchangeRateService provides business logic for exchange rates.
type ExchangeRateService struct {
	BaseService
	rateRepo        portsrepo.ExchangeRateRepositoryFacade
	currencyService portssvc.CurrencyReaderSvc
	cache           portscache.RateCache
}

var _ portssvc.ExchangeRateSvcFacade = (*ExchangeRateService)(nil)

// ExchangeRateOption configures an ExchangeRateService.
type ExchangeRateOption func(*ExchangeRateService)

// WithRateCache serves pair lookups from c and invalidates it on writes.
func WithRateCache(c portscache.RateCache) ExchangeRateOption {
	return func(s *ExchangeRateService) {
		s.cache = c
	}
}

// NewExchangeRateService creates a new ExchangeRateService.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, currencyService portssvc.CurrencyReaderSvc, options ...ExchangeRateOption) *ExchangeRateService {
	s := &ExchangeRateService{
		rateRepo:        rateRepo,
		currencyService: currencyService,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// GetCurrencyService exposes the currency dependency for tests.
func (s *ExchangeRateService) GetCurrencyService() portssvc.CurrencyReaderSvc {
	return s.currencyService
}

// CreateExchangeRate records a manually entered rate.
func (s *ExchangeRateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	rate, err := s.appendRate(ctx, req.FromCurrencyCode, req.ToCurrencyCode, req.Rate, req.DateEffective, "", creatorUserID)
	if err != nil {
		return nil, err
	}
	return rate, nil
}

// RecordProviderRate persists one rate observed by the refresh pipeline.
func (s *ExchangeRateService) RecordProviderRate(ctx context.Context, pr domain.ProviderRate) error {
	_, err := s.appendRate(ctx, pr.BaseCurrencyCode, pr.TargetCurrencyCode, pr.Rate, pr.Timestamp, pr.Provider, domain.SystemUserID)
	return err
}

func (s *ExchangeRateService) appendRate(ctx context.Context, from, to string, value decimal.Decimal, effective time.Time, provider, userID string) (*domain.ExchangeRate, error) {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))

	if !value.IsPositive() {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	if from == to {
		return nil, fmt.Errorf("%w: from and to currency codes cannot be the same", apperrors.ErrValidation)
	}
	if err := s.requireCurrency(ctx, "from", from); err != nil {
		return nil, err
	}
	if err := s.requireCurrency(ctx, "to", to); err != nil {
		return nil, err
	}

	now := time.Now()
	if effective.IsZero() {
		effective = now
	}
	rate := domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: from,
		ToCurrencyCode:   to,
		Rate:             value,
		DateEffective:    effective,
		Provider:         provider,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		return nil, fmt.Errorf("failed to create exchange rate in service: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.InvalidatePair(ctx, from, to); err != nil {
			s.LogWarn(ctx, "Failed to invalidate cached rate", slog.String("pair", from+"->"+to), slog.String("error", err.Error()))
		}
	}
	return &rate, nil
}

func (s *ExchangeRateService) requireCurrency(ctx context.Context, side, code string) error {
	_, err := s.currencyService.GetCurrencyByCode(ctx, code)
	if err == nil {
		return nil
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("%w: '%s' currency code '%s' not found", apperrors.ErrValidation, side, code)
	}
	return fmt.Errorf("failed to validate '%s' currency '%s': %w", side, code, err)
}

// GetExchangeRate retrieves the latest rate for a currency pair.
func (s *ExchangeRateService) GetExchangeRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	fromCode, toCode, err := normalizePair(fromCode, toCode)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		cached, err := s.cache.GetRate(ctx, fromCode, toCode)
		if err != nil {
			s.LogWarn(ctx, "Rate cache read failed", slog.String("pair", fromCode+"->"+toCode), slog.String("error", err.Error()))
		} else if cached != nil {
			return cached, nil
		}
	}

	rate, err := s.rateRepo.FindExchangeRate(ctx, fromCode, toCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange rate in service: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetRate(ctx, fromCode, toCode, *rate); err != nil {
			s.LogWarn(ctx, "Rate cache write failed", slog.String("pair", fromCode+"->"+toCode), slog.String("error", err.Error()))
		}
	}
	return rate, nil
}

// ListLatestRates returns the newest rate per target for baseCode.
func (s *ExchangeRateService) ListLatestRates(ctx context.Context, baseCode string) ([]domain.ExchangeRate, error) {
	base := strings.ToUpper(strings.TrimSpace(baseCode))
	if len(base) != 3 {
		return nil, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}
	rates, err := s.rateRepo.ListLatestRatesForBase(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("failed to list latest rates in service: %w", err)
	}
	if rates == nil {
		return []domain.ExchangeRate{}, nil
	}
	return rates, nil
}

func normalizePair(fromCode, toCode string) (string, string, error) {
	fromCode = strings.ToUpper(strings.TrimSpace(fromCode))
	toCode = strings.ToUpper(strings.TrimSpace(toCode))
	if len(fromCode) != 3 || len(toCode) != 3 {
		return "", "", fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}
	return fromCode, toCode, nil
}
