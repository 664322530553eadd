package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/fx_rates_service/internal/apperrors"
	"github.com/SscSPs/fx_rates_service/internal/core/domain"
	portsrepo "github.com/SscSPs/fx_rates_service/internal/core/ports/repositories"
	"github.com/SscSPs/fx_rates_service/internal/models"
	"github.com/SscSPs/fx_rates_service/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

const exchangeRateColumns = `exchange_rate_id, from_currency_code, to_currency_code, rate, date_effective, provider,
			created_at, created_by, last_updated_at, last_updated_by`

// PgxExchangeRateRepository stores rates in the append-only exchange_rates table.
type PgxExchangeRateRepository struct {
	BaseRepository
}

func newPgxExchangeRateRepository(pool *pgxpool.Pool) portsrepo.ExchangeRateRepositoryWithTx {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ExchangeRateRepositoryWithTx = (*PgxExchangeRateRepository)(nil)

// SaveExchangeRate appends a row. Existing rows are never updated; the
// newest date_effective wins on read.
func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	modelRate := mapping.ToModelExchangeRate(rate)
	modelRate.FromCurrencyCode = strings.ToUpper(modelRate.FromCurrencyCode)
	modelRate.ToCurrencyCode = strings.ToUpper(modelRate.ToCurrencyCode)

	var provider *string
	if modelRate.Provider != "" {
		provider = &modelRate.Provider
	}

	query := `
		INSERT INTO exchange_rates (` + exchangeRateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelRate.ExchangeRateID,
		modelRate.FromCurrencyCode,
		modelRate.ToCurrencyCode,
		modelRate.Rate,
		modelRate.DateEffective,
		provider,
		modelRate.CreatedAt,
		modelRate.CreatedBy,
		modelRate.LastUpdatedAt,
		modelRate.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgUniqueViolation:
				return fmt.Errorf("%w: exchange rate %s", apperrors.ErrDuplicate, modelRate.ExchangeRateID)
			case pgForeignKeyViolation:
				return fmt.Errorf("%w: unknown currency in pair %s->%s", apperrors.ErrNotFound, modelRate.FromCurrencyCode, modelRate.ToCurrencyCode)
			}
		}
		return fmt.Errorf("failed to save exchange rate %s->%s: %w", modelRate.FromCurrencyCode, modelRate.ToCurrencyCode, err)
	}
	return nil
}

// FindExchangeRate returns the newest rate for the pair, falling back to
// the inverse of the newest reverse rate.
func (r *PgxExchangeRateRepository) FindExchangeRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error) {
	from := strings.ToUpper(fromCurrencyCode)
	to := strings.ToUpper(toCurrencyCode)

	if from == to {
		return &domain.ExchangeRate{
			FromCurrencyCode: from,
			ToCurrencyCode:   to,
			Rate:             decimal.NewFromInt(1),
		}, nil
	}

	direct, err := r.findLatest(ctx, from, to)
	if err == nil {
		return direct, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	inverse, err := r.findLatest(ctx, to, from)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("no exchange rate found for currency pair " + from + " to " + to)
		}
		return nil, err
	}
	if inverse.Rate.IsZero() {
		return nil, apperrors.NewNotFoundError("no exchange rate found for currency pair " + from + " to " + to)
	}
	inverse.FromCurrencyCode = from
	inverse.ToCurrencyCode = to
	inverse.Rate = decimal.NewFromInt(1).Div(inverse.Rate)
	return inverse, nil
}

func (r *PgxExchangeRateRepository) findLatest(ctx context.Context, from, to string) (*domain.ExchangeRate, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE from_currency_code = $1 AND to_currency_code = $2
		ORDER BY date_effective DESC, created_at DESC
		LIMIT 1;
	`
	modelRate, err := scanExchangeRate(r.Pool.QueryRow(ctx, query, from, to))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find exchange rate %s->%s: %w", from, to, err)
	}

	domainRate := mapping.ToDomainExchangeRate(modelRate)
	return &domainRate, nil
}

// ListLatestRatesForBase returns one row per target: the newest for base.
func (r *PgxExchangeRateRepository) ListLatestRatesForBase(ctx context.Context, baseCurrencyCode string) ([]domain.ExchangeRate, error) {
	query := `
		SELECT DISTINCT ON (to_currency_code) ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE from_currency_code = $1
		ORDER BY to_currency_code, date_effective DESC, created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, strings.ToUpper(baseCurrencyCode))
	if err != nil {
		return nil, fmt.Errorf("failed to query latest rates for %s: %w", baseCurrencyCode, err)
	}
	defer rows.Close()

	modelRates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ExchangeRate, error) {
		return scanExchangeRate(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan latest rates for %s: %w", baseCurrencyCode, err)
	}
	return mapping.ToDomainExchangeRateSlice(modelRates), nil
}

func scanExchangeRate(row pgx.Row) (models.ExchangeRate, error) {
	var m models.ExchangeRate
	var provider *string
	err := row.Scan(
		&m.ExchangeRateID, &m.FromCurrencyCode, &m.ToCurrencyCode,
		&m.Rate, &m.DateEffective, &provider,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if provider != nil {
		m.Provider = *provider
	}
	return m, err
}
