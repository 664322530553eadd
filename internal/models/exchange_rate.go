package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is a row of the append-only exchange_rates table.
type ExchangeRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"`   // Primary Key (UUID)
	FromCurrencyCode string          `json:"fromCurrencyCode"` // FK -> Currency.currencyCode
	ToCurrencyCode   string          `json:"toCurrencyCode"`   // FK -> Currency.currencyCode
	Rate             decimal.Decimal `json:"rate"`
	DateEffective    time.Time       `json:"dateEffective"`
	Provider         string          `json:"provider"` // empty for manually entered rates
	AuditFields
}
