package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SystemUserID marks rows written by the refresh pipeline rather than a person.
const SystemUserID = "system:rate-refresh"

// ExchangeRate is one persisted observation of base -> target.
// Rows are append-only; the latest DateEffective wins on read.
type ExchangeRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	DateEffective    time.Time       `json:"dateEffective"`
	Provider         string          `json:"provider"`
	AuditFields
}

// ProviderRate is the unit of work handed from the refresh pipeline to persistence.
type ProviderRate struct {
	BaseCurrencyCode   string
	TargetCurrencyCode string
	Rate               decimal.Decimal
	Timestamp          time.Time
	Provider           string
}
