package domain

import "time"

// RefreshSummary reports one pass of the refresh pipeline.
type RefreshSummary struct {
	CurrenciesInSystem  int           `json:"currenciesInSystem"`
	CurrenciesProcessed int           `json:"currenciesProcessed"`
	ProvidersWithData   int           `json:"providersWithData"`
	RatesSaved          int           `json:"ratesSaved"`
	Failures            []string      `json:"failures"`
	StartedAt           time.Time     `json:"startedAt"`
	Duration            time.Duration `json:"duration"`
}

// HasFailures reports whether any rate failed to persist.
func (s RefreshSummary) HasFailures() bool {
	return len(s.Failures) > 0
}
