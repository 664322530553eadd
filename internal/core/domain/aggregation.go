package domain

// ProviderAttempt records what happened when one provider was consulted.
type ProviderAttempt struct {
	ProviderName string `json:"providerName"`
	ReturnedData bool   `json:"returnedData"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// AggregationResult is either AggregationSuccess or AggregationNoData.
type AggregationResult interface {
	ProviderAttempts() []ProviderAttempt
	isAggregationResult()
}

// AggregationSuccess carries the first non-empty provider answer.
type AggregationSuccess struct {
	Chosen   *ProviderRatesResponse
	Attempts []ProviderAttempt
}

// AggregationNoData means every provider was consulted and none produced rates.
type AggregationNoData struct {
	Attempts []ProviderAttempt
}

func (s AggregationSuccess) ProviderAttempts() []ProviderAttempt { return s.Attempts }
func (AggregationSuccess) isAggregationResult() {}

func (n AggregationNoData) ProviderAttempts() []ProviderAttempt { return n.Attempts }
func (AggregationNoData) isAggregationResult() {}
