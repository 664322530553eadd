package domain

// Circuit states as reported to callers.
const (
	CircuitClosed   = "CLOSED"
	CircuitOpen     = "OPEN"
	CircuitHalfOpen = "HALF_OPEN"
)

// ProviderStatus is the breaker state of one registered provider.
type ProviderStatus struct {
	Name         string `json:"name"`
	CircuitState string `json:"circuitState"`
	Available    bool   `json:"available"`
}

// ProviderHealth summarises every provider the aggregator knows about.
type ProviderHealth struct {
	Providers []ProviderStatus `json:"providers"`
	Available int              `json:"available"`
	Total     int              `json:"total"`
	Degraded  bool             `json:"degraded"`
}

// NewProviderHealth derives the aggregate counts. Degraded when fewer than
// half of the providers are available; exactly half is healthy. No
// providers at all is degraded.
func NewProviderHealth(statuses []ProviderStatus) ProviderHealth {
	h := ProviderHealth{Providers: statuses, Total: len(statuses)}
	for _, s := range statuses {
		if s.Available {
			h.Available++
		}
	}
	h.Degraded = h.Total == 0 || 2*h.Available < h.Total
	return h
}
