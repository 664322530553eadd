package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Attempt outcomes recorded per provider call.
const (
	OutcomeData   = "data"
	OutcomeNoData = "no_data"
	OutcomeError  = "error"
)

// Metrics groups every collector the service exports. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	ProviderAttemptsTotal *prometheus.CounterVec
	ProviderCircuitState  *prometheus.GaugeVec

	RefreshRunsTotal       prometheus.Counter
	RefreshRatesSavedTotal prometheus.Counter
	RefreshFailuresTotal   prometheus.Counter
	RefreshDuration        prometheus.Histogram
}

// NewMetrics registers the collectors with reg. Pass prometheus.DefaultRegisterer
// in production and a fresh registry in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),
		ProviderAttemptsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fx_provider_attempts_total",
				Help: "Provider calls made by the aggregator, by outcome",
			},
			[]string{"provider", "outcome"},
		),
		ProviderCircuitState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fx_provider_circuit_state",
				Help: "Circuit breaker state per provider (0 closed, 1 open, 2 half-open)",
			},
			[]string{"provider"},
		),
		RefreshRunsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "fx_refresh_runs_total",
			Help: "Completed refresh passes",
		}),
		RefreshRatesSavedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "fx_refresh_rates_saved_total",
			Help: "Rates persisted by refresh passes",
		}),
		RefreshFailuresTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "fx_refresh_failures_total",
			Help: "Rates that failed to persist during refresh passes",
		}),
		RefreshDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "fx_refresh_duration_seconds",
			Help:    "Wall time of a refresh pass",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
		}),
	}
}

func (m *Metrics) ObserveAttempt(provider, outcome string) {
	if m == nil {
		return
	}
	m.ProviderAttemptsTotal.WithLabelValues(provider, outcome).Inc()
}

// SetCircuitState records a breaker state using its numeric ordinal.
func (m *Metrics) SetCircuitState(provider string, state int) {
	if m == nil {
		return
	}
	m.ProviderCircuitState.WithLabelValues(provider).Set(float64(state))
}

func (m *Metrics) ObserveRefresh(saved, failures int, took time.Duration) {
	if m == nil {
		return
	}
	m.RefreshRunsTotal.Inc()
	m.RefreshRatesSavedTotal.Add(float64(saved))
	m.RefreshFailuresTotal.Add(float64(failures))
	m.RefreshDuration.Observe(took.Seconds())
}

func (m *Metrics) ObserveHTTPRequest(path, method, status string, took time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(path, method, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(path, method).Observe(took.Seconds())
}
