package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Fetch outcomes recorded in aquaflow_client_fetch_total.
const (
	OutcomeOK         = "ok"
	OutcomeFetchError = "fetch_error"
	OutcomeParseError = "parse_error"
)

var histogramBuckets = []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10}

// Metrics counts fetches per resource and outcome.
type Metrics struct {
	fetchTotal    *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
}

// NewMetrics creates the client collectors and registers them on reg.
// Collectors already registered on reg are reused.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		fetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aquaflow",
			Subsystem: "client",
			Name:      "fetch_total",
			Help:      "Count of telemetry API fetches by resource and outcome",
		}, []string{"resource", "outcome"}),
		fetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "aquaflow",
			Subsystem: "client",
			Name:      "fetch_duration_seconds",
			Help:      "Latency distribution of telemetry API fetches",
			Buckets:   histogramBuckets,
		}, []string{"resource"}),
	}

	if reg == nil {
		return m
	}

	if err := reg.Register(m.fetchTotal); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if v, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				m.fetchTotal = v
			}
		}
	}
	if err := reg.Register(m.fetchDuration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if v, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				m.fetchDuration = v
			}
		}
	}
	return m
}

func (m *Metrics) observe(resource, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.fetchTotal.With(prometheus.Labels{"resource": resource, "outcome": outcome}).Inc()
	m.fetchDuration.With(prometheus.Labels{"resource": resource}).Observe(elapsed.Seconds())
}
