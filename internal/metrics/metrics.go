// Package metrics holds the Prometheus instrumentation for the reporter
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Search result states as label values.
const (
	StateCleared = "cleared"
	StateNoMatch = "no_match"
	StateMatched = "matched"
)

// Index load outcomes as label values.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics aggregates every collector the service exports.
type Metrics struct {
	SearchesTotal     *prometheus.CounterVec
	SearchesTruncated prometheus.Counter
	SearchDuration    prometheus.Histogram
	IndexLoadsTotal   *prometheus.CounterVec
	IndexCases        prometheus.Gauge
}

// New creates and registers all collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SearchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "reporter_searches_total",
			Help: "Search requests served, by result state.",
		}, []string{"state"}),
		SearchesTruncated: factory.NewCounter(prometheus.CounterOpts{
			Name: "reporter_searches_truncated_total",
			Help: "Searches whose matches were cut at the result cap.",
		}),
		SearchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "reporter_search_duration_seconds",
			Help:    "Time spent filtering and rendering one search.",
			Buckets: prometheus.DefBuckets,
		}),
		IndexLoadsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "reporter_index_loads_total",
			Help: "Index load attempts, by outcome.",
		}, []string{"outcome"}),
		IndexCases: factory.NewGauge(prometheus.GaugeOpts{
			Name: "reporter_index_cases",
			Help: "Cases in the currently served index snapshot.",
		}),
	}
}

// ObserveSearch records one search outcome.
func (m *Metrics) ObserveSearch(state string, truncated bool, seconds float64) {
	m.SearchesTotal.WithLabelValues(state).Inc()
	if truncated {
		m.SearchesTruncated.Inc()
	}
	m.SearchDuration.Observe(seconds)
}

// ObserveIndexLoad records one load attempt and the resulting snapshot size.
func (m *Metrics) ObserveIndexLoad(err error, cases int) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	m.IndexLoadsTotal.WithLabelValues(outcome).Inc()
	m.IndexCases.Set(float64(cases))
}
