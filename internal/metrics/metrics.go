package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Search metrics
	SearchRequestsTotal   *prometheus.CounterVec
	SearchDurationSeconds prometheus.Histogram
	SearchResultsCount    prometheus.Histogram

	// Generation metrics
	GenerationRequestsTotal   *prometheus.CounterVec
	GenerationDurationSeconds *prometheus.HistogramVec

	// HTTP metrics
	HTTPErrorsTotal *prometheus.CounterVec

	// Index metrics
	IndexDocuments     prometheus.Gauge
	IndexRebuildsTotal *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		SearchRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "courseplan_search_requests_total",
				Help: "Total number of search requests by status",
			},
			[]string{"status"}, // status: success, empty, error
		),

		SearchDurationSeconds: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "courseplan_search_duration_seconds",
				Help:    "Search request duration in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
			},
		),

		SearchResultsCount: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "courseplan_search_results_count",
				Help:    "Number of hits returned per search",
				Buckets: []float64{0, 1, 2, 5, 10},
			},
		),

		GenerationRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "courseplan_generation_requests_total",
				Help: "Total number of generation requests by provider and status",
			},
			[]string{"provider", "status"}, // status: success, error
		),

		GenerationDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "courseplan_generation_duration_seconds",
				Help:    "Generation request duration in seconds by provider",
				Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 90}, // matches 90s write timeout
			},
			[]string{"provider"},
		),

		HTTPErrorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "courseplan_http_errors_total",
				Help: "Total HTTP errors by type and endpoint",
			},
			[]string{"error_type", "endpoint"}, // error_type: bad_request, unavailable, generation, internal
		),

		IndexDocuments: promauto.With(registry).NewGauge(
			prometheus.GaugeOpts{
				Name: "courseplan_index_documents",
				Help: "Number of course documents in the search index",
			},
		),

		IndexRebuildsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "courseplan_index_rebuilds_total",
				Help: "Total number of index rebuilds by status",
			},
			[]string{"status"}, // status: success, error
		),
	}

	return m
}

// RecordSearch records a search request with status
func (m *Metrics) RecordSearch(status string, duration float64, hits int) {
	m.SearchRequestsTotal.WithLabelValues(status).Inc()
	m.SearchDurationSeconds.Observe(duration)
	m.SearchResultsCount.Observe(float64(hits))
}

// RecordGeneration records a generation request
func (m *Metrics) RecordGeneration(provider, status string, duration float64) {
	m.GenerationRequestsTotal.WithLabelValues(provider, status).Inc()
	m.GenerationDurationSeconds.WithLabelValues(provider).Observe(duration)
}

// RecordHTTPError records HTTP error metrics
func (m *Metrics) RecordHTTPError(errorType, endpoint string) {
	m.HTTPErrorsTotal.WithLabelValues(errorType, endpoint).Inc()
}

// RecordIndexRebuild records an index rebuild and the resulting size
func (m *Metrics) RecordIndexRebuild(status string, docs int) {
	m.IndexRebuildsTotal.WithLabelValues(status).Inc()
	if status == "success" {
		m.IndexDocuments.Set(float64(docs))
	}
}
