package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Search metrics
	ResolutionsTotal      *prometheus.CounterVec
	ResolutionDuration    *prometheus.HistogramVec
	SuggestionsTotal      prometheus.Counter
	SuggestionResultCount prometheus.Histogram
	IndexedItems          prometheus.Gauge
	WorkspaceReloadsTotal *prometheus.CounterVec

	// Cache metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// History metrics
	HistoryErrorsTotal prometheus.Counter
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quicksearch_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "quicksearch_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		ResolutionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quicksearch_resolutions_total",
				Help: "Total number of exact-match resolutions by outcome",
			},
			[]string{"outcome"},
		),
		ResolutionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "quicksearch_resolution_duration_seconds",
				Help:    "Exact-match resolution duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		SuggestionsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "quicksearch_suggestions_total",
				Help: "Total number of suggestion queries",
			},
		),
		SuggestionResultCount: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "quicksearch_suggestion_result_count",
				Help:    "Number of suggestions returned per query",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
		),
		IndexedItems: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "quicksearch_indexed_items",
				Help: "Number of distinct search entries reachable from the root index",
			},
		),
		WorkspaceReloadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quicksearch_workspace_reloads_total",
				Help: "Total number of workspace snapshot reloads",
			},
			[]string{"trigger"},
		),

		CacheHitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quicksearch_cache_hits_total",
				Help: "Total number of suggestion cache hits",
			},
			[]string{"tier"},
		),
		CacheMissesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quicksearch_cache_misses_total",
				Help: "Total number of suggestion cache misses",
			},
			[]string{"tier"},
		),

		HistoryErrorsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "quicksearch_history_errors_total",
				Help: "Total number of failed search-history writes",
			},
		),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.ResolutionsTotal,
		m.ResolutionDuration,
		m.SuggestionsTotal,
		m.SuggestionResultCount,
		m.IndexedItems,
		m.WorkspaceReloadsTotal,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.HistoryErrorsTotal,
	)

	return m
}

// ObserveHTTPRequest records one completed HTTP request.
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveResolution records one exact-match resolution.
func (m *Metrics) ObserveResolution(outcome string, duration time.Duration) {
	m.ResolutionsTotal.WithLabelValues(outcome).Inc()
	m.ResolutionDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

// ObserveSuggestion records one suggestion query and its result size.
func (m *Metrics) ObserveSuggestion(resultCount int) {
	m.SuggestionsTotal.Inc()
	m.SuggestionResultCount.Observe(float64(resultCount))
}

// Handler returns an HTTP handler exposing the registry.
func Handler(registry *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
