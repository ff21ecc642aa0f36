// Package metrics provides Prometheus metrics for the folio content service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Source fetch outcomes.
const (
	OutcomeOK      = "ok"
	OutcomeError   = "error"
	OutcomeTimeout = "timeout"
)

// Manager manages all Prometheus metrics for the folio service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Upstream sources
	sourceFetches       *prometheus.CounterVec
	sourceFetchLatency  *prometheus.HistogramVec
	sourceRecords       *prometheus.GaugeVec
	viewBuilds          prometheus.Counter
	viewBuildDuration   prometheus.Histogram
	revalidations       prometheus.Counter
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	cacheErrors         prometheus.Counter
	skillCategoryCounts *prometheus.GaugeVec

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "folio",
		histogramBuckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

//nolint:funlen // one place for every collector definition
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.constLabels)

	m.sourceFetches = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "source_fetch_total",
		Help:        "Upstream fetches by source and outcome",
		ConstLabels: labels,
	}, []string{"source", "outcome"})

	m.sourceFetchLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "source_fetch_latency_milliseconds",
		Help:        "Upstream fetch latency in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"source", "outcome"})

	m.sourceRecords = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "source_records",
		Help:        "Records returned by the last fetch of each source",
		ConstLabels: labels,
	}, []string{"source"})

	m.viewBuilds = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "view_builds_total",
		Help:        "Total number of view model aggregations",
		ConstLabels: labels,
	})

	m.viewBuildDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "view_build_duration_milliseconds",
		Help:        "Wall time of a full aggregation in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.revalidations = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "revalidations_total",
		Help:        "On-demand revalidations",
		ConstLabels: labels,
	})

	m.cacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "page_cache_hits_total",
		Help:        "Page requests served from cache",
		ConstLabels: labels,
	})

	m.cacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "page_cache_misses_total",
		Help:        "Page requests that triggered a rebuild",
		ConstLabels: labels,
	})

	m.cacheErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "page_cache_errors_total",
		Help:        "Cache read/write failures",
		ConstLabels: labels,
	})

	m.skillCategoryCounts = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "skill_category_members",
		Help:        "Skills per category in the last built page",
		ConstLabels: labels,
	}, []string{"category"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_total",
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_by_endpoint_total",
		Help:        "Total number of errors by endpoint",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_memory_usage_bytes",
		Help:        "System memory usage in bytes",
		ConstLabels: labels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_goroutine_count",
		Help:        "Number of goroutines",
		ConstLabels: labels,
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_gc_pause_time_milliseconds",
		Help:        "GC pause time in milliseconds",
		Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		ConstLabels: labels,
	})
}

// RecordSourceFetch records one upstream fetch and its latency.
func (m *Manager) RecordSourceFetch(source, outcome string, latencyMs float64) {
	m.sourceFetches.WithLabelValues(source, outcome).Inc()
	m.sourceFetchLatency.WithLabelValues(source, outcome).Observe(latencyMs)
}

// UpdateSourceRecords sets the record count of the last fetch of source.
func (m *Manager) UpdateSourceRecords(source string, n int) {
	m.sourceRecords.WithLabelValues(source).Set(float64(n))
}

// RecordViewBuild counts an aggregation and observes its duration.
func (m *Manager) RecordViewBuild(durationMs float64) {
	m.viewBuilds.Inc()
	m.viewBuildDuration.Observe(durationMs)
}

// UpdateSkillCategory sets the member count of a skill category.
func (m *Manager) UpdateSkillCategory(category string, n int) {
	m.skillCategoryCounts.WithLabelValues(category).Set(float64(n))
}

// RecordSourceFetch records one upstream fetch on the global manager.
func RecordSourceFetch(source, outcome string, latencyMs float64) {
	globalManager.RecordSourceFetch(source, outcome, latencyMs)
}

// UpdateSourceRecords sets the record count of the last fetch of source.
func UpdateSourceRecords(source string, n int) {
	globalManager.UpdateSourceRecords(source, n)
}

// RecordViewBuild counts an aggregation and observes its duration.
func RecordViewBuild(durationMs float64) {
	globalManager.RecordViewBuild(durationMs)
}

// UpdateSkillCategory sets the member count of a skill category.
func UpdateSkillCategory(category string, n int) {
	globalManager.UpdateSkillCategory(category, n)
}

// RecordRevalidation increments the on-demand revalidation counter.
func RecordRevalidation() {
	globalManager.revalidations.Inc()
}

// RecordCacheHit increments the page cache hit counter.
func RecordCacheHit() {
	globalManager.cacheHits.Inc()
}

// RecordCacheMiss increments the page cache miss counter.
func RecordCacheMiss() {
	globalManager.cacheMisses.Inc()
}

// RecordCacheError increments the page cache error counter.
func RecordCacheError() {
	globalManager.cacheErrors.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
