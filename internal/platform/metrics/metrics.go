package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds Prometheus counters and gauges for the animation viewer.
type Metrics struct {
	registry              *prometheus.Registry
	requestsTotal         prometheus.Counter
	documentsLoadedTotal  prometheus.Counter
	parseFailuresTotal    prometheus.Counter
	sessionRebuildsTotal  prometheus.Counter
	analysesTotal         prometheus.Counter
	analysisFailuresTotal prometheus.Counter
	activeSessions        prometheus.Gauge
	viewportConnected     prometheus.Gauge
	errorsTotal           prometheus.Counter
}

// New creates and registers Prometheus metrics for the viewer.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "viewer_requests_total",
		Help: "Total number of HTTP requests received",
	})
	documentsLoadedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "viewer_documents_loaded_total",
		Help: "Total number of animation documents successfully loaded",
	})
	parseFailuresTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "viewer_parse_failures_total",
		Help: "Total number of uploads rejected as malformed documents",
	})
	sessionRebuildsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "viewer_session_rebuilds_total",
		Help: "Total number of render session rebuilds caused by setting changes",
	})
	analysesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "viewer_analyses_total",
		Help: "Total number of completed analysis requests",
	})
	analysisFailuresTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "viewer_analysis_failures_total",
		Help: "Total number of analysis requests that ended in failure",
	})
	activeSessions := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "viewer_active_sessions",
		Help: "Number of live render sessions (0 or 1)",
	})
	viewportConnected := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "viewer_viewport_connected",
		Help: "Whether a viewport client is connected (0 or 1)",
	})
	errorsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "viewer_errors_total",
		Help: "Total number of HTTP responses with error status (4xx or 5xx)",
	})

	registry.MustRegister(
		requestsTotal,
		documentsLoadedTotal,
		parseFailuresTotal,
		sessionRebuildsTotal,
		analysesTotal,
		analysisFailuresTotal,
		activeSessions,
		viewportConnected,
		errorsTotal,
	)

	return &Metrics{
		registry:              registry,
		requestsTotal:         requestsTotal,
		documentsLoadedTotal:  documentsLoadedTotal,
		parseFailuresTotal:    parseFailuresTotal,
		sessionRebuildsTotal:  sessionRebuildsTotal,
		analysesTotal:         analysesTotal,
		analysisFailuresTotal: analysisFailuresTotal,
		activeSessions:        activeSessions,
		viewportConnected:     viewportConnected,
		errorsTotal:           errorsTotal,
	}
}

// IncRequests increments the total request counter.
func (m *Metrics) IncRequests() {
	m.requestsTotal.Inc()
}

// IncDocumentsLoaded increments the documents loaded counter.
func (m *Metrics) IncDocumentsLoaded() {
	m.documentsLoadedTotal.Inc()
}

// IncParseFailures increments the malformed document counter.
func (m *Metrics) IncParseFailures() {
	m.parseFailuresTotal.Inc()
}

// IncSessionRebuilds increments the session rebuild counter.
func (m *Metrics) IncSessionRebuilds() {
	m.sessionRebuildsTotal.Inc()
}

// IncAnalyses increments the completed analyses counter.
func (m *Metrics) IncAnalyses() {
	m.analysesTotal.Inc()
}

// IncAnalysisFailures increments the failed analyses counter.
func (m *Metrics) IncAnalysisFailures() {
	m.analysisFailuresTotal.Inc()
}

// SetActiveSessions sets the live session gauge.
func (m *Metrics) SetActiveSessions(n int) {
	m.activeSessions.Set(float64(n))
}

// SetViewportConnected sets the viewport connection gauge.
func (m *Metrics) SetViewportConnected(connected bool) {
	if connected {
		m.viewportConnected.Set(1)
	} else {
		m.viewportConnected.Set(0)
	}
}

// IncErrors increments the errors counter.
func (m *Metrics) IncErrors() {
	m.errorsTotal.Inc()
}

// Handler returns an http.Handler that serves Prometheus metrics.
// updateGauges is called before each scrape to refresh gauge values
// (e.g. active sessions, viewport connection).
func (m *Metrics) Handler(updateGauges func()) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if updateGauges != nil {
			updateGauges()
		}
		promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}).ServeHTTP(w, r)
	})
}
