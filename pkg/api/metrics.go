package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

func statusLabel(ok bool) string {
	if ok {
		return statusSuccess
	}
	return statusError
}

// Metrics holds the Prometheus instruments for the API surface.
type Metrics struct {
	// HTTP surface
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight *prometheus.GaugeVec

	// Tag codec
	tagOperationsTotal   *prometheus.CounterVec
	tagOperationDuration *prometheus.HistogramVec

	// Track library
	libraryOperationsTotal   *prometheus.CounterVec
	libraryOperationDuration *prometheus.HistogramVec
	libraryTracksTotal       prometheus.Gauge
	libraryDataSizeBytes     prometheus.Gauge

	// Auth and health
	authRequestsTotal *prometheus.CounterVec
	healthChecksTotal *prometheus.CounterVec
}

// NewMetrics creates all Prometheus metrics and registers them with reg.
// Servers register on prometheus.DefaultRegisterer; tests pass their own
// registry so repeated setups do not collide.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seratag_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "seratag_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		httpRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "seratag_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"method", "endpoint"},
		),
		tagOperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seratag_tag_operations_total",
				Help: "Total number of tag decode and encode operations",
			},
			[]string{"operation", "kind", "status"},
		),
		tagOperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "seratag_tag_operation_duration_seconds",
				Help:    "Tag operation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		libraryOperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seratag_library_operations_total",
				Help: "Total number of track library operations",
			},
			[]string{"operation", "status"},
		),
		libraryOperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "seratag_library_operation_duration_seconds",
				Help:    "Track library operation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		libraryTracksTotal: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "seratag_library_tracks_total",
				Help: "Total number of tracks in the library",
			},
		),
		libraryDataSizeBytes: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "seratag_library_data_size_bytes",
				Help: "Total size of track summaries in the library in bytes",
			},
		),
		authRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seratag_auth_requests_total",
				Help: "Total number of authentication requests",
			},
			[]string{"status"},
		),
		healthChecksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seratag_health_checks_total",
				Help: "Total number of health checks",
			},
			[]string{"status"},
		),
	}
}

// RecordHTTPRequest counts a finished HTTP request and observes its latency.
func (m *Metrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordTagOperation counts a tag decode or encode, labeled by tag kind.
func (m *Metrics) RecordTagOperation(operation, kind string, ok bool, duration time.Duration) {
	m.tagOperationsTotal.WithLabelValues(operation, kind, statusLabel(ok)).Inc()
	m.tagOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordLibraryOperation counts a track library operation.
func (m *Metrics) RecordLibraryOperation(operation string, ok bool, duration time.Duration) {
	m.libraryOperationsTotal.WithLabelValues(operation, statusLabel(ok)).Inc()
	m.libraryOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateLibraryStats publishes the library track count and data size gauges.
func (m *Metrics) UpdateLibraryStats(tracks int, dataSize int64) {
	m.libraryTracksTotal.Set(float64(tracks))
	m.libraryDataSizeBytes.Set(float64(dataSize))
}

// RecordAuthRequest counts an authentication attempt.
func (m *Metrics) RecordAuthRequest(ok bool) {
	m.authRequestsTotal.WithLabelValues(statusLabel(ok)).Inc()
}

// RecordHealthCheck counts a health check.
func (m *Metrics) RecordHealthCheck(ok bool) {
	m.healthChecksTotal.WithLabelValues(statusLabel(ok)).Inc()
}

// InstrumentHandler wraps a handler with request counting, latency and
// in-flight tracking under the given method and endpoint labels.
func (m *Metrics) InstrumentHandler(method, endpoint string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		inFlight := m.httpRequestsInFlight.WithLabelValues(method, endpoint)
		inFlight.Inc()
		defer inFlight.Dec()

		start := time.Now()
		sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		handler(sr, r)
		m.RecordHTTPRequest(method, endpoint, sr.status, time.Since(start))
	}
}

// InstrumentAuthMiddleware observes the outcome of the key check performed
// by the wrapped middleware. Only requests that present a key count as
// auth attempts.
func (m *Metrics) InstrumentAuthMiddleware(next func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hasAPIKey := r.Header.Get("X-API-Key") != ""

			sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next(h).ServeHTTP(sr, r)

			if hasAPIKey {
				m.RecordAuthRequest(sr.status != http.StatusUnauthorized)
			}
		})
	}
}

// statusRecorder captures the status code a handler writes. It reports
// 200 when the handler never calls WriteHeader.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}
