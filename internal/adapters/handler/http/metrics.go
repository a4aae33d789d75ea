package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Tool metrics
	runsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_runs_total",
			Help: "Tool runs by tool, backend and outcome",
		},
		[]string{"tool", "backend", "status"},
	)

	designsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_designs_total",
			Help: "Structures produced by design backends",
		},
		[]string{"backend"},
	)

	batchRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_batch_rows_total",
			Help: "Batch rows processed by tool and row status",
		},
		[]string{"tool", "status"},
	)

	loginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_login_attempts_total",
			Help: "Login attempts by result",
		},
		[]string{"result"},
	)

	websocketClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "portal_websocket_clients",
			Help: "Connected progress websocket clients",
		},
	)
)

// MetricsMiddleware records HTTP request metrics
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Skip metrics for WebSocket upgrade requests
		if r.Header.Get("Upgrade") == "websocket" {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			path = rctx.RoutePattern()
		}

		httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// MetricsHandler returns the Prometheus metrics handler
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

// RecordRun counts one tool run. status is "succeeded", "failed" or
// "not_implemented".
func RecordRun(tool, backend, status string) {
	runsTotal.WithLabelValues(tool, backend, status).Inc()
}

func RecordDesigns(backend string, n int) {
	if n > 0 {
		designsTotal.WithLabelValues(backend).Add(float64(n))
	}
}

func RecordBatchRow(tool, status string) {
	batchRowsTotal.WithLabelValues(tool, status).Inc()
}

func RecordLogin(result string) {
	loginAttemptsTotal.WithLabelValues(result).Inc()
}

func setWebsocketClients(n int) {
	websocketClients.Set(float64(n))
}
