package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/VictoriaMetrics/metrics"
)

// statusRecorder wraps http.ResponseWriter to capture the status code.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.statusCode = code
	sr.ResponseWriter.WriteHeader(code)
}

// Unwrap returns the underlying ResponseWriter for http.ResponseController (Go 1.20+).
func (sr *statusRecorder) Unwrap() http.ResponseWriter { return sr.ResponseWriter }

// RequestLogger is middleware that logs each HTTP request.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sr := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(sr, r)
		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sr.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_addr", r.RemoteAddr,
		)
	})
}

// Metrics collects per-route request counters and latency histograms.
type Metrics struct {
	set     *metrics.Set
	mu      sync.Mutex
	refs    sync.Map
	buckets []float64
}

type metricRef struct {
	*metrics.Counter
	*metrics.PrometheusHistogram
}

func NewMetrics() *Metrics {
	return &Metrics{
		set:     metrics.NewSet(),
		buckets: metrics.ExponentialBuckets(1e-3, 5, 6),
	}
}

// Instrument wraps next, labelling its samples with method and route.
// route must be the registered pattern, not the request path, to keep label
// cardinality bounded.
func (m *Metrics) Instrument(method, route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sr := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(sr, r)

		ref := m.ref(method, route, sr.statusCode)
		ref.Counter.Inc()
		ref.PrometheusHistogram.UpdateDuration(start)
	})
}

func (m *Metrics) ref(method, route string, status int) metricRef {
	key := method + " " + route + " " + strconv.Itoa(status)
	if v, ok := m.refs.Load(key); ok {
		return v.(metricRef)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.refs.Load(key); ok {
		return v.(metricRef)
	}
	labels := `{method="` + method + `",route="` + route + `",status="` + strconv.Itoa(status) + `"}`
	ref := metricRef{
		m.set.NewCounter("http_requests_total" + labels),
		m.set.NewPrometheusHistogramExt("http_request_duration_seconds"+labels, m.buckets),
	}
	m.refs.Store(key, ref)
	return ref
}

// Handler serves the collected samples plus process metrics in Prometheus
// text format.
func (m *Metrics) Handler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	m.set.WritePrometheus(w)
	metrics.WriteProcessMetrics(w)
}
