package blob

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds Prometheus counters and gauges for the handle registry.
type Metrics struct {
	registry      *prometheus.Registry
	allocations   prometheus.Counter
	releases      prometheus.Counter
	requestsTotal prometheus.Counter
	errorsTotal   prometheus.Counter
	active        prometheus.Gauge
}

// NewMetrics creates and registers the registry metrics.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	allocations := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "watchroom_blob_allocations_total",
		Help: "Total number of playable handles issued",
	})
	releases := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "watchroom_blob_releases_total",
		Help: "Total number of playable handles revoked",
	})
	requestsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "watchroom_blob_requests_total",
		Help: "Total number of handle requests served",
	})
	errorsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "watchroom_blob_errors_total",
		Help: "Total number of handle responses with error status (4xx or 5xx)",
	})
	active := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "watchroom_blob_handles_active",
		Help: "Number of handles that are currently resolvable",
	})

	registry.MustRegister(allocations, releases, requestsTotal, errorsTotal, active)

	return &Metrics{
		registry:      registry,
		allocations:   allocations,
		releases:      releases,
		requestsTotal: requestsTotal,
		errorsTotal:   errorsTotal,
		active:        active,
	}
}

// Handler serves the metrics. refresh runs before each scrape.
func (m *Metrics) Handler(refresh func()) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if refresh != nil {
			refresh()
		}
		promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}).ServeHTTP(w, r)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// middleware counts requests and error responses.
func (m *Metrics) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wrap := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrap, r)
		m.requestsTotal.Inc()
		if wrap.status >= 400 {
			m.errorsTotal.Inc()
		}
	})
}
