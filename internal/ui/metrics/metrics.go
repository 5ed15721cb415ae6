// Package metrics exposes Prometheus instrumentation for the UI server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hrdash"

// Metrics holds the server's collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	buildDuration   prometheus.Histogram
	reloads         *prometheus.CounterVec
	datasetRows     prometheus.Gauge
	datasetVersion  prometheus.Gauge
	sseClients      prometheus.Gauge
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code",
		}, []string{"route", "method", "code"}),
		requestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		}, []string{"route"}),
		buildDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dashboard_build_duration_seconds",
			Help:      "Time to derive, filter and aggregate one dashboard",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14),
		}),
		reloads: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dataset_reloads_total",
			Help:      "Dataset reloads by result",
		}, []string{"result"}),
		datasetRows: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_rows",
			Help:      "Rows in the dataset currently served",
		}),
		datasetVersion: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_version",
			Help:      "Version of the dataset currently served",
		}),
		sseClients: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sse_clients",
			Help:      "Connected live-update clients",
		}),
	}
}

// Registry returns the registry backing Handler.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records request counts and latency labelled by chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// ObserveBuild records one dashboard build.
func (m *Metrics) ObserveBuild(d time.Duration) {
	m.buildDuration.Observe(d.Seconds())
}

// Loaded records the dataset now being served.
func (m *Metrics) Loaded(version uint64, rows int) {
	m.datasetVersion.Set(float64(version))
	m.datasetRows.Set(float64(rows))
}

// Reloaded counts a reload attempt.
func (m *Metrics) Reloaded(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.reloads.WithLabelValues(result).Inc()
}

// ClientConnected and ClientDisconnected track live-update streams.
func (m *Metrics) ClientConnected() { m.sseClients.Inc() }

// ClientDisconnected decrements the live-update stream gauge.
func (m *Metrics) ClientDisconnected() { m.sseClients.Dec() }
