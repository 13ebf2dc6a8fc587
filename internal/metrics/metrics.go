// Package metrics exposes Prometheus metrics for the HTTP API, site changes,
// calendar imports and SSE clients.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "harmoni"

// Metrics owns a registry and the collectors registered on it.
type Metrics struct {
	reg *prometheus.Registry

	reqTotal    *prometheus.CounterVec
	reqDuration *prometheus.SummaryVec
	siteChanges *prometheus.CounterVec
	calendar    *prometheus.CounterVec
	backups     *prometheus.CounterVec
}

// New creates a registry with the Go and process collectors plus the
// application metrics.
func New() *Metrics {
	m := &Metrics{reg: prometheus.NewRegistry()}
	m.reqTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route and status",
	}, []string{"method", "route", "status"})
	m.reqDuration = prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Namespace:  namespace,
		Name:       "http_request_duration_seconds",
		Help:       "Time spent serving HTTP requests",
		Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
	}, []string{"route"})
	m.siteChanges = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "site_changes_total",
		Help:      "Admin site changes by kind",
	}, []string{"kind"})
	m.calendar = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "calendar_file_changes_total",
		Help:      "Calendar file imports and removals seen by the watcher",
	}, []string{"kind"})
	m.backups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backups_total",
		Help:      "Database backups by status",
	}, []string{"status"})

	m.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.reqTotal, m.reqDuration, m.siteChanges, m.calendar, m.backups,
	)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// ObserveSSEClients registers a gauge reporting count() connected SSE clients.
func (m *Metrics) ObserveSSEClients(count func() int) {
	m.reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sse_clients",
		Help:      "Connected Server-Sent Events clients",
	}, func() float64 { return float64(count()) }))
}

// SiteChanged counts an admin change of kind "created", "updated" or "deleted".
func (m *Metrics) SiteChanged(kind string) { m.siteChanges.WithLabelValues(kind).Inc() }

// CalendarChanged counts a watcher-driven calendar change.
func (m *Metrics) CalendarChanged(kind string) { m.calendar.WithLabelValues(kind).Inc() }

// BackupDone counts a backup attempt.
func (m *Metrics) BackupDone(err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.backups.WithLabelValues(status).Inc()
}

// Middleware records request counts and durations labelled with the chi
// route pattern, so path parameters do not explode the label space.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.reqTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.reqDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
