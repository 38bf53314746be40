package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los collectors del servicio sobre un registry propio.
// Todos los métodos aceptan receptor nil (métricas deshabilitadas).
type Metrics struct {
	registry *prometheus.Registry

	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	storeFallbacks *prometheus.CounterVec
	wsConnections  prometheus.Gauge
	gestureEvents  *prometheus.CounterVec
}

func New(service string) *Metrics {
	labels := prometheus.Labels{"service": service}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "HTTP requests by method, route pattern and status.",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency by method and route pattern.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		storeFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "store_fallbacks_total",
			Help:        "Booking store operations served by the local copy after a remote failure.",
			ConstLabels: labels,
		}, []string{"op"}),
		wsConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "dashboard_connections",
			Help:        "Open dashboard websocket connections.",
			ConstLabels: labels,
		}),
		gestureEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "calendar_gesture_events_total",
			Help:        "Resolved calendar gestures by kind.",
			ConstLabels: labels,
		}, []string{"kind"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.storeFallbacks,
		m.wsConnections,
		m.gestureEvents,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler expone el registry en formato Prometheus.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) IncStoreFallback(op string) {
	if m == nil {
		return
	}
	m.storeFallbacks.WithLabelValues(op).Inc()
}

func (m *Metrics) DashboardConnected() {
	if m == nil {
		return
	}
	m.wsConnections.Inc()
}

func (m *Metrics) DashboardDisconnected() {
	if m == nil {
		return
	}
	m.wsConnections.Dec()
}

func (m *Metrics) IncGesture(kind string) {
	if m == nil {
		return
	}
	m.gestureEvents.WithLabelValues(kind).Inc()
}
