// Package metrics exposes Prometheus counters for the HTTP surface and the
// calculation engines.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mamadbah2/livestockcare/internal/domain/models"
)

const namespace = "slc"

// Metrics owns a private registry and every collector the service exports.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	diagnosticsInterpreted *prometheus.CounterVec
	safetyAlerts           *prometheus.CounterVec
	gvaCalculations        prometheus.Counter
	rationCalculations     *prometheus.CounterVec
}

// New builds and registers all collectors on a fresh registry.
func New() (*Metrics, error) {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	m.httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Time taken for HTTP requests",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	m.diagnosticsInterpreted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "diagnostics_interpreted_total",
			Help:      "Diagnostic tests interpreted, by result status",
		},
		[]string{"status"},
	)
	m.safetyAlerts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "safety_alerts_total",
			Help:      "Zoonotic safety alerts attached to diagnostics",
		},
		[]string{"disease"},
	)
	m.gvaCalculations = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gva_calculations_total",
		Help:      "Village GVA calculations saved",
	})
	m.rationCalculations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ration_calculations_total",
			Help:      "Ration calculations saved, by species",
		},
		[]string{"species"},
	)

	for _, c := range []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.diagnosticsInterpreted,
		m.safetyAlerts,
		m.gvaCalculations,
		m.rationCalculations,
	} {
		if err := m.registry.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records request counts and latency by matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		m.httpRequestsTotal.WithLabelValues(route, method, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpRequestDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}

// DiagnosticInterpreted counts one interpretation.
func (m *Metrics) DiagnosticInterpreted(status models.InterpretationStatus) {
	m.diagnosticsInterpreted.WithLabelValues(string(status)).Inc()
}

// SafetyAlertRaised counts one zoonotic alert.
func (m *Metrics) SafetyAlertRaised(disease string) {
	m.safetyAlerts.WithLabelValues(disease).Inc()
}

// GVACalculated counts one saved GVA report.
func (m *Metrics) GVACalculated() { m.gvaCalculations.Inc() }

// RationCalculated counts one saved ration calculation.
func (m *Metrics) RationCalculated(species models.Species) {
	m.rationCalculations.WithLabelValues(string(species)).Inc()
}
