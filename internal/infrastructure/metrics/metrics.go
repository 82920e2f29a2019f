// Package metrics expone métricas Prometheus de la API: tráfico HTTP y actividad contable.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los colectores. Un *Metrics nil es válido: todos los métodos son no-op.
type Metrics struct {
	serviceName string
	registry    *prometheus.Registry

	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	DocumentsCreated *prometheus.CounterVec
	DocumentsDeleted *prometheus.CounterVec
	Rejections       *prometheus.CounterVec
}

// New crea el registro con colectores de Go y proceso más los de la aplicación.
func New(serviceName string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	const namespace = "contable"
	m := &Metrics{serviceName: serviceName, registry: registry}

	m.HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total de solicitudes HTTP",
		},
		[]string{"service", "method", "path", "status"},
	)
	m.HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duración de las solicitudes HTTP en segundos",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"service", "method", "path"},
	)
	m.HTTPRequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "http_requests_in_flight",
			Help:        "Solicitudes HTTP en proceso",
			ConstLabels: prometheus.Labels{"service": serviceName},
		},
	)
	m.DocumentsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_created_total",
			Help:      "Documentos registrados por tipo (facturas, devoluciones, comprobantes, traslados, ajustes)",
		},
		[]string{"service", "document_type"},
	)
	m.DocumentsDeleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_deleted_total",
			Help:      "Documentos eliminados (con reversión de sus efectos) por tipo",
		},
		[]string{"service", "document_type"},
	)
	m.Rejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "business_rejections_total",
			Help:      "Operaciones rechazadas por reglas de negocio, por código de error",
		},
		[]string{"service", "code"},
	)

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.DocumentsCreated,
		m.DocumentsDeleted,
		m.Rejections,
	)
	return m
}

// Handler endpoint /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// Registry devuelve el registro Prometheus.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordHTTPRequest registra una solicitud terminada. path debe ser la ruta registrada, no la URL con IDs.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(m.serviceName, method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(duration.Seconds())
}

func (m *Metrics) InFlight(delta float64) {
	if m == nil {
		return
	}
	m.HTTPRequestsInFlight.Add(delta)
}

func (m *Metrics) RecordDocumentCreated(documentType string) {
	if m == nil {
		return
	}
	m.DocumentsCreated.WithLabelValues(m.serviceName, documentType).Inc()
}

func (m *Metrics) RecordDocumentDeleted(documentType string) {
	if m == nil {
		return
	}
	m.DocumentsDeleted.WithLabelValues(m.serviceName, documentType).Inc()
}

// RecordRejection cuenta errores de negocio (INSUFFICIENT_STOCK, RETURN_EXCEEDED, ...).
func (m *Metrics) RecordRejection(code string) {
	if m == nil {
		return
	}
	m.Rejections.WithLabelValues(m.serviceName, code).Inc()
}
