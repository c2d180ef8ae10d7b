package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ConversionMetrics métricas Prometheus de las conversiones XSIG → PDF.
type ConversionMetrics struct {
	registry *prometheus.Registry

	conversionTotal    *prometheus.CounterVec
	conversionDuration *prometheus.HistogramVec
	inFlight           prometheus.Gauge
	signatures         *prometheus.CounterVec
	pdfBytes           prometheus.Histogram
}

// NewConversionMetrics crea un registro propio con las métricas del servicio.
func NewConversionMetrics(service string) *ConversionMetrics {
	registry := prometheus.NewRegistry()
	constLabels := prometheus.Labels{"service": service}

	conversionTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   "xsigpdf",
			Subsystem:   "conversion",
			Name:        "total",
			Help:        "Conversiones procesadas por resultado.",
			ConstLabels: constLabels,
		},
		[]string{"outcome"},
	)
	conversionDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   "xsigpdf",
			Subsystem:   "conversion",
			Name:        "duration_seconds",
			Help:        "Duración de la conversión en segundos por resultado.",
			Buckets:     []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			ConstLabels: constLabels,
		},
		[]string{"outcome"},
	)
	inFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace:   "xsigpdf",
			Subsystem:   "conversion",
			Name:        "in_flight",
			Help:        "Conversiones en curso.",
			ConstLabels: constLabels,
		},
	)
	signatures := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   "xsigpdf",
			Subsystem:   "conversion",
			Name:        "signature_total",
			Help:        "Facturas convertidas según se encontrara o no certificado de firma.",
			ConstLabels: constLabels,
		},
		[]string{"found"},
	)
	pdfBytes := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace:   "xsigpdf",
			Subsystem:   "conversion",
			Name:        "pdf_bytes",
			Help:        "Tamaño del PDF generado.",
			Buckets:     prometheus.ExponentialBuckets(8*1024, 2, 8),
			ConstLabels: constLabels,
		},
	)

	registry.MustRegister(conversionTotal, conversionDuration, inFlight, signatures, pdfBytes)

	return &ConversionMetrics{
		registry:           registry,
		conversionTotal:    conversionTotal,
		conversionDuration: conversionDuration,
		inFlight:           inFlight,
		signatures:         signatures,
		pdfBytes:           pdfBytes,
	}
}

// Handler expone el registro en formato Prometheus.
func (m *ConversionMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry registro subyacente (tests).
func (m *ConversionMetrics) Registry() *prometheus.Registry { return m.registry }

// StartConversion marca una conversión en curso.
func (m *ConversionMetrics) StartConversion() {
	m.inFlight.Inc()
}

// FinishConversion cierra la conversión con su resultado (success, empty_input, document_format, error).
func (m *ConversionMetrics) FinishConversion(outcome string, duration time.Duration) {
	m.inFlight.Dec()
	m.conversionTotal.WithLabelValues(outcome).Inc()
	m.conversionDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

func (m *ConversionMetrics) ObserveDocument(signatureFound bool, size int) {
	found := "false"
	if signatureFound {
		found = "true"
	}
	m.signatures.WithLabelValues(found).Inc()
	m.pdfBytes.Observe(float64(size))
}
