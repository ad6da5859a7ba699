package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/almacen-api/internal/domain"
)

// Resultados posibles de una operación del motor de stock.
const (
	OutcomeOK                = "ok"
	OutcomeInvalid           = "invalid"
	OutcomeNotFound          = "not_found"
	OutcomeInsufficientStock = "insufficient_stock"
	OutcomeRejected          = "rejected"
	OutcomePersistence       = "persistence_failure"
)

// StockMetrics cuenta las operaciones del motor de stock por operación y resultado.
// Implementa stock.Recorder.
type StockMetrics struct {
	operations *prometheus.CounterVec
}

// NewStockMetrics registra las métricas en reg. Con reg nil devuelve un recorder inerte.
func NewStockMetrics(reg prometheus.Registerer) *StockMetrics {
	if reg == nil {
		return &StockMetrics{}
	}
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_operations_total",
		Help: "Operaciones del motor de stock por operación y resultado.",
	}, []string{"operation", "outcome"})
	reg.MustRegister(operations)
	return &StockMetrics{operations: operations}
}

// Record incrementa el contador de la operación con el resultado derivado de err.
func (m *StockMetrics) Record(operation string, err error) {
	if m == nil || m.operations == nil {
		return
	}
	m.operations.WithLabelValues(normalizeLabel(operation), Outcome(err)).Inc()
}

// Outcome clasifica un error del motor en una etiqueta de baja cardinalidad.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, domain.ErrInvalidInput):
		return OutcomeInvalid
	case errors.Is(err, domain.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, domain.ErrInsufficientStock):
		return OutcomeInsufficientStock
	case domain.IsBusiness(err):
		return OutcomeRejected
	default:
		return OutcomePersistence
	}
}

// HTTPMetrics mide la latencia de las peticiones HTTP.
type HTTPMetrics struct {
	duration *prometheus.HistogramVec
}

// NewHTTPMetrics registra el histograma en reg. Con reg nil no mide nada.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duración de las peticiones HTTP en segundos.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
	reg.MustRegister(duration)
	return &HTTPMetrics{duration: duration}
}

// Observe registra una petición. route es el patrón de la ruta, no el path concreto.
func (m *HTTPMetrics) Observe(method, route, status string, elapsed time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(method, normalizeLabel(route), status).Observe(elapsed.Seconds())
}

func normalizeLabel(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
