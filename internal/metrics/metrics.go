// Package metrics provides Prometheus instrumentation for engine operations.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector is the interface the engine records through. The Prometheus
// collector backs production; Noop keeps tests and metric-less deployments
// free of a registry.
type Collector interface {
	RecordOperation(operation, status string, duration time.Duration)
	RecordError(operation, errorKind string)
}

// PrometheusCollector aggregates counters and latency histograms per engine
// operation.
type PrometheusCollector struct {
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	errorsTotal       *prometheus.CounterVec
	registry          *prometheus.Registry
}

// NewCollector creates a Prometheus-backed collector with its own registry.
func NewCollector() *PrometheusCollector {
	registry := prometheus.NewRegistry()

	operationsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proconnect_operations_total",
			Help: "Total number of engine operations by type and status",
		},
		[]string{"operation", "status"},
	)

	operationDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "proconnect_operation_duration_seconds",
			Help:    "Duration of engine operations by type",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		},
		[]string{"operation"},
	)

	errorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proconnect_errors_total",
			Help: "Total number of engine errors by operation and kind",
		},
		[]string{"operation", "error_kind"},
	)

	registry.MustRegister(operationsTotal)
	registry.MustRegister(operationDuration)
	registry.MustRegister(errorsTotal)

	return &PrometheusCollector{
		operationsTotal:   operationsTotal,
		operationDuration: operationDuration,
		errorsTotal:       errorsTotal,
		registry:          registry,
	}
}

// RecordOperation records a completed operation and its latency.
func (c *PrometheusCollector) RecordOperation(operation, status string, duration time.Duration) {
	c.operationsTotal.WithLabelValues(operation, status).Inc()
	c.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordError records an error occurrence by taxonomy kind.
func (c *PrometheusCollector) RecordError(operation, errorKind string) {
	c.errorsTotal.WithLabelValues(operation, errorKind).Inc()
}

// Registry returns the Prometheus registry for HTTP exposure.
func (c *PrometheusCollector) Registry() *prometheus.Registry {
	return c.registry
}
