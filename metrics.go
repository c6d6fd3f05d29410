package webapi

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector provides Prometheus metrics for the request pipeline.
// It is safe for concurrent use.
type MetricsCollector struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight *prometheus.GaugeVec
	errorsTotal      *prometheus.CounterVec
}

// NewMetricsCollector creates a metrics collector on the default registerer.
func NewMetricsCollector() *MetricsCollector {
	return NewMetricsCollectorWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsCollectorWithRegistry creates a collector using the supplied
// registerer.
func NewMetricsCollectorWithRegistry(registry prometheus.Registerer) *MetricsCollector {
	return &MetricsCollector{
		requestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "webapi_requests_total",
				Help: "Total number of API command invocations",
			},
			[]string{"command", "method", "status_code"},
		),
		requestDuration: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "webapi_request_duration_seconds",
				Help:    "Duration of API command invocations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"command", "method", "status_code"},
		),
		requestsInFlight: promauto.With(registry).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "webapi_requests_in_flight",
				Help: "Number of API command invocations currently in flight",
			},
			[]string{"command", "method"},
		),
		errorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "webapi_errors_total",
				Help: "Total number of pipeline errors by type",
			},
			[]string{"type", "command"},
		),
	}
}

// RecordRequestStart increments the in-flight gauge.
func (mc *MetricsCollector) RecordRequestStart(command, method string) {
	mc.requestsInFlight.WithLabelValues(command, method).Inc()
}

// RecordRequestEnd decrements the in-flight gauge.
func (mc *MetricsCollector) RecordRequestEnd(command, method string) {
	mc.requestsInFlight.WithLabelValues(command, method).Dec()
}

// RecordRequest records a completed invocation with its status and duration.
func (mc *MetricsCollector) RecordRequest(command, method string, statusCode int, duration time.Duration) {
	code := strconv.Itoa(statusCode)
	mc.requestsTotal.WithLabelValues(command, method, code).Inc()
	mc.requestDuration.WithLabelValues(command, method, code).Observe(duration.Seconds())
}

// RecordError records a pipeline error by taxonomy type.
func (mc *MetricsCollector) RecordError(errorType, command string) {
	mc.errorsTotal.WithLabelValues(errorType, command).Inc()
}
