// Package middleware provides cross-cutting concerns for the resolution
// engine. It implements the middleware/wrapper pattern to keep the pure
// social-choice logic clean while adding observability capabilities.
package middleware

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/debnet/condorcet/internal/ports"
)

// Compile-time verification that PrometheusMetrics implements MetricsCollector.
var _ ports.MetricsCollector = (*PrometheusMetrics)(nil)

// PrometheusMetrics implements the MetricsCollector interface using
// Prometheus. It provides monitoring of resolution throughput, latency,
// input sizes, and tie/rejection rates.
type PrometheusMetrics struct {
	resolutionsTotal  *prometheus.CounterVec
	resolutionLatency *prometheus.HistogramVec
	ballotsTallied    *prometheus.HistogramVec
	inputGauges       *prometheus.GaugeVec
}

// NewPrometheusMetrics creates a PrometheusMetrics instance registered
// with the given registerer. Pass prometheus.DefaultRegisterer for the
// global registry.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(reg)
	return &PrometheusMetrics{
		resolutionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "poll_resolutions_total",
				Help: "Total number of poll resolutions, by mode and outcome.",
			},
			[]string{"resolver", "mode", "status"},
		),
		resolutionLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "poll_resolution_duration_seconds",
				Help:    "Wall-clock duration of poll resolutions.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"resolver", "mode"},
		),
		ballotsTallied: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "poll_resolution_ballots",
				Help:    "Ballot counts of resolved polls.",
				Buckets: prometheus.ExponentialBuckets(1, 4, 8),
			},
			[]string{"resolver"},
		),
		inputGauges: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "poll_resolution_input_size",
				Help: "Input dimensions of the most recent resolution.",
			},
			[]string{"resolver", "dimension"},
		),
	}
}

// RecordLatency implements the MetricsCollector interface by recording
// resolution latency in a Prometheus histogram.
func (pm *PrometheusMetrics) RecordLatency(
	operation string,
	duration time.Duration,
	labels map[string]string,
) {
	if operation != "resolve" {
		return
	}
	pm.resolutionLatency.WithLabelValues(
		labelOr(labels, "resolver", "unknown"),
		labelOr(labels, "mode", "unknown"),
	).Observe(duration.Seconds())
}

// RecordCounter implements the MetricsCollector interface by
// incrementing Prometheus counters.
func (pm *PrometheusMetrics) RecordCounter(
	metric string, value float64, labels map[string]string,
) {
	switch metric {
	case "poll_resolutions_total":
		pm.resolutionsTotal.WithLabelValues(
			labelOr(labels, "resolver", "unknown"),
			labelOr(labels, "mode", "unknown"),
			labelOr(labels, "status", "unknown"),
		).Add(value)
	}
}

// RecordGauge implements the MetricsCollector interface by setting
// Prometheus gauge values.
func (pm *PrometheusMetrics) RecordGauge(
	metric string, value float64, labels map[string]string,
) {
	pm.inputGauges.WithLabelValues(
		labelOr(labels, "resolver", "unknown"),
		metric,
	).Set(value)
}

// RecordHistogram implements the MetricsCollector interface by
// recording values in a Prometheus histogram.
func (pm *PrometheusMetrics) RecordHistogram(
	metric string, value float64, labels map[string]string,
) {
	if metric != "poll_resolution_ballots" {
		return
	}
	pm.ballotsTallied.WithLabelValues(
		labelOr(labels, "resolver", "unknown"),
	).Observe(value)
}

func labelOr(labels map[string]string, key, fallback string) string {
	if v, ok := labels[key]; ok && v != "" {
		return v
	}
	return fallback
}
