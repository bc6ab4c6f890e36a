// Package observability provides the operation metrics contract shared by
// every service, backed by prometheus in production and a no-op in tests.
package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records per-operation counters and latency for a module.
type Metrics interface {
	RecordOperationAttempt(ctx context.Context, operation string)
	RecordOperationSuccess(ctx context.Context, operation string)
	RecordOperationFailure(ctx context.Context, operation string)
	RecordOperationDuration(ctx context.Context, operation string, duration time.Duration)
	RecordArtistProcessed(ctx context.Context, outcome string)
}

// PrometheusMetrics implements Metrics on a prometheus registry, labelled by
// module so all modules share one registry.
type PrometheusMetrics struct {
	module    string
	attempts  *prometheus.CounterVec
	successes *prometheus.CounterVec
	failures  *prometheus.CounterVec
	durations *prometheus.HistogramVec
	artists   *prometheus.CounterVec
}

// NewPrometheusMetrics registers the shared collectors on reg and returns a
// module-scoped recorder. Registering the same registry twice is the
// caller's bug; collectors are created once per registry via MustRegister.
func NewPrometheusMetrics(reg prometheus.Registerer, module string) *PrometheusMetrics {
	m := &PrometheusMetrics{
		module: module,
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chartclash_operation_attempts_total",
			Help: "Operations attempted, by module and operation.",
		}, []string{"module", "operation"}),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chartclash_operation_successes_total",
			Help: "Operations completed successfully, by module and operation.",
		}, []string{"module", "operation"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chartclash_operation_failures_total",
			Help: "Operations that failed, by module and operation.",
		}, []string{"module", "operation"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "chartclash_operation_duration_seconds",
			Help:    "Operation latency, by module and operation.",
			Buckets: prometheus.DefBuckets,
		}, []string{"module", "operation"}),
		artists: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chartclash_artists_processed_total",
			Help: "Artists processed by batch jobs, by module and outcome.",
		}, []string{"module", "outcome"}),
	}
	reg.MustRegister(m.attempts, m.successes, m.failures, m.durations, m.artists)
	return m
}

// Scoped returns a recorder for another module sharing the same collectors.
func (m *PrometheusMetrics) Scoped(module string) *PrometheusMetrics {
	clone := *m
	clone.module = module
	return &clone
}

func (m *PrometheusMetrics) RecordOperationAttempt(_ context.Context, operation string) {
	m.attempts.WithLabelValues(m.module, operation).Inc()
}

func (m *PrometheusMetrics) RecordOperationSuccess(_ context.Context, operation string) {
	m.successes.WithLabelValues(m.module, operation).Inc()
}

func (m *PrometheusMetrics) RecordOperationFailure(_ context.Context, operation string) {
	m.failures.WithLabelValues(m.module, operation).Inc()
}

func (m *PrometheusMetrics) RecordOperationDuration(_ context.Context, operation string, d time.Duration) {
	m.durations.WithLabelValues(m.module, operation).Observe(d.Seconds())
}

func (m *PrometheusMetrics) RecordArtistProcessed(_ context.Context, outcome string) {
	m.artists.WithLabelValues(m.module, outcome).Inc()
}

// NoOpMetrics satisfies Metrics without recording anything.
type NoOpMetrics struct{}

func (NoOpMetrics) RecordOperationAttempt(context.Context, string)                {}
func (NoOpMetrics) RecordOperationSuccess(context.Context, string)                {}
func (NoOpMetrics) RecordOperationFailure(context.Context, string)                {}
func (NoOpMetrics) RecordOperationDuration(context.Context, string, time.Duration) {}
func (NoOpMetrics) RecordArtistProcessed(context.Context, string)                 {}
