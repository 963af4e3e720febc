// Package metric provides process sampling and Prometheus metrics for instrumented calls.
package metric

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name.
const Namespace = "calllog"

// Call outcomes used as the "outcome" label.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
	OutcomePanic = "panic"
)

// CallMetrics records one observation per instrumented call.
// A nil *CallMetrics is valid and records nothing.
type CallMetrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
	cpu      *prometheus.CounterVec
}

// NewCallMetrics creates the call metrics and registers them with reg.
func NewCallMetrics(reg prometheus.Registerer) (*CallMetrics, error) {
	m := &CallMetrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "calls_total",
			Help:      "Instrumented calls by function and outcome.",
		}, []string{"function", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "call_duration_seconds",
			Help:      "Wall clock duration of successful instrumented calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"function"}),
		cpu: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "call_cpu_seconds_total",
			Help:      "Process CPU time observed across successful instrumented calls.",
		}, []string{"function"}),
	}

	for _, c := range []prometheus.Collector{m.calls, m.duration, m.cpu} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register call metrics: %w", err)
		}
	}
	return m, nil
}

// Observe records a finished call.
// Duration and CPU are only recorded for successful calls.
func (m *CallMetrics) Observe(function, outcome string, d time.Duration, cpuSeconds float64) {
	if m == nil {
		return
	}
	m.calls.WithLabelValues(function, outcome).Inc()
	if outcome != OutcomeOK {
		return
	}
	m.duration.WithLabelValues(function).Observe(d.Seconds())
	if cpuSeconds > 0 {
		m.cpu.WithLabelValues(function).Add(cpuSeconds)
	}
}

// Registry holds the process-local metrics.
type Registry struct {
	registry *prometheus.Registry
	Calls    *CallMetrics
	Process  *Collector
}

// NewRegistry creates a registry with call metrics and, when sampler is
// non-nil, a process collector.
func NewRegistry(sampler ProcessSampler) (*Registry, error) {
	reg := prometheus.NewRegistry()

	calls, err := NewCallMetrics(reg)
	if err != nil {
		return nil, err
	}

	r := &Registry{
		registry: reg,
		Calls:    calls,
	}

	if sampler != nil {
		r.Process = NewCollector(sampler)
		if err := reg.Register(r.Process); err != nil {
			return nil, fmt.Errorf("register process collector: %w", err)
		}
	}

	return r, nil
}

// Gatherer exposes the underlying registry for scraping or tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
