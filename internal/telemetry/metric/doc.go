// Package metric provides process sampling and Prometheus metrics for
// instrumented calls.
//
// This package implements:
//
//   - process.go: CPU time and memory readings for the current process
//   - prometheus.go: Registry with call counters and duration histograms
//   - collector.go: Collector exporting the process readings
//
// Metrics include:
//
//   - calllog_calls_total{function,outcome}
//   - calllog_call_duration_seconds{function}
//   - calllog_call_cpu_seconds_total{function}
//   - calllog_process_cpu_seconds, calllog_process_memory_percent
//
// The registry is local to the process. It can be scraped through
// Registry.Handler.
package metric
