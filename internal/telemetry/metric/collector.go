// Package metric provides process sampling and Prometheus metrics for instrumented calls.
package metric

import "github.com/prometheus/client_golang/prometheus"

// Collector exports ProcessSampler readings at scrape time.
type Collector struct {
	sampler ProcessSampler
	cpu     *prometheus.Desc
	memory  *prometheus.Desc
}

// NewCollector creates a collector for the given sampler.
func NewCollector(sampler ProcessSampler) *Collector {
	return &Collector{
		sampler: sampler,
		cpu: prometheus.NewDesc(
			prometheus.BuildFQName(Namespace, "process", "cpu_seconds"),
			"User plus system CPU time consumed by the process.",
			nil, nil,
		),
		memory: prometheus.NewDesc(
			prometheus.BuildFQName(Namespace, "process", "memory_percent"),
			"Resident memory as a percentage of total physical memory.",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.cpu
	ch <- c.memory
}

// Collect implements prometheus.Collector.
// Readings the sampler cannot provide are skipped.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	if cpu, err := c.sampler.CPUSeconds(); err == nil {
		ch <- prometheus.MustNewConstMetric(c.cpu, prometheus.CounterValue, cpu)
	}
	if mem, err := c.sampler.MemoryPercent(); err == nil {
		ch <- prometheus.MustNewConstMetric(c.memory, prometheus.GaugeValue, mem)
	}
}
