// Package tracer measures individual calls.
package tracer

import (
	"context"
	"time"

	"github.com/yndnr/calllog-go/internal/telemetry/metric"
)

type spanKey struct{}

// Measurement is the resource usage of a finished span.
type Measurement struct {
	Duration      time.Duration
	CPUSeconds    float64
	MemoryPercent float64
}

// Span tracks a single call from Start to End.
// A Span must be used by one goroutine only.
type Span struct {
	ID   string
	Name string

	sampler  metric.ProcessSampler
	clock    func() time.Time
	start    time.Time
	startCPU float64

	ended bool
	m     Measurement
}

// Option configures a Span.
type Option func(*Span)

// WithClock overrides the wall clock, for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Span) {
		s.clock = clock
	}
}

// Start begins a span and stores it in the returned context.
// A nil sampler yields zero CPU and memory readings.
func Start(ctx context.Context, name string, sampler metric.ProcessSampler, opts ...Option) (context.Context, *Span) {
	s := &Span{
		ID:      NewID(),
		Name:    name,
		sampler: sampler,
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.start = s.clock()
	s.startCPU = metric.Sample(sampler).CPUSeconds

	return context.WithValue(ctx, spanKey{}, s), s
}

// End finishes the span and returns its measurement.
// Calling End again returns the first measurement.
func (s *Span) End() Measurement {
	if s.ended {
		return s.m
	}
	s.ended = true

	elapsed := s.clock().Sub(s.start)
	if elapsed < 0 {
		elapsed = 0
	}

	snap := metric.Sample(s.sampler)
	cpu := snap.CPUSeconds - s.startCPU
	if cpu < 0 {
		cpu = 0
	}

	s.m = Measurement{
		Duration:      elapsed,
		CPUSeconds:    cpu,
		MemoryPercent: snap.MemoryPercent,
	}
	return s.m
}

// StartTime returns when the span started.
func (s *Span) StartTime() time.Time {
	return s.start
}

// FromContext returns the innermost span stored in ctx, or nil.
func FromContext(ctx context.Context) *Span {
	s, _ := ctx.Value(spanKey{}).(*Span)
	return s
}
