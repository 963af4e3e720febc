// Package tracer measures individual calls.
package tracer

import (
	"context"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
)

// stepSampler returns successive CPU readings.
type stepSampler struct {
	cpu []float64
	mem float64
	i   int
}

func (s *stepSampler) CPUSeconds() (float64, error) {
	v := s.cpu[s.i]
	if s.i < len(s.cpu)-1 {
		s.i++
	}
	return v, nil
}

func (s *stepSampler) MemoryPercent() (float64, error) { return s.mem, nil }

// fakeClock advances by step on every read.
func fakeClock(start time.Time, step time.Duration) func() time.Time {
	cur := start
	return func() time.Time {
		t := cur
		cur = cur.Add(step)
		return t
	}
}

func TestStart_End(t *testing.T) {
	sampler := &stepSampler{cpu: []float64{1.0, 1.25}, mem: 3.5}
	clock := fakeClock(time.Unix(100, 0), 65*time.Second)

	ctx, span := Start(context.Background(), "add", sampler, WithClock(clock))

	if FromContext(ctx) != span {
		t.Error("FromContext() should return the started span")
	}
	if span.Name != "add" {
		t.Errorf("Name = %q, want %q", span.Name, "add")
	}
	if !span.StartTime().Equal(time.Unix(100, 0)) {
		t.Errorf("StartTime() = %v", span.StartTime())
	}

	m := span.End()
	if m.Duration != 65*time.Second {
		t.Errorf("Duration = %v, want 65s", m.Duration)
	}
	if m.CPUSeconds != 0.25 {
		t.Errorf("CPUSeconds = %v, want 0.25", m.CPUSeconds)
	}
	if m.MemoryPercent != 3.5 {
		t.Errorf("MemoryPercent = %v, want 3.5", m.MemoryPercent)
	}
}

func TestSpan_EndTwice(t *testing.T) {
	sampler := &stepSampler{cpu: []float64{0, 1, 2}}
	_, span := Start(context.Background(), "f", sampler)

	first := span.End()
	second := span.End()
	if first != second {
		t.Errorf("second End() = %+v, want %+v", second, first)
	}
}

func TestSpan_NilSampler(t *testing.T) {
	_, span := Start(context.Background(), "f", nil)

	m := span.End()
	if m.CPUSeconds != 0 || m.MemoryPercent != 0 {
		t.Errorf("End() = %+v, want zero readings", m)
	}
	if m.Duration < 0 {
		t.Errorf("Duration = %v, want >= 0", m.Duration)
	}
}

func TestSpan_NegativeDeltasClamp(t *testing.T) {
	sampler := &stepSampler{cpu: []float64{5, 4}}
	clock := fakeClock(time.Unix(100, 0), -time.Second)

	_, span := Start(context.Background(), "f", sampler, WithClock(clock))
	m := span.End()

	if m.Duration != 0 {
		t.Errorf("Duration = %v, want 0", m.Duration)
	}
	if m.CPUSeconds != 0 {
		t.Errorf("CPUSeconds = %v, want 0", m.CPUSeconds)
	}
}

func TestFromContext_Empty(t *testing.T) {
	if FromContext(context.Background()) != nil {
		t.Error("FromContext() on empty context should be nil")
	}
}

func TestNewID(t *testing.T) {
	seen := make(map[string]bool)
	prev := ""
	for i := 0; i < 100; i++ {
		id := NewID()
		if _, err := ulid.ParseStrict(id); err != nil {
			t.Fatalf("NewID() = %q is not a ULID: %v", id, err)
		}
		if seen[id] {
			t.Fatalf("NewID() returned duplicate %q", id)
		}
		if id <= prev {
			t.Errorf("NewID() = %q not greater than %q", id, prev)
		}
		seen[id] = true
		prev = id
	}
}
