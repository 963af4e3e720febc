// Package metric provides process sampling and Prometheus metrics for instrumented calls.
package metric

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// fakeSampler implements ProcessSampler for testing.
type fakeSampler struct {
	cpu    float64
	mem    float64
	cpuErr error
	memErr error
}

func (f *fakeSampler) CPUSeconds() (float64, error)    { return f.cpu, f.cpuErr }
func (f *fakeSampler) MemoryPercent() (float64, error) { return f.mem, f.memErr }

func TestSample(t *testing.T) {
	tests := []struct {
		name    string
		sampler ProcessSampler
		want    Snapshot
	}{
		{
			name:    "nil sampler",
			sampler: nil,
			want:    Snapshot{},
		},
		{
			name:    "both readings",
			sampler: &fakeSampler{cpu: 1.5, mem: 2.25},
			want:    Snapshot{CPUSeconds: 1.5, MemoryPercent: 2.25},
		},
		{
			name:    "failed readings are zero",
			sampler: &fakeSampler{cpu: 1.5, mem: 2.25, cpuErr: errors.New("x"), memErr: errors.New("y")},
			want:    Snapshot{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sample(tt.sampler); got != tt.want {
				t.Errorf("Sample() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestProcSampler(t *testing.T) {
	s := NewProcSampler()

	cpu, err := s.CPUSeconds()
	if err != nil {
		t.Skipf("procfs not available: %v", err)
	}
	if cpu < 0 {
		t.Errorf("CPUSeconds() = %v, want >= 0", cpu)
	}

	mem, err := s.MemoryPercent()
	if err != nil {
		t.Skipf("meminfo not available: %v", err)
	}
	if mem <= 0 || mem > 100 {
		t.Errorf("MemoryPercent() = %v, want (0, 100]", mem)
	}
}

func TestCallMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewCallMetrics(reg)
	if err != nil {
		t.Fatalf("NewCallMetrics() error = %v", err)
	}

	m.Observe("add", OutcomeOK, 20*time.Millisecond, 0.01)
	m.Observe("add", OutcomeOK, 10*time.Millisecond, 0)
	m.Observe("add", OutcomeError, time.Second, 1)

	if got := testutil.ToFloat64(m.calls.WithLabelValues("add", OutcomeOK)); got != 2 {
		t.Errorf("ok calls = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.calls.WithLabelValues("add", OutcomeError)); got != 1 {
		t.Errorf("error calls = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.cpu.WithLabelValues("add")); got != 0.01 {
		t.Errorf("cpu seconds = %v, want 0.01", got)
	}
	if got := testutil.CollectAndCount(m.duration); got != 1 {
		t.Errorf("duration series = %d, want 1", got)
	}
}

func TestCallMetrics_NilIsNoop(t *testing.T) {
	var m *CallMetrics
	// Should not panic
	m.Observe("f", OutcomeOK, time.Second, 1)
}

func TestNewCallMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewCallMetrics(reg); err != nil {
		t.Fatalf("NewCallMetrics() error = %v", err)
	}
	if _, err := NewCallMetrics(reg); err == nil {
		t.Error("second NewCallMetrics() on same registry should fail")
	}
}

func TestCollector(t *testing.T) {
	c := NewCollector(&fakeSampler{cpu: 3, mem: 12.5})

	if got := testutil.CollectAndCount(c); got != 2 {
		t.Errorf("CollectAndCount() = %d, want 2", got)
	}

	expected := `
# HELP calllog_process_memory_percent Resident memory as a percentage of total physical memory.
# TYPE calllog_process_memory_percent gauge
calllog_process_memory_percent 12.5
`
	if err := testutil.CollectAndCompare(c, strings.NewReader(expected), "calllog_process_memory_percent"); err != nil {
		t.Errorf("CollectAndCompare() error = %v", err)
	}
}

func TestCollector_SkipsFailedReadings(t *testing.T) {
	c := NewCollector(&fakeSampler{cpuErr: errors.New("no procfs"), mem: 1})

	if got := testutil.CollectAndCount(c); got != 1 {
		t.Errorf("CollectAndCount() = %d, want 1", got)
	}
}

func TestRegistry_Handler(t *testing.T) {
	r, err := NewRegistry(&fakeSampler{cpu: 1, mem: 1})
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	r.Calls.Observe("mul", OutcomeOK, time.Millisecond, 0)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Result().Body)
	for _, want := range []string{
		`calllog_calls_total{function="mul",outcome="ok"} 1`,
		"calllog_process_cpu_seconds 1",
		"calllog_call_duration_seconds_bucket",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestRegistry_WithoutSampler(t *testing.T) {
	r, err := NewRegistry(nil)
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	if r.Process != nil {
		t.Error("Process collector should be nil without sampler")
	}
	if r.Gatherer() == nil {
		t.Error("Gatherer() returned nil")
	}
}
