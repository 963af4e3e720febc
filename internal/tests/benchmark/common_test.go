package benchmark

import (
	"fmt"
	"io"
	"testing"

	"github.com/yndnr/calllog-go/internal/telemetry/instrument"
	"github.com/yndnr/calllog-go/internal/telemetry/logger"
)

// PayloadSizes defines the number of top-level keys in masked payloads.
var PayloadSizes = []int{10, 100, 1000}

// zeroSampler keeps procfs reads out of the measured path.
type zeroSampler struct{}

func (zeroSampler) CPUSeconds() (float64, error)    { return 0, nil }
func (zeroSampler) MemoryPercent() (float64, error) { return 0, nil }

// payload builds a keyword map with n entries, every tenth a secret, each
// holding a small nested document.
func payload(n int) map[string]any {
	m := make(map[string]any, n)
	for i := 0; i < n; i++ {
		key := fmt.Sprintf("field_%d", i)
		if i%10 == 0 {
			key = fmt.Sprintf("password_%d", i)
			m["password"] = "hunter2"
		}
		m[key] = map[string]any{
			"id":      i,
			"tags":    []any{"a", "b", "c"},
			"api_key": "k-" + key,
		}
	}
	return m
}

// discardLogger returns a logger that formats every line and drops it.
func discardLogger(b *testing.B) logger.Logger {
	b.Helper()
	l, err := logger.New(logger.Config{Name: "bench", Output: io.Discard, Color: logger.ColorNever})
	if err != nil {
		b.Fatalf("logger.New() error = %v", err)
	}
	return l
}

func newInstrumentor(b *testing.B) *instrument.Instrumentor {
	b.Helper()
	return instrument.New(
		instrument.WithLogger(discardLogger(b)),
		instrument.WithSampler(zeroSampler{}),
	)
}
