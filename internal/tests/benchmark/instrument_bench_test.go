package benchmark

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/yndnr/calllog-go/internal/telemetry/instrument"
	"github.com/yndnr/calllog-go/internal/telemetry/logger"
)

// BenchmarkDo benchmarks a successful instrumented call.
func BenchmarkDo(b *testing.B) {
	in := newInstrumentor(b)
	ctx := context.Background()
	args := instrument.Args{
		Positional: []any{5, 3},
		Keyword:    map[string]any{"password": "hunter2"},
	}
	fn := func(context.Context) error { return nil }

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = in.Do(ctx, "add", args, fn)
	}
}

// BenchmarkDo_Error benchmarks the error path, which captures a stack.
func BenchmarkDo_Error(b *testing.B) {
	in := newInstrumentor(b)
	ctx := context.Background()
	boom := errors.New("boom")
	fn := func(context.Context) error { return boom }

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = in.Do(ctx, "fail", instrument.Args{}, fn)
	}
}

// BenchmarkDo_Parallel benchmarks concurrent calls sharing one instrumentor.
func BenchmarkDo_Parallel(b *testing.B) {
	in := newInstrumentor(b)
	args := instrument.Positional(1, 2)
	fn := func(context.Context) error { return nil }

	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		ctx := context.Background()
		for pb.Next() {
			_ = in.Do(ctx, "add", args, fn)
		}
	})
}

// BenchmarkTypeMethod benchmarks dispatch through a registered type.
func BenchmarkTypeMethod(b *testing.B) {
	typ := newInstrumentor(b).Type("MathOperations", "multiply").Register("add", "multiply")
	ctx := context.Background()
	args := instrument.Positional(5, 3)

	b.Run("instrumented", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_, _ = instrument.Method(ctx, typ, "add", args, func(context.Context) (int, error) { return 8, nil })
		}
	})

	b.Run("excluded", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_, _ = instrument.Method(ctx, typ, "multiply", args, func(context.Context) (int, error) { return 15, nil })
		}
	})
}

// BenchmarkFactoryLogger benchmarks file logging through a factory logger,
// including rotation bookkeeping.
func BenchmarkFactoryLogger(b *testing.B) {
	f := logger.NewFactory(logger.FactoryConfig{
		FilePath: filepath.Join(b.TempDir(), "bench.log"),
		MaxBytes: 1 << 20,
		Backups:  2,
	})
	defer f.Close()

	l, err := f.Setup("bench", false)
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		l.Info("request handled", "user", "alice", "password", "hunter2", "n", i)
	}
}

// BenchmarkFormatDuration benchmarks record duration formatting.
func BenchmarkFormatDuration(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		instrument.FormatSeconds(3661.25)
	}
}
