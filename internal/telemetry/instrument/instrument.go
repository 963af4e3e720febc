package instrument

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/yndnr/calllog-go/internal/telemetry/logger"
	"github.com/yndnr/calllog-go/internal/telemetry/metric"
	"github.com/yndnr/calllog-go/internal/telemetry/tracer"
	"github.com/yndnr/calllog-go/pkg/redact"
)

// Args are the arguments of an instrumented call as they appear in its record.
type Args struct {
	Positional []any
	Keyword    map[string]any
}

// Positional is shorthand for Args with positional arguments only.
func Positional(args ...any) Args {
	return Args{Positional: args}
}

// Instrumentor logs calls through a logger.
// It is safe for concurrent use.
type Instrumentor struct {
	log     logger.Logger
	masker  atomic.Pointer[redact.Masker]
	sampler metric.ProcessSampler
	metrics *metric.CallMetrics
	clock   func() time.Time
}

// Option configures an Instrumentor.
type Option func(*Instrumentor)

// WithLogger sets the logger. By default calls go to logger.Default(),
// resolved on every call so a sink installed later is picked up.
func WithLogger(l logger.Logger) Option {
	return func(in *Instrumentor) {
		in.log = l
	}
}

// WithSecrets replaces the denylist. An empty list keeps the default keys.
func WithSecrets(keys []string) Option {
	return func(in *Instrumentor) {
		in.masker.Store(redact.New(keys))
	}
}

// WithMasker sets the argument masker.
func WithMasker(m *redact.Masker) Option {
	return func(in *Instrumentor) {
		if m != nil {
			in.masker.Store(m)
		}
	}
}

// WithSampler sets the process sampler used for CPU and memory readings.
func WithSampler(s metric.ProcessSampler) Option {
	return func(in *Instrumentor) {
		in.sampler = s
	}
}

// WithMetrics records every call in m.
func WithMetrics(m *metric.CallMetrics) Option {
	return func(in *Instrumentor) {
		in.metrics = m
	}
}

// WithClock overrides the wall clock, for tests.
func WithClock(clock func() time.Time) Option {
	return func(in *Instrumentor) {
		in.clock = clock
	}
}

// New creates an Instrumentor.
func New(opts ...Option) *Instrumentor {
	in := &Instrumentor{
		sampler: metric.NewProcSampler(),
		clock:   time.Now,
	}
	in.masker.Store(redact.New(nil))
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// SetSecrets swaps the denylist. Calls already in flight keep the old one.
func (in *Instrumentor) SetSecrets(keys []string) {
	in.masker.Store(redact.New(keys, redact.WithPlaceholder(in.Masker().Placeholder())))
}

// Masker returns the current argument masker.
func (in *Instrumentor) Masker() *redact.Masker {
	return in.masker.Load()
}

func (in *Instrumentor) target() logger.Logger {
	if in.log != nil {
		return in.log
	}
	return logger.Default()
}

// Do runs fn as the call name and logs it.
//
// Arguments are masked before fn runs. On success one INFO line carries
// the call record. If fn returns an error, one ERROR line is logged and the
// same error is returned. If fn panics, one ERROR line is logged and the
// panic continues with the same value.
func (in *Instrumentor) Do(ctx context.Context, name string, args Args, fn func(context.Context) error) (err error) {
	m := in.Masker()
	positional := m.MaskSlice(args.Positional)
	keyword := m.MaskMap(args.Keyword)

	ctx, span := tracer.Start(ctx, name, in.sampler, tracer.WithClock(in.clock))
	ctx = logger.WithCallID(ctx, span.ID)
	l := in.target().With("call_id", span.ID)

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		l.Log(ctx, slog.LevelError, 0, fmt.Sprintf("Panic in %s: %v", name, r),
			"panic", r, logger.StackKey, string(debug.Stack()))
		meas := span.End()
		in.metrics.Observe(name, metric.OutcomePanic, meas.Duration, meas.CPUSeconds)
		panic(r)
	}()

	if err = fn(ctx); err != nil {
		l.Log(ctx, slog.LevelError, 0, fmt.Sprintf("Exception in %s: %v", name, err),
			"error", err, logger.StackKey, string(debug.Stack()))
		meas := span.End()
		in.metrics.Observe(name, metric.OutcomeError, meas.Duration, meas.CPUSeconds)
		return err
	}

	meas := span.End()
	rec := newRecord(name, positional, keyword, meas, logger.ThreadFromContext(ctx))
	l.Log(ctx, slog.LevelInfo, 0, rec.String())
	in.metrics.Observe(name, metric.OutcomeOK, meas.Duration, meas.CPUSeconds)
	return nil
}

// Call runs fn as the call name and returns its result.
// It behaves like Do.
func Call[R any](ctx context.Context, in *Instrumentor, name string, args Args, fn func(context.Context) (R, error)) (R, error) {
	var out R
	err := in.Do(ctx, name, args, func(ctx context.Context) error {
		var err error
		out, err = fn(ctx)
		return err
	})
	return out, err
}

// Wrap returns the instrumented equivalent of fn. Its argument is recorded
// as the single positional argument.
func Wrap[A, R any](in *Instrumentor, name string, fn func(context.Context, A) (R, error)) func(context.Context, A) (R, error) {
	return func(ctx context.Context, a A) (R, error) {
		return Call(ctx, in, name, Positional(a), func(ctx context.Context) (R, error) {
			return fn(ctx, a)
		})
	}
}
