// Package logger provides leveled, named loggers for calllog.
//
// It wraps the standard library log/slog with a line formatter that
// colorizes console output, a rotating file sink, and automatic redaction
// of denylisted attribute keys.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/yndnr/calllog-go/pkg/redact"
)

// Logger is the application logger interface.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Critical(msg string, args ...any)
	// Log emits a record at an arbitrary level. skip is the number of
	// additional stack frames between the caller and Log.
	Log(ctx context.Context, level slog.Level, skip int, msg string, args ...any)
	Enabled(level slog.Level) bool
	With(args ...any) Logger
	WithContext(ctx context.Context) Logger
	// Named returns a logger printing name instead of the current name.
	Named(name string) Logger
	Name() string
	// Slog exposes the underlying slog.Logger for components that need it.
	Slog() *slog.Logger
}

// Config holds single-writer logger configuration.
type Config struct {
	// Name is printed as the logger name.
	Name string
	// Level is the minimum log level (debug, info, warning, error, critical).
	Level string
	// Output is the output writer (defaults to os.Stderr).
	Output io.Writer
	// Color selects colorization of Output.
	Color ColorMode
	// Masker redacts attributes (defaults to the default denylist).
	Masker *redact.Masker
}

// DefaultConfig returns a default logger configuration.
func DefaultConfig() Config {
	return Config{
		Name:   "root",
		Level:  "info",
		Output: os.Stderr,
		Color:  ColorAuto,
	}
}

// slogLogger wraps slog.Logger with a name and a bound context.
type slogLogger struct {
	name   string
	logger *slog.Logger
	ctx    context.Context
}

// New creates a logger writing to a single output.
func New(cfg Config) (Logger, error) {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	handler := NewTextHandler(output, &HandlerOptions{
		Name:   cfg.Name,
		Level:  ParseLevel(cfg.Level),
		Color:  cfg.Color.Enabled(output),
		Masker: cfg.Masker,
	})

	return newSlogLogger(cfg.Name, handler), nil
}

func newSlogLogger(name string, h slog.Handler) *slogLogger {
	return &slogLogger{
		name:   name,
		logger: slog.New(h),
		ctx:    context.Background(),
	}
}

func (l *slogLogger) Debug(msg string, args ...any) {
	l.log(l.ctx, slog.LevelDebug, 0, msg, args...)
}

func (l *slogLogger) Info(msg string, args ...any) {
	l.log(l.ctx, slog.LevelInfo, 0, msg, args...)
}

func (l *slogLogger) Warn(msg string, args ...any) {
	l.log(l.ctx, slog.LevelWarn, 0, msg, args...)
}

func (l *slogLogger) Error(msg string, args ...any) {
	l.log(l.ctx, slog.LevelError, 0, msg, args...)
}

func (l *slogLogger) Critical(msg string, args ...any) {
	l.log(l.ctx, LevelCritical, 0, msg, args...)
}

func (l *slogLogger) Log(ctx context.Context, level slog.Level, skip int, msg string, args ...any) {
	if ctx == nil {
		ctx = l.ctx
	}
	l.log(ctx, level, skip, msg, args...)
}

// log records the caller's PC so the formatter prints the call site
// rather than this wrapper.
func (l *slogLogger) log(ctx context.Context, level slog.Level, skip int, msg string, args ...any) {
	if !l.logger.Handler().Enabled(ctx, level) {
		return
	}
	var pcs [1]uintptr
	// skip runtime.Callers, log, and the exported method
	runtime.Callers(3+skip, pcs[:])
	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	r.Add(args...)
	_ = l.logger.Handler().Handle(ctx, r)
}

func (l *slogLogger) Enabled(level slog.Level) bool {
	return l.logger.Handler().Enabled(l.ctx, level)
}

func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{
		name:   l.name,
		logger: l.logger.With(args...),
		ctx:    l.ctx,
	}
}

func (l *slogLogger) WithContext(ctx context.Context) Logger {
	return &slogLogger{
		name:   l.name,
		logger: l.logger,
		ctx:    ctx,
	}
}

func (l *slogLogger) Named(name string) Logger {
	return &slogLogger{
		name:   name,
		logger: slog.New(withName(l.logger.Handler(), name)),
		ctx:    l.ctx,
	}
}

func (l *slogLogger) Name() string {
	return l.name
}

func (l *slogLogger) Slog() *slog.Logger {
	return l.logger
}

// Global logger used until Init installs the default sink.
var defaultLogger atomic.Pointer[slogLogger]

func init() {
	l, _ := New(DefaultConfig())
	defaultLogger.Store(l.(*slogLogger))
}

// SetDefault sets the default global logger.
func SetDefault(l Logger) {
	if sl, ok := l.(*slogLogger); ok {
		defaultLogger.Store(sl)
	}
}

// Default returns the default global logger.
func Default() Logger {
	return defaultLogger.Load()
}

// Debug logs at debug level using the default logger.
func Debug(msg string, args ...any) {
	defaultLogger.Load().log(context.Background(), slog.LevelDebug, 0, msg, args...)
}

// Info logs at info level using the default logger.
func Info(msg string, args ...any) {
	defaultLogger.Load().log(context.Background(), slog.LevelInfo, 0, msg, args...)
}

// Warn logs at warning level using the default logger.
func Warn(msg string, args ...any) {
	defaultLogger.Load().log(context.Background(), slog.LevelWarn, 0, msg, args...)
}

// Error logs at error level using the default logger.
func Error(msg string, args ...any) {
	defaultLogger.Load().log(context.Background(), slog.LevelError, 0, msg, args...)
}
