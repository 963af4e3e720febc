// Package logger provides leveled, named loggers for calllog.
package logger

import (
	"bytes"
	"context"
	"io"
	"log"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/hashicorp/go-hclog"
)

// hcLogger adapts Logger to the hashicorp/go-hclog Logger interface so
// libraries from that ecosystem write through calllog handlers.
type hcLogger struct {
	l       Logger
	name    string
	implied []any
	level   *atomic.Int32 // hclog.Level; NoLevel defers to l
}

// NewHCLogger wraps l as an hclog.Logger named after l.
func NewHCLogger(l Logger) hclog.Logger {
	lvl := new(atomic.Int32)
	lvl.Store(int32(hclog.NoLevel))
	return &hcLogger{l: l, name: l.Name(), level: lvl}
}

func toSlogLevel(level hclog.Level) slog.Level {
	switch level {
	case hclog.Trace, hclog.Debug:
		return slog.LevelDebug
	case hclog.Warn:
		return slog.LevelWarn
	case hclog.Error:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (h *hcLogger) enabled(level hclog.Level) bool {
	if min := hclog.Level(h.level.Load()); min != hclog.NoLevel {
		if min == hclog.Off || level < min {
			return false
		}
	}
	return h.l.Enabled(toSlogLevel(level))
}

// log is called directly by every exported method, which keeps the
// caller depth constant for source reporting.
func (h *hcLogger) log(level hclog.Level, msg string, args ...any) {
	if !h.enabled(level) {
		return
	}
	h.l.Log(context.Background(), toSlogLevel(level), 2, msg, args...)
}

func (h *hcLogger) Log(level hclog.Level, msg string, args ...any) { h.log(level, msg, args...) }
func (h *hcLogger) Trace(msg string, args ...any)                  { h.log(hclog.Trace, msg, args...) }
func (h *hcLogger) Debug(msg string, args ...any)                  { h.log(hclog.Debug, msg, args...) }
func (h *hcLogger) Info(msg string, args ...any)                   { h.log(hclog.Info, msg, args...) }
func (h *hcLogger) Warn(msg string, args ...any)                   { h.log(hclog.Warn, msg, args...) }
func (h *hcLogger) Error(msg string, args ...any)                  { h.log(hclog.Error, msg, args...) }

func (h *hcLogger) IsTrace() bool { return h.enabled(hclog.Trace) }
func (h *hcLogger) IsDebug() bool { return h.enabled(hclog.Debug) }
func (h *hcLogger) IsInfo() bool  { return h.enabled(hclog.Info) }
func (h *hcLogger) IsWarn() bool  { return h.enabled(hclog.Warn) }
func (h *hcLogger) IsError() bool { return h.enabled(hclog.Error) }

func (h *hcLogger) ImpliedArgs() []any {
	return append([]any(nil), h.implied...)
}

func (h *hcLogger) With(args ...any) hclog.Logger {
	return &hcLogger{
		l:       h.l.With(args...),
		name:    h.name,
		implied: append(h.ImpliedArgs(), args...),
		level:   h.level,
	}
}

func (h *hcLogger) Name() string { return h.name }

// Named appends name to the current name, separated by a dot.
func (h *hcLogger) Named(name string) hclog.Logger {
	if h.name != "" {
		name = h.name + "." + name
	}
	return h.ResetNamed(name)
}

func (h *hcLogger) ResetNamed(name string) hclog.Logger {
	return &hcLogger{
		l:       h.l.Named(name),
		name:    name,
		implied: h.ImpliedArgs(),
		level:   h.level,
	}
}

// SetLevel narrows the levels passed on to the wrapped logger. It cannot
// lower the wrapped logger's own threshold.
func (h *hcLogger) SetLevel(level hclog.Level) {
	h.level.Store(int32(level))
}

func (h *hcLogger) GetLevel() hclog.Level {
	if lvl := hclog.Level(h.level.Load()); lvl != hclog.NoLevel {
		return lvl
	}
	for _, lvl := range []hclog.Level{hclog.Trace, hclog.Info, hclog.Warn, hclog.Error} {
		if h.l.Enabled(toSlogLevel(lvl)) {
			return lvl
		}
	}
	return hclog.Off
}

func (h *hcLogger) StandardLogger(opts *hclog.StandardLoggerOptions) *log.Logger {
	return log.New(h.StandardWriter(opts), "", 0)
}

func (h *hcLogger) StandardWriter(opts *hclog.StandardLoggerOptions) io.Writer {
	if opts == nil {
		opts = &hclog.StandardLoggerOptions{}
	}
	return &stdWriter{h: h, infer: opts.InferLevels, force: opts.ForceLevel}
}

// stdWriter logs every line written by a standard library logger.
type stdWriter struct {
	h     *hcLogger
	infer bool
	force hclog.Level
}

func (w *stdWriter) Write(p []byte) (int, error) {
	msg := string(bytes.TrimRight(p, " \t\n"))

	level := hclog.Info
	switch {
	case w.force != hclog.NoLevel:
		level = w.force
	case w.infer:
		level, msg = inferLevel(msg)
	}

	if w.h.enabled(level) {
		w.h.l.Log(context.Background(), toSlogLevel(level), 3, msg)
	}
	return len(p), nil
}

// inferLevel strips a leading "[LEVEL]" tag, the convention of
// hclog-aware standard loggers.
func inferLevel(msg string) (hclog.Level, string) {
	tags := []struct {
		tag   string
		level hclog.Level
	}{
		{"[TRACE]", hclog.Trace},
		{"[DEBUG]", hclog.Debug},
		{"[INFO]", hclog.Info},
		{"[WARN]", hclog.Warn},
		{"[ERR]", hclog.Error},
		{"[ERROR]", hclog.Error},
	}
	for _, t := range tags {
		if rest, ok := strings.CutPrefix(msg, t.tag); ok {
			return t.level, strings.TrimSpace(rest)
		}
	}
	return hclog.Info, msg
}
