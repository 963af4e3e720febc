// Package logger provides leveled, named loggers for calllog.
package logger

import (
	"bytes"
	"context"
	"runtime"
	"strconv"
)

// contextKey is a type for context keys to avoid collisions.
type contextKey string

const (
	// loggerKey is the context key for the logger.
	loggerKey contextKey = "calllog.logger"
	// callIDKey is the context key for the current call ID.
	callIDKey contextKey = "calllog.call_id"
	// threadKey is the context key for the thread name.
	threadKey contextKey = "calllog.thread"
)

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext extracts the logger from context.
// Returns the default logger if none is set.
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(loggerKey).(Logger); ok {
		return l
	}
	return Default()
}

// WithCallID adds a call ID to the context.
func WithCallID(ctx context.Context, callID string) context.Context {
	return context.WithValue(ctx, callIDKey, callID)
}

// CallIDFromContext extracts the call ID from context.
func CallIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(callIDKey).(string); ok {
		return id
	}
	return ""
}

// WithThread names the logical thread of execution carried by ctx.
func WithThread(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, threadKey, name)
}

// ThreadFromContext returns the thread name carried by ctx, or
// "goroutine-<id>" for the calling goroutine when none is set.
func ThreadFromContext(ctx context.Context) string {
	if name, ok := ctx.Value(threadKey).(string); ok && name != "" {
		return name
	}
	return "goroutine-" + strconv.FormatUint(goroutineID(), 10)
}

// goroutineID parses the id from the "goroutine N [" stack header.
func goroutineID() uint64 {
	var buf [64]byte
	b := buf[:runtime.Stack(buf[:], false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	if i := bytes.IndexByte(b, ' '); i > 0 {
		b = b[:i]
	}
	id, _ := strconv.ParseUint(string(b), 10, 64)
	return id
}

// L is a shorthand for FromContext that also enriches the logger
// with the call ID from the context.
func L(ctx context.Context) Logger {
	l := FromContext(ctx).WithContext(ctx)

	if callID := CallIDFromContext(ctx); callID != "" {
		l = l.With("call_id", callID)
	}

	return l
}
