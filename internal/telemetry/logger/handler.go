// Package logger provides leveled, named loggers for calllog.
package logger

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/yndnr/calllog-go/pkg/redact"
)

// TimeFormat is the timestamp layout of every line.
const TimeFormat = "2006-01-02 15:04:05"

// StackKey is rendered on the lines following the message instead of inline.
const StackKey = "stack"

// ColorMode selects console colorization.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Valid reports whether m is a known mode. The empty mode means auto.
func (m ColorMode) Valid() bool {
	switch m {
	case "", ColorAuto, ColorAlways, ColorNever:
		return true
	}
	return false
}

// Enabled resolves the mode for a writer. Auto colorizes terminals only.
func (m ColorMode) Enabled(w io.Writer) bool {
	switch m {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// HandlerOptions configures a TextHandler.
type HandlerOptions struct {
	// Name is printed as the logger name.
	Name string
	// Level is the minimum level handled. Defaults to info.
	Level slog.Leveler
	// Color wraps every line in the level's escape sequence.
	Color bool
	// Masker redacts attributes. Defaults to the default denylist.
	Masker *redact.Masker
	// Secrets, when set, takes precedence over Masker and is read for
	// every record, so a replaced masker applies to existing handlers.
	Secrets *SharedMasker
}

// TextHandler renders records in the line format of this package.
type TextHandler struct {
	opts   HandlerOptions
	w      io.Writer
	mu     *sync.Mutex
	attrs  []boundAttr // from WithAttrs, masked when a record is written
	groups []string
}

type boundAttr struct {
	groups []string
	attr   slog.Attr
}

// NewTextHandler creates a handler writing to w.
func NewTextHandler(w io.Writer, opts *HandlerOptions) *TextHandler {
	h := &TextHandler{w: w, mu: &sync.Mutex{}}
	if opts != nil {
		h.opts = *opts
	}
	if h.opts.Level == nil {
		h.opts.Level = slog.LevelInfo
	}
	if h.opts.Masker == nil {
		h.opts.Masker = redact.New(nil)
	}
	return h
}

// Enabled implements slog.Handler.
func (h *TextHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

// Handle implements slog.Handler.
func (h *TextHandler) Handle(_ context.Context, r slog.Record) error {
	var line bytes.Buffer

	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	line.WriteString(ts.Format(TimeFormat))
	line.WriteString(" - ")
	line.WriteString(h.opts.Name)
	line.WriteString(" - ")
	line.WriteString(levelName(r.Level))
	line.WriteString(" - ")
	line.WriteString(r.Message)

	m := h.masker()
	for _, b := range h.attrs {
		appendAttr(&line, m, b.groups, b.attr)
	}

	var stack string
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == StackKey && len(h.groups) == 0 {
			stack = a.Value.String()
			return true
		}
		appendAttr(&line, m, h.groups, a)
		return true
	})

	file, lineNo := source(r.PC)
	line.WriteString(" (")
	line.WriteString(file)
	line.WriteByte(':')
	line.WriteString(strconv.Itoa(lineNo))
	line.WriteByte(')')

	out := line.String()
	if h.opts.Color {
		out = levelColor(r.Level).Sprint(out)
	}

	var buf bytes.Buffer
	buf.WriteString(out)
	buf.WriteByte('\n')
	if stack != "" {
		for _, s := range strings.Split(strings.TrimRight(stack, "\n"), "\n") {
			buf.WriteString("    ")
			buf.WriteString(s)
			buf.WriteByte('\n')
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())
	return err
}

// WithAttrs implements slog.Handler.
func (h *TextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := h.clone()
	h2.attrs = make([]boundAttr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(h2.attrs, h.attrs)
	for _, a := range attrs {
		h2.attrs = append(h2.attrs, boundAttr{groups: h.groups, attr: a})
	}
	return h2
}

// WithGroup implements slog.Handler.
func (h *TextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := h.clone()
	h2.groups = append(append([]string(nil), h.groups...), name)
	return h2
}

// WithName returns a handler printing a different logger name.
func (h *TextHandler) WithName(name string) slog.Handler {
	h2 := h.clone()
	h2.opts.Name = name
	return h2
}

func (h *TextHandler) clone() *TextHandler {
	h2 := *h
	return &h2
}

func (h *TextHandler) masker() *redact.Masker {
	if h.opts.Secrets != nil {
		return h.opts.Secrets.Load()
	}
	return h.opts.Masker
}

func appendAttr(buf *bytes.Buffer, m *redact.Masker, groups []string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	a = redactAttr(m, a)

	if a.Value.Kind() == slog.KindGroup {
		sub := groups
		if a.Key != "" {
			sub = append(append([]string(nil), groups...), a.Key)
		}
		for _, ga := range a.Value.Group() {
			appendAttr(buf, m, sub, ga)
		}
		return
	}

	buf.WriteByte(' ')
	for _, g := range groups {
		buf.WriteString(g)
		buf.WriteByte('.')
	}
	buf.WriteString(a.Key)
	buf.WriteByte('=')
	buf.WriteString(quoteIfNeeded(valueString(a.Value)))
}

func valueString(v slog.Value) string {
	if v.Kind() == slog.KindTime {
		return v.Time().Format(time.RFC3339)
	}
	return v.String()
}

func quoteIfNeeded(s string) string {
	if s == "" {
		return `""`
	}
	for _, r := range s {
		if r == ' ' || r == '=' || r == '"' || r < 0x20 {
			return strconv.Quote(s)
		}
	}
	return s
}

// source returns the base file name and line of pc.
func source(pc uintptr) (string, int) {
	if pc == 0 {
		return "???", 0
	}
	frames := runtime.CallersFrames([]uintptr{pc})
	f, _ := frames.Next()
	if f.File == "" {
		return "???", 0
	}
	return filepath.Base(f.File), f.Line
}

// fanout dispatches a record to several handlers.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, h := range f {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}

func (f fanout) WithName(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = withName(h, name)
	}
	return out
}

// namedHandler is implemented by handlers that print a logger name.
type namedHandler interface {
	WithName(name string) slog.Handler
}

func withName(h slog.Handler, name string) slog.Handler {
	if nh, ok := h.(namedHandler); ok {
		return nh.WithName(name)
	}
	return h
}
