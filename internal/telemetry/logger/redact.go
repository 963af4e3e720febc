// Package logger provides leveled, named loggers for calllog.
package logger

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/yndnr/calllog-go/pkg/redact"
)

// SharedMasker holds a masker that can be replaced while handlers use it.
type SharedMasker struct {
	p atomic.Pointer[redact.Masker]
}

// NewSharedMasker returns a SharedMasker holding m, or the default
// denylist when m is nil.
func NewSharedMasker(m *redact.Masker) *SharedMasker {
	s := &SharedMasker{}
	s.Store(m)
	return s
}

// Load returns the current masker.
func (s *SharedMasker) Load() *redact.Masker {
	return s.p.Load()
}

// Store replaces the masker. Records already being formatted keep the old one.
func (s *SharedMasker) Store(m *redact.Masker) {
	if m == nil {
		m = redact.New(nil)
	}
	s.p.Store(m)
}

// redactAttr masks an attribute whose key is on the denylist and
// recursively handles groups.
func redactAttr(m *redact.Masker, a slog.Attr) slog.Attr {
	if m.IsSecret(a.Key) {
		return slog.String(a.Key, m.Placeholder())
	}

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		newAttrs := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			newAttrs[i] = redactAttr(m, attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(newAttrs...)}
	}

	if a.Value.Kind() == slog.KindAny {
		return slog.Any(a.Key, maskedValue{m.Mask(a.Value.Any())})
	}

	return a
}

// maskedValue holds the output of Masker.Mask, already safe to print.
type maskedValue struct {
	v any
}

// String renders containers as compact JSON.
func (mv maskedValue) String() string {
	switch v := mv.v.(type) {
	case nil:
		return "<nil>"
	case string:
		return v
	case map[string]any, []any:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	default:
		return fmt.Sprint(v)
	}
}
