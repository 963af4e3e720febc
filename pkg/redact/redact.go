// Package redact provides recursive secret masking for values about to be logged.
package redact

import (
	"fmt"
	"math"
	"reflect"
	"strings"
)

// Placeholder replaces the value of every denylisted key.
const Placeholder = "***"

// DefaultMaxDepth bounds recursion so cyclic pointer graphs terminate.
const DefaultMaxDepth = 32

// DefaultKeys is the default denylist, including AWS specific names.
var DefaultKeys = []string{
	"password",
	"api_key",
	"private_key",
	"secret_key",
	"access_token",
	"refresh_token",
	"credential",
	"encryption_key",
	"aws_secret_access_key",
	"aws_access_key_id",
	"aws_session_token",
	"s3_access_key",
	"s3_secret_key",
	"config",
	"configurations",
	"configuration",
	"credentials",
}

// Masker replaces denylisted mapping values with a placeholder.
// A Masker is immutable and safe for concurrent use.
type Masker struct {
	keys        []string
	set         map[string]struct{}
	placeholder string
	maxDepth    int
}

// Option configures a Masker.
type Option func(*Masker)

// WithPlaceholder overrides the replacement token.
func WithPlaceholder(p string) Option {
	return func(m *Masker) {
		m.placeholder = p
	}
}

// WithMaxDepth overrides the recursion limit.
func WithMaxDepth(depth int) Option {
	return func(m *Masker) {
		if depth > 0 {
			m.maxDepth = depth
		}
	}
}

// New creates a Masker for the given denylist.
// A nil or empty list selects DefaultKeys.
func New(keys []string, opts ...Option) *Masker {
	if len(keys) == 0 {
		keys = DefaultKeys
	}

	m := &Masker{
		keys:        make([]string, 0, len(keys)),
		set:         make(map[string]struct{}, len(keys)),
		placeholder: Placeholder,
		maxDepth:    DefaultMaxDepth,
	}
	for _, k := range keys {
		if _, dup := m.set[k]; dup {
			continue
		}
		m.set[k] = struct{}{}
		m.keys = append(m.keys, k)
	}

	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Mask masks v with a Masker built from keys. See Masker.Mask.
func Mask(v any, keys []string) any {
	return New(keys).Mask(v)
}

// Keys returns the denylist in insertion order.
func (m *Masker) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Placeholder returns the replacement token.
func (m *Masker) Placeholder() string {
	return m.placeholder
}

// IsSecret reports whether key is on the denylist.
func (m *Masker) IsSecret(key string) bool {
	_, ok := m.set[key]
	return ok
}

// Mask returns a masked, serializable copy of v.
//
// Values implementing error or fmt.Stringer are replaced by their text
// without being walked, so secrets a String or Error method prints are not
// masked. Keep such methods free of secrets or pass the plain struct.
func (m *Masker) Mask(v any) any {
	if v == nil {
		return nil
	}
	return m.mask(reflect.ValueOf(v), 0)
}

// MaskMap masks a keyword-argument style mapping.
// A nil map stays nil.
func (m *Masker) MaskMap(kv map[string]any) map[string]any {
	if kv == nil {
		return nil
	}
	out, _ := m.Mask(kv).(map[string]any)
	return out
}

// MaskSlice masks a positional-argument style sequence.
// A nil slice stays nil.
func (m *Masker) MaskSlice(items []any) []any {
	if items == nil {
		return nil
	}
	out, _ := m.Mask(items).([]any)
	return out
}

var (
	stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
	errorType    = reflect.TypeOf((*error)(nil)).Elem()
)

func (m *Masker) mask(v reflect.Value, depth int) any {
	if !v.IsValid() {
		return nil
	}
	if depth > m.maxDepth {
		return v.Type().String()
	}

	// Stringers and errors render as text before any structural walk.
	if v.Kind() != reflect.Interface && v.CanInterface() {
		t := v.Type()
		if t.Implements(errorType) || t.Implements(stringerType) {
			if (v.Kind() == reflect.Pointer || v.Kind() == reflect.Map || v.Kind() == reflect.Slice) && v.IsNil() {
				return nil
			}
			return fmt.Sprint(v.Interface())
		}
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return m.mask(v.Elem(), depth+1)

	case reflect.Bool:
		return v.Bool()
	case reflect.String:
		return v.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint()
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Sprint(f)
		}
		return f

	case reflect.Map:
		if v.IsNil() {
			return nil
		}
		out := make(map[string]any, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			key := mapKey(iter.Key())
			if m.IsSecret(key) {
				out[key] = m.placeholder
				continue
			}
			out[key] = m.mask(iter.Value(), depth+1)
		}
		return out

	case reflect.Slice:
		if v.IsNil() {
			return nil
		}
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return string(v.Bytes())
		}
		return m.maskSequence(v, depth)

	case reflect.Array:
		return m.maskSequence(v, depth)

	case reflect.Struct:
		return m.maskStruct(v, depth)

	default:
		// complex numbers, funcs, chans, unsafe pointers
		if v.CanInterface() {
			return fmt.Sprint(v.Interface())
		}
		return v.Type().String()
	}
}

func (m *Masker) maskSequence(v reflect.Value, depth int) []any {
	out := make([]any, v.Len())
	for i := range out {
		out[i] = m.mask(v.Index(i), depth+1)
	}
	return out
}

func (m *Masker) maskStruct(v reflect.Value, depth int) map[string]any {
	t := v.Type()
	out := make(map[string]any, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name, skip := fieldName(field)
		if skip {
			continue
		}
		if m.IsSecret(name) {
			out[name] = m.placeholder
			continue
		}
		out[name] = m.mask(v.Field(i), depth+1)
	}
	return out
}

// fieldName returns the json name of a struct field.
func fieldName(f reflect.StructField) (string, bool) {
	tag := f.Tag.Get("json")
	if tag == "-" {
		return "", true
	}
	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name, false
	}
	return f.Name, false
}

func mapKey(k reflect.Value) string {
	for k.Kind() == reflect.Interface && !k.IsNil() {
		k = k.Elem()
	}
	if k.Kind() == reflect.String {
		return k.String()
	}
	if k.CanInterface() {
		return fmt.Sprint(k.Interface())
	}
	return k.Type().String()
}
