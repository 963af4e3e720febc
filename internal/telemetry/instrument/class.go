package instrument

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownMethod is returned when a method was never registered on a Type.
var ErrUnknownMethod = errors.New("instrument: unknown method")

// Type instruments the methods of one named type.
//
// Methods are declared once with Register, usually next to the wrapper
// that implements them. Excluded methods still run but are not logged.
type Type struct {
	in   *Instrumentor
	name string

	mu      sync.RWMutex
	methods map[string]struct{}
	exclude map[string]struct{}
}

// Type returns a Type whose methods are logged as "<name>.<method>".
func (in *Instrumentor) Type(name string, exclude ...string) *Type {
	t := &Type{
		in:      in,
		name:    name,
		methods: make(map[string]struct{}),
		exclude: make(map[string]struct{}, len(exclude)),
	}
	for _, m := range exclude {
		t.exclude[m] = struct{}{}
	}
	return t
}

// Register declares methods of the type.
func (t *Type) Register(methods ...string) *Type {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, m := range methods {
		t.methods[m] = struct{}{}
	}
	return t
}

// Name returns the type name.
func (t *Type) Name() string {
	return t.name
}

// Methods returns the registered methods, sorted.
func (t *Type) Methods() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]string, 0, len(t.methods))
	for m := range t.methods {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// Instrumented reports whether calls to method are logged.
func (t *Type) Instrumented(method string) bool {
	registered, instrumented := t.lookup(method)
	return registered && instrumented
}

func (t *Type) lookup(method string) (registered, instrumented bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if _, ok := t.methods[method]; !ok {
		return false, false
	}
	_, excluded := t.exclude[method]
	return true, !excluded
}

// Do runs fn as method of the type. Instrumented methods are logged like
// Instrumentor.Do; excluded methods run without a log line.
func (t *Type) Do(ctx context.Context, method string, args Args, fn func(context.Context) error) error {
	registered, instrumented := t.lookup(method)
	if !registered {
		return fmt.Errorf("%w: %s.%s", ErrUnknownMethod, t.name, method)
	}
	if !instrumented {
		return fn(ctx)
	}
	return t.in.Do(ctx, t.name+"."+method, args, fn)
}

// Method runs fn as method of t and returns its result. It behaves like
// Type.Do.
func Method[R any](ctx context.Context, t *Type, method string, args Args, fn func(context.Context) (R, error)) (R, error) {
	var out R
	err := t.Do(ctx, method, args, func(ctx context.Context) error {
		var err error
		out, err = fn(ctx)
		return err
	})
	return out, err
}
