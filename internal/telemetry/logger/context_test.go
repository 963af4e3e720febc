package logger

import (
	"context"
	"strings"
	"sync"
	"testing"
)

func TestWithLogger_FromContext(t *testing.T) {
	l, buf := newBufferLogger(t, "info")

	ctx := WithLogger(context.Background(), l)

	retrieved := FromContext(ctx)
	if retrieved == nil {
		t.Fatal("FromContext returned nil")
	}

	retrieved.Info("test message")

	if buf.Len() == 0 {
		t.Error("Logger from context should produce output")
	}
}

func TestFromContext_Default(t *testing.T) {
	// Should return default logger when none is set
	if l := FromContext(context.Background()); l == nil {
		t.Error("FromContext should return default logger, got nil")
	}
}

func TestWithCallID(t *testing.T) {
	ctx := WithCallID(context.Background(), "01HZX")

	if got := CallIDFromContext(ctx); got != "01HZX" {
		t.Errorf("CallIDFromContext() = %q, want %q", got, "01HZX")
	}
}

func TestCallIDFromContext_Empty(t *testing.T) {
	if got := CallIDFromContext(context.Background()); got != "" {
		t.Errorf("CallIDFromContext() = %q, want empty string", got)
	}
}

func TestWithThread(t *testing.T) {
	ctx := WithThread(context.Background(), "worker-1")

	if got := ThreadFromContext(ctx); got != "worker-1" {
		t.Errorf("ThreadFromContext() = %q, want %q", got, "worker-1")
	}
}

func TestThreadFromContext_Goroutine(t *testing.T) {
	main := ThreadFromContext(context.Background())
	if !strings.HasPrefix(main, "goroutine-") || main == "goroutine-0" {
		t.Fatalf("ThreadFromContext() = %q, want goroutine-<id>", main)
	}

	var other string
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		other = ThreadFromContext(context.Background())
	}()
	wg.Wait()

	if other == main {
		t.Errorf("distinct goroutines share thread name %q", main)
	}
}

func TestL_WithCallID(t *testing.T) {
	l, buf := newBufferLogger(t, "info")

	ctx := WithLogger(context.Background(), l)
	ctx = WithCallID(ctx, "01HZX")

	// L() should enrich with the call ID
	L(ctx).Info("test message")

	if !strings.Contains(buf.String(), "test message call_id=01HZX (") {
		t.Errorf("expected call_id attribute, got %q", buf.String())
	}
}

func TestL_NoCallID(t *testing.T) {
	l, buf := newBufferLogger(t, "info")

	ctx := WithLogger(context.Background(), l)
	L(ctx).Info("test message")

	if strings.Contains(buf.String(), "call_id") {
		t.Errorf("Should not have call_id when not set, got %q", buf.String())
	}
}

func TestContextKeyCollision(t *testing.T) {
	ctx := context.Background()

	ctx = WithCallID(ctx, "call-123")
	ctx = WithThread(ctx, "thread-456")

	// Both should be retrievable
	if id := CallIDFromContext(ctx); id != "call-123" {
		t.Errorf("CallID collision, got %q", id)
	}
	if name := ThreadFromContext(ctx); name != "thread-456" {
		t.Errorf("Thread collision, got %q", name)
	}
}
