package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Embedding hooks
	e := NoopEmbeddingHooks{}
	e.OnGenerate(ctx, 15, 39, 42, time.Millisecond, nil)
	e.OnTick(ctx, 1, 12.5, false)
	e.OnConverged(ctx, 120, true, time.Second)
	e.OnStop(ctx, 7, "stopped")

	// Server hooks
	s := NoopServerHooks{}
	s.OnRequest(ctx, "POST", "/graph")
	s.OnResponse(ctx, "POST", "/graph", 201, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Embedding().(NoopEmbeddingHooks); !ok {
		t.Error("Embedding() should return NoopEmbeddingHooks by default")
	}
	if _, ok := Server().(NoopServerHooks); !ok {
		t.Error("Server() should return NoopServerHooks by default")
	}

	// Set custom hooks
	customEmbedding := &testEmbeddingHooks{}
	SetEmbeddingHooks(customEmbedding)
	if Embedding() != customEmbedding {
		t.Error("SetEmbeddingHooks should set custom hooks")
	}

	customServer := &testServerHooks{}
	SetServerHooks(customServer)
	if Server() != customServer {
		t.Error("SetServerHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Embedding().(NoopEmbeddingHooks); !ok {
		t.Error("Reset() should restore NoopEmbeddingHooks")
	}
	if _, ok := Server().(NoopServerHooks); !ok {
		t.Error("Reset() should restore NoopServerHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testEmbeddingHooks{}
	SetEmbeddingHooks(custom)

	// Setting nil should be ignored
	SetEmbeddingHooks(nil)
	SetServerHooks(nil)

	if Embedding() != custom {
		t.Error("SetEmbeddingHooks(nil) should be ignored")
	}
	if _, ok := Server().(NoopServerHooks); !ok {
		t.Error("SetServerHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testEmbeddingHooks struct{ NoopEmbeddingHooks }
type testServerHooks struct{ NoopServerHooks }
