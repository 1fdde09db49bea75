// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about graph generation, relaxation runs, and HTTP requests
// served by the tutte server.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so the core packages stay
// free of any logging or metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetEmbeddingHooks(&myEmbeddingHooks{})
//	    observability.SetServerHooks(&myServerHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Embedding().OnGenerate(ctx, n, len(g.Edges), seed, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Embedding Hooks
// =============================================================================

// EmbeddingHooks receives events from graph generation and the relaxation
// loop.
type EmbeddingHooks interface {
	// OnGenerate records a generated graph.
	OnGenerate(ctx context.Context, vertices, edges int, seed uint64, duration time.Duration, err error)

	// OnTick records one relaxation step of a running animation.
	OnTick(ctx context.Context, tick int, maxDisplacement float64, planar bool)

	// OnConverged records a run that stopped because the drawing settled.
	OnConverged(ctx context.Context, ticks int, planar bool, duration time.Duration)

	// OnStop records a run that ended without converging: cancelled,
	// stopped by the caller, or cut off by a tick limit.
	OnStop(ctx context.Context, ticks int, reason string)
}

// =============================================================================
// Server Hooks
// =============================================================================

// ServerHooks receives events from the HTTP server.
type ServerHooks interface {
	// OnRequest records an incoming HTTP request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records a completed HTTP response.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopEmbeddingHooks is a no-op implementation of EmbeddingHooks.
type NoopEmbeddingHooks struct{}

func (NoopEmbeddingHooks) OnGenerate(context.Context, int, int, uint64, time.Duration, error) {}
func (NoopEmbeddingHooks) OnTick(context.Context, int, float64, bool)                         {}
func (NoopEmbeddingHooks) OnConverged(context.Context, int, bool, time.Duration)              {}
func (NoopEmbeddingHooks) OnStop(context.Context, int, string)                                {}

// NoopServerHooks is a no-op implementation of ServerHooks.
type NoopServerHooks struct{}

func (NoopServerHooks) OnRequest(context.Context, string, string)                     {}
func (NoopServerHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	embeddingHooks EmbeddingHooks = NoopEmbeddingHooks{}
	serverHooks    ServerHooks    = NoopServerHooks{}
	hooksMu        sync.RWMutex
)

// SetEmbeddingHooks registers custom embedding hooks.
// This should be called once at application startup before any graph is generated.
func SetEmbeddingHooks(h EmbeddingHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		embeddingHooks = h
	}
}

// SetServerHooks registers custom server hooks.
// This should be called once at application startup before serving requests.
func SetServerHooks(h ServerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		serverHooks = h
	}
}

// Embedding returns the registered embedding hooks.
func Embedding() EmbeddingHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return embeddingHooks
}

// Server returns the registered server hooks.
func Server() ServerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return serverHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	embeddingHooks = NoopEmbeddingHooks{}
	serverHooks = NoopServerHooks{}
}
