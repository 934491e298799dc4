// Package observability provides hooks for metrics and tracing.
//
// Consumers register hooks at startup to receive events about resolution,
// bundle extraction and the bundle cache. Nothing is emitted anywhere until a
// hook is registered; the defaults do nothing.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPipelineHooks(&myPipelineHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// The pipeline runner calls hooks to emit events:
//
//	observability.Pipeline().OnExtractStart(ctx, packagePath)
//	// ... parse and read the bundle ...
//	observability.Pipeline().OnExtractComplete(ctx, packagePath, moduleCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the resolve and extract stages.
type PipelineHooks interface {
	// OnResolveComplete reports how many module paths went in and how many
	// unique package files came out.
	OnResolveComplete(ctx context.Context, modulePaths, packages int, duration time.Duration)

	OnExtractStart(ctx context.Context, packagePath string)
	OnExtractComplete(ctx context.Context, packagePath string, moduleCount int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from bundle cache lookups.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, packagePath string)
	OnCacheMiss(ctx context.Context, packagePath string)

	// OnCacheSet records a cache write of size bytes.
	OnCacheSet(ctx context.Context, packagePath string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnResolveComplete(context.Context, int, int, time.Duration) {}
func (NoopPipelineHooks) OnExtractStart(context.Context, string)                     {}
func (NoopPipelineHooks) OnExtractComplete(context.Context, string, int, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	hooksMu       sync.RWMutex
)

// SetPipelineHooks registers custom pipeline hooks. Runners look the hooks
// up on every call, so a replacement applies to later operations only.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
}
