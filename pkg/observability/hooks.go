// Package observability provides optional instrumentation hooks for the CDG
// pipeline and its cache.
//
// Libraries call the registered hooks; main decides what they do. The CLI
// installs hooks that emit debug log lines, tests install recorders, and
// anything else (metrics exporters, tracing) can be plugged in without the
// engine packages importing it.
//
// Register hooks once at startup:
//
//	observability.SetEngineHooks(myHooks)
//	observability.SetCacheHooks(myCacheHooks)
//
// Emit events from library code:
//
//	observability.Engine().OnRank(ctx, requested, produced, time.Since(start))
package observability

import (
	"context"
	"sync"
	"time"
)

// EngineHooks receives events from pipeline stages.
type EngineHooks interface {
	// OnLoad reports a graph load from source (a path or "-" for stdin).
	OnLoad(ctx context.Context, source string, nodes int, duration time.Duration, err error)
	// OnRank reports a TopPaths call that asked for requested paths.
	OnRank(ctx context.Context, requested, produced int, duration time.Duration)
	// OnCover reports a coverage application.
	OnCover(ctx context.Context, decisions, covered int, err error)
	// OnRender reports a render in the given format.
	OnRender(ctx context.Context, format string, duration time.Duration, err error)
}

// CacheHooks receives events from cache lookups made by the pipeline.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// NoopEngineHooks ignores every event.
type NoopEngineHooks struct{}

func (NoopEngineHooks) OnLoad(context.Context, string, int, time.Duration, error) {}
func (NoopEngineHooks) OnRank(context.Context, int, int, time.Duration)           {}
func (NoopEngineHooks) OnCover(context.Context, int, int, error)                  {}
func (NoopEngineHooks) OnRender(context.Context, string, time.Duration, error)    {}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

var (
	engineHooks EngineHooks = NoopEngineHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	hooksMu     sync.RWMutex
)

// SetEngineHooks registers engine hooks. nil is ignored.
func SetEngineHooks(h EngineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		engineHooks = h
	}
}

// SetCacheHooks registers cache hooks. nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Engine returns the registered engine hooks.
func Engine() EngineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return engineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores the no-op hooks.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	engineHooks = NoopEngineHooks{}
	cacheHooks = NoopCacheHooks{}
}
