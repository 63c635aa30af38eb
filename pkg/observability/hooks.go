// Package observability provides hooks for metrics, tracing, and logging.
//
// Libraries in this module call the registered hooks at well-known points
// (layout computed, creation fan-out started and finished, host API
// requests). The defaults do nothing, so instrumentation costs nothing
// unless a binary opts in at startup:
//
//	func main() {
//	    observability.SetPackHooks(observability.NewLogHooks(logger))
//	    observability.SetHTTPHooks(observability.NewLogHooks(logger))
//	    // ... run application
//	}
//
// Hooks are registered by main, never by libraries, which keeps the
// library packages free of any particular metrics backend.
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pack Hooks
// =============================================================================

// PackHooks receives events from pack creation.
type PackHooks interface {
	// OnLayout records a computed layout and how long it took.
	OnLayout(ctx context.Context, stickies int, duration time.Duration)

	// OnCreateStart records the start of the creation fan-out.
	OnCreateStart(ctx context.Context, stickies int)

	// OnCreateComplete records the end of the fan-out. err is the first
	// creation failure, if any.
	OnCreateComplete(ctx context.Context, stickies int, duration time.Duration, err error)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from host API clients.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPackHooks is a no-op implementation of PackHooks.
type NoopPackHooks struct{}

func (NoopPackHooks) OnLayout(context.Context, int, time.Duration)                {}
func (NoopPackHooks) OnCreateStart(context.Context, int)                          {}
func (NoopPackHooks) OnCreateComplete(context.Context, int, time.Duration, error) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	packHooks PackHooks = NoopPackHooks{}
	httpHooks HTTPHooks = NoopHTTPHooks{}
	hooksMu   sync.RWMutex
)

// SetPackHooks registers custom pack hooks. Nil is ignored.
func SetPackHooks(h PackHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		packHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks. Nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Pack returns the registered pack hooks.
func Pack() PackHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return packHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	packHooks = NoopPackHooks{}
	httpHooks = NoopHTTPHooks{}
}
