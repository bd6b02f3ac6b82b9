package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// ResolveHooks receives events from the funding resolution flows.
// flow is "npm" or "github"; subject is the package name or "owner/repo".
type ResolveHooks interface {
	OnResolveStart(ctx context.Context, flow, subject string)
	OnResolveComplete(ctx context.Context, flow, subject string, users int, duration time.Duration)
}

// CacheHooks receives memo and response cache events. name identifies the
// cache, e.g. "packages" or "gittip". A join on an in-flight lookup counts
// as a hit.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, name string)
	OnCacheMiss(ctx context.Context, name string)
	OnCacheSet(ctx context.Context, name string, size int)
}

// HTTPHooks receives events for outbound upstream requests.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)
	// OnError fires for transport failures; error statuses go to OnResponse.
	OnError(ctx context.Context, method, host, path string, err error)
}

type NoopResolveHooks struct{}

func (NoopResolveHooks) OnResolveStart(context.Context, string, string)                          {}
func (NoopResolveHooks) OnResolveComplete(context.Context, string, string, int, time.Duration) {}

type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// registry is replaced wholesale on every Set call so readers never lock.
type registry struct {
	resolve ResolveHooks
	cache   CacheHooks
	http    HTTPHooks
}

var current atomic.Pointer[registry]

func init() { Reset() }

func update(f func(r *registry)) {
	for {
		old := current.Load()
		next := *old
		f(&next)
		if current.CompareAndSwap(old, &next) {
			return
		}
	}
}

// SetResolveHooks installs h. A nil h is ignored.
func SetResolveHooks(h ResolveHooks) {
	if h != nil {
		update(func(r *registry) { r.resolve = h })
	}
}

// SetCacheHooks installs h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(r *registry) { r.cache = h })
	}
}

// SetHTTPHooks installs h. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		update(func(r *registry) { r.http = h })
	}
}

func Resolve() ResolveHooks { return current.Load().resolve }
func Cache() CacheHooks     { return current.Load().cache }
func HTTP() HTTPHooks       { return current.Load().http }

// Reset restores every hook to its no-op default.
func Reset() {
	current.Store(&registry{
		resolve: NoopResolveHooks{},
		cache:   NoopCacheHooks{},
		http:    NoopHTTPHooks{},
	})
}
