package observability

import (
	"context"
	"sync"
	"testing"
	"time"
)

type countingHooks struct {
	NoopCacheHooks
	mu   sync.Mutex
	hits map[string]int
}

func (c *countingHooks) OnCacheHit(_ context.Context, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hits[name]++
}

type resolveRecorder struct {
	NoopResolveHooks
	subjects []string
}

func (r *resolveRecorder) OnResolveComplete(_ context.Context, flow, subject string, _ int, _ time.Duration) {
	r.subjects = append(r.subjects, flow+":"+subject)
}

func TestDefaultsAreNoop(t *testing.T) {
	Reset()
	ctx := context.Background()

	if _, ok := Resolve().(NoopResolveHooks); !ok {
		t.Errorf("Resolve() = %T", Resolve())
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("Cache() = %T", Cache())
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Errorf("HTTP() = %T", HTTP())
	}

	HTTP().OnRequest(ctx, "HEAD", "www.gittip.com", "/on/github/alice/")
	HTTP().OnError(ctx, "HEAD", "www.gittip.com", "/on/github/alice/", nil)
	Cache().OnCacheSet(ctx, "gittip", 12)
}

func TestSetHooksIndependently(t *testing.T) {
	t.Cleanup(Reset)
	Reset()

	cache := &countingHooks{hits: map[string]int{}}
	rec := &resolveRecorder{}
	SetCacheHooks(cache)
	SetResolveHooks(rec)

	Cache().OnCacheHit(context.Background(), "packages")
	Cache().OnCacheHit(context.Background(), "packages")
	Resolve().OnResolveComplete(context.Background(), "npm", "express", 3, time.Millisecond)

	if cache.hits["packages"] != 2 {
		t.Errorf("hits = %v", cache.hits)
	}
	if len(rec.subjects) != 1 || rec.subjects[0] != "npm:express" {
		t.Errorf("subjects = %v", rec.subjects)
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP hooks should be untouched")
	}
}

func TestSetNilIgnored(t *testing.T) {
	t.Cleanup(Reset)
	rec := &resolveRecorder{}
	SetResolveHooks(rec)
	SetResolveHooks(nil)
	if Resolve() != rec {
		t.Error("nil should not replace installed hooks")
	}
}

func TestConcurrentSet(t *testing.T) {
	t.Cleanup(Reset)
	Reset()
	cache := &countingHooks{hits: map[string]int{}}
	rec := &resolveRecorder{}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); SetCacheHooks(cache) }()
	go func() { defer wg.Done(); SetResolveHooks(rec) }()
	wg.Wait()

	if Cache() != cache || Resolve() != rec {
		t.Error("concurrent Set calls lost an update")
	}
}
