// Package memo provides a concurrency-safe memoizer with single-flight
// semantics.
//
// A [Memo] maps keys to the outcome of one lookup. The first call for a key
// starts the lookup; every concurrent or later call for the same key waits for
// that same lookup and observes its value. Lookups are never repeated and
// entries are never evicted, so memory grows with the number of distinct keys
// for the lifetime of the Memo. Callers that need expiry should put a
// TTL-bounded store (see package cache) underneath the lookup function.
//
// Composite keys use a comparable struct and a Memo of their own:
//
//	type repoKey struct{ Owner, Name string }
//	repos := memo.New[repoKey, []string]("repos")
//	logins, err := repos.Do(ctx, repoKey{"expressjs", "express"}, fetch)
package memo

import (
	"context"
	"sync"

	"github.com/matzehuels/tipjar/pkg/observability"
)

// Func computes the value for one key. It receives a context that carries the
// first caller's values but not its cancellation.
type Func[V any] func(ctx context.Context) V

// Memo memoizes lookups keyed by K. The zero value is not usable; call [New].
type Memo[K comparable, V any] struct {
	name    string
	mu      sync.Mutex
	entries map[K]*entry[V]
}

type entry[V any] struct {
	done chan struct{}
	val  V
}

// New creates an empty Memo. name identifies it in observability events.
func New[K comparable, V any](name string) *Memo[K, V] {
	return &Memo[K, V]{
		name:    name,
		entries: make(map[K]*entry[V]),
	}
}

// Do returns the memoized value for key, running fn at most once per key.
//
// The lookup runs in its own goroutine on a context detached from the
// caller's cancellation, so a caller that gives up does not abort the lookup
// for others. If ctx ends before the value is ready, Do returns the zero
// value and ctx.Err(); the lookup still completes and is memoized.
func (m *Memo[K, V]) Do(ctx context.Context, key K, fn Func[V]) (V, error) {
	m.mu.Lock()
	e, ok := m.entries[key]
	if !ok {
		e = &entry[V]{done: make(chan struct{})}
		m.entries[key] = e
	}
	m.mu.Unlock()

	if ok {
		observability.Cache().OnCacheHit(ctx, m.name)
	} else {
		observability.Cache().OnCacheMiss(ctx, m.name)
		detached := context.WithoutCancel(ctx)
		go func() {
			defer close(e.done)
			e.val = fn(detached)
			observability.Cache().OnCacheSet(detached, m.name, 1)
		}()
	}

	select {
	case <-e.done:
		return e.val, nil
	case <-ctx.Done():
		var zero V
		return zero, ctx.Err()
	}
}

// Peek returns the value for key if its lookup has completed.
func (m *Memo[K, V]) Peek(key K) (V, bool) {
	m.mu.Lock()
	e, ok := m.entries[key]
	m.mu.Unlock()
	if ok {
		select {
		case <-e.done:
			return e.val, true
		default:
		}
	}
	var zero V
	return zero, false
}

// Len returns the number of keys, including lookups still in flight.
func (m *Memo[K, V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Name returns the name given to [New].
func (m *Memo[K, V]) Name() string {
	return m.name
}
