// Package cache provides the response cache tier that sits beneath the
// in-process memo layer.
//
// Upstream responses (registry metadata, collaborator lists, funding probes)
// can be stored here so that restarts and replicas share work. The tier is
// optional: [NullCache] keeps the service purely in-process.
//
// # Backends
//
//   - [NullCache]: never stores anything (default)
//   - [FileCache]: one JSON file per key under a directory, for CLI use
//   - [RedisCache]: shared cache for multiple server instances
//   - [MongoCache]: shared cache backed by a TTL-indexed collection
//
// All backends store opaque bytes with a per-entry TTL. A TTL of 0 means the
// entry never expires.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values by key.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key for ttl; ttl <= 0 stores it without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Backend names accepted by configuration.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Backends lists the valid backend names.
var Backends = []string{BackendNone, BackendFile, BackendRedis, BackendMongo}

// Namespaced wraps c so that every key is prefixed with prefix.
func Namespaced(c Cache, prefix string) Cache {
	if c == nil {
		c = NewNullCache()
	}
	return &namespaced{inner: c, prefix: prefix}
}

type namespaced struct {
	inner  Cache
	prefix string
}

func (n *namespaced) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return n.inner.Get(ctx, n.prefix+key)
}

func (n *namespaced) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return n.inner.Set(ctx, n.prefix+key, data, ttl)
}

func (n *namespaced) Delete(ctx context.Context, key string) error {
	return n.inner.Delete(ctx, n.prefix+key)
}

func (n *namespaced) Close() error { return n.inner.Close() }
