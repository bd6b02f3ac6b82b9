package cache

import (
	"context"
	"fmt"
)

// Options selects and configures a backend for [Open].
type Options struct {
	Backend string // one of Backends; empty means BackendNone
	Dir     string // FileCache directory
	Redis   RedisOptions
	Mongo   MongoOptions
}

// Open constructs the backend named by opts.Backend.
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Backend {
	case "", BackendNone:
		return NewNullCache(), nil
	case BackendFile:
		if opts.Dir == "" {
			return nil, fmt.Errorf("file cache: directory is required")
		}
		return NewFileCache(opts.Dir)
	case BackendRedis:
		return NewRedisCache(ctx, opts.Redis)
	case BackendMongo:
		return NewMongoCache(ctx, opts.Mongo)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", opts.Backend)
	}
}
