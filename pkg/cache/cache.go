// Package cache stores rendered artifacts so repeated renders of the same
// layout and view skip the renderer.
//
// Three backends implement [Cache]:
//   - [FileCache]: sharded files under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP service
//   - [NullCache]: stores nothing, for --no-cache
//
// Keys come from a [Keyer]; wrap one in a [ScopedKeyer] to separate
// namespaces that share a backend.
package cache

import (
	"context"
	"time"

	"github.com/matzehuels/kintree/pkg/errors"
)

// Cache is a byte store with per-entry expiry. Get reports a miss with
// ok=false and a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Backend names accepted by [Open].
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Options selects and configures a backend.
type Options struct {
	Backend  string // file, redis or none; empty means file
	Dir      string // FileCache directory
	RedisURL string // redis://[user:pass@]host:port/db
}

// Open creates the cache backend named by opts.Backend.
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Backend {
	case BackendFile, "":
		if opts.Dir == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "file cache requires a directory")
		}
		fc, err := NewFileCache(opts.Dir)
		if err != nil {
			return nil, err
		}
		return fc, nil
	case BackendRedis:
		rc, err := NewRedisCache(ctx, opts.RedisURL)
		if err != nil {
			return nil, err
		}
		return rc, nil
	case BackendNone:
		return NewNullCache(), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (must be one of: file, redis, none)", opts.Backend)
	}
}
