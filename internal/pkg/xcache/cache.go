// Package xcache provides a typed key-value cache over eko/gocache with
// memory and redis backends. Values are stored as JSON so the same type
// round-trips through either backend.
package xcache

import (
	"context"
	"errors"
	"fmt"
	"time"

	cachelib "github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	gocache_store "github.com/eko/gocache/store/go_cache/v4"
	gocache "github.com/patrickmn/go-cache"
	redis "github.com/redis/go-redis/v9"

	"github.com/neuromux/neuromux/internal/log"
	redis_store "github.com/neuromux/neuromux/internal/pkg/xcache/redis"
	"github.com/neuromux/neuromux/internal/pkg/xredis"
)

// Cache is an alias to the gocache CacheInterface:
//   - Get(ctx, key) (T, error)
//   - Set(ctx, key, value, options ...Option) error
//   - Delete(ctx, key) error
//   - Clear(ctx) error
//   - GetType() string
type Cache[T any] = cachelib.CacheInterface[T]

type SetterCache[T any] = cachelib.SetterCacheInterface[T]

// IsNotFound reports whether err is a cache miss, regardless of backend.
func IsNotFound(err error) bool {
	var nf *store.NotFound
	return errors.As(err, &nf)
}

// NewMemory creates an in-memory cache backed by patrickmn/go-cache.
// Per-entry TTL is controlled with WithExpiration at Set time.
func NewMemory[T any](client *gocache.Cache, options ...Option) SetterCache[T] {
	st := gocache_store.NewGoCache(client, options...)
	return cachelib.New[T](st)
}

// NewMemoryWithOptions builds the go-cache client for you.
func NewMemoryWithOptions[T any](defaultExpiration, cleanupInterval time.Duration, options ...Option) SetterCache[T] {
	client := gocache.New(defaultExpiration, cleanupInterval)
	return NewMemory[T](client, options...)
}

// NewRedis creates a redis-backed cache using go-redis/v9.
func NewRedis[T any](client *redis.Client, options ...Option) SetterCache[T] {
	st := redis_store.NewRedisStore[T](client, options...)
	return cachelib.New[T](st)
}

// NewFromConfig builds a typed cache from the given Config. Empty or
// unrecognized modes fall back to memory, so the process always has a
// working store. Redis mode fails hard when the backend is unreachable.
func NewFromConfig[T any](ctx context.Context, cfg Config) (Cache[T], error) {
	switch cfg.Mode {
	case ModeRedis:
		client, err := xredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}

		log.Info(ctx, "using redis cache", log.String("addr", cfg.Redis.Addr))

		return NewRedis[T](client), nil
	case ModeMemory, "":
		log.Info(ctx, "using memory cache")
	default:
		log.Warn(ctx, "unknown cache mode, using memory cache", log.String("mode", cfg.Mode))
	}

	expiration := defaultIfZero(cfg.Memory.Expiration, 5*time.Minute)
	cleanup := defaultIfZero(cfg.Memory.CleanupInterval, 10*time.Minute)

	return NewMemoryWithOptions[T](expiration, cleanup), nil
}

func defaultIfZero(d, def time.Duration) time.Duration {
	if d == 0 {
		return def
	}

	return d
}
