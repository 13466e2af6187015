package xcache

import (
	"time"

	"github.com/eko/gocache/lib/v4/store"
)

// Option adjusts a single cache write.
type Option = store.Option

// WithExpiration overrides the cache-level TTL for one Set, letting the
// conversation store refresh a thread's lifetime on every append.
func WithExpiration(expiration time.Duration) Option {
	return store.WithExpiration(expiration)
}
