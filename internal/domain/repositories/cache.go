package repositories

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Cache.Get when the key is absent. Any other
// error means the cache layer itself failed; callers treat both as a miss.
var ErrCacheMiss = errors.New("cache: key not found")

// Cache is the side-cache capability in front of the user store. All
// operations are best-effort from the service's point of view: faults are
// logged and swallowed, never propagated to the caller.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
