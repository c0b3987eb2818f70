package cache

import (
	"context"
	"time"
)

// Store holds serialized API responses with a per-entry TTL. Get never
// returns an entry past its expiry.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
