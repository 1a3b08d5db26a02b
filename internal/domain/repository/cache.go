package repository

import (
	"context"
	"time"
)

// Cache defines a byte-value cache with TTL, used to absorb duplicate
// provider fetches from overlapping polling ticks.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Close() error
}
