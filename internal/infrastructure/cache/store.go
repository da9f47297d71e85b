package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned when a key is absent or expired
var ErrMiss = errors.New("cache miss")

// Store is a byte-oriented cache with per-key TTL, used to keep report
// responses warm between sync runs.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// DeletePrefix invalidates every key under a prefix, used to drop all
	// cached reports for a tenant after a sync run.
	DeletePrefix(ctx context.Context, prefix string) error
}
