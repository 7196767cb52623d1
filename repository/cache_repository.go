package repository

import (
	"context"
	"time"
)

// CacheRepository stores serialized calculation results by key.
// Get reports ok=false on a miss; err is reserved for backend failures.
type CacheRepository interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}
