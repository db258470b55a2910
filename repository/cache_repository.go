package repository

import "context"

// CacheRepository stores computed results by key. A failed or missing
// lookup reports false; callers recompute.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte) error
}
