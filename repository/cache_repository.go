package repository

import "context"

// CacheRepository memoizes serialized calculation results by key.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
}
