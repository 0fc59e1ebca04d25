package query_cache_port

import (
	"context"
	"time"

	"plugin-browser/domain"
)

// QueryCachePort stores sanitized browse responses by cache key.
type QueryCachePort interface {
	Get(ctx context.Context, key string) (*domain.CatalogResponse, bool, error)
	Put(ctx context.Context, key string, resp *domain.CatalogResponse, ttl time.Duration) error
	ClearNamespace(ctx context.Context) (int, error)
	List(ctx context.Context) ([]domain.CacheEntrySummary, error)
}

// KeyValueStorePort is the minimal expiring byte store the query cache sits on.
type KeyValueStorePort interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Keys(ctx context.Context, prefix string) ([]string, error)
	Delete(ctx context.Context, keys ...string) (int, error)
	TTL(ctx context.Context, key string) (time.Duration, error)
}
