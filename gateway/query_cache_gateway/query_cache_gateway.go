package query_cache_gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"plugin-browser/domain"
	"plugin-browser/port/query_cache_port"
	"plugin-browser/utils/cache_key"
	"plugin-browser/utils/logger"
)

// QueryCacheGateway stores browse responses as JSON under the cache
// namespace. Keys outside the namespace are never read or written.
type QueryCacheGateway struct {
	store query_cache_port.KeyValueStorePort
}

func NewQueryCacheGateway(store query_cache_port.KeyValueStorePort) *QueryCacheGateway {
	return &QueryCacheGateway{store: store}
}

func (g *QueryCacheGateway) Get(ctx context.Context, key string) (*domain.CatalogResponse, bool, error) {
	if !cache_key.InNamespace(key) {
		return nil, false, fmt.Errorf("%w: %q", domain.ErrCacheKeyOutsideNS, key)
	}

	raw, ok, err := g.store.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}

	var resp domain.CatalogResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, false, fmt.Errorf("corrupt cache entry %s: %w", key, err)
	}
	if resp.Plugins == nil {
		resp.Plugins = []domain.CatalogItem{}
	}
	return &resp, true, nil
}

func (g *QueryCacheGateway) Put(ctx context.Context, key string, resp *domain.CatalogResponse, ttl time.Duration) error {
	if !cache_key.InNamespace(key) {
		return fmt.Errorf("%w: %q", domain.ErrCacheKeyOutsideNS, key)
	}
	if resp == nil {
		return fmt.Errorf("nil response for key %s", key)
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	return g.store.Set(ctx, key, raw, ttl)
}

// ClearNamespace deletes every entry under the namespace and returns how
// many were removed.
func (g *QueryCacheGateway) ClearNamespace(ctx context.Context) (int, error) {
	keys, err := g.store.Keys(ctx, cache_key.Namespace)
	if err != nil {
		return 0, fmt.Errorf("list cache keys: %w", err)
	}
	if len(keys) == 0 {
		return 0, nil
	}
	return g.store.Delete(ctx, keys...)
}

// List summarizes every live entry, sorted by key. Entries that vanish or
// fail to decode between listing and reading are skipped.
func (g *QueryCacheGateway) List(ctx context.Context) ([]domain.CacheEntrySummary, error) {
	keys, err := g.store.Keys(ctx, cache_key.Namespace)
	if err != nil {
		return nil, fmt.Errorf("list cache keys: %w", err)
	}
	sort.Strings(keys)

	log := logger.GlobalContext.WithContext(ctx)
	summaries := make([]domain.CacheEntrySummary, 0, len(keys))
	for _, key := range keys {
		resp, ok, err := g.Get(ctx, key)
		if err != nil {
			log.WarnContext(ctx, "skipping unreadable cache entry", "key", key, "error", err)
			continue
		}
		if !ok {
			continue
		}

		ttl, err := g.store.TTL(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("read ttl for %s: %w", key, err)
		}

		summaries = append(summaries, domain.CacheEntrySummary{
			Key:     key,
			Items:   len(resp.Plugins),
			Results: resp.Info.Results,
			TTL:     ttl,
		})
	}
	return summaries, nil
}
