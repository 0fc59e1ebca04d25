package di

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"plugin-browser/config"
	"plugin-browser/domain"
	"plugin-browser/driver/catalog_api"
	"plugin-browser/driver/memory_kv"
	"plugin-browser/driver/redis_kv"
	"plugin-browser/gateway/catalog_gateway"
	"plugin-browser/gateway/query_cache_gateway"
	"plugin-browser/port/catalog_port"
	"plugin-browser/port/query_cache_port"
	"plugin-browser/usecase/browse_usecase"
	"plugin-browser/usecase/cache_admin_usecase"
	"plugin-browser/utils/rate_limiter"
)

type ApplicationComponents struct {
	BrowseUsecase     *browse_usecase.BrowseUsecase
	CacheAdminUsecase *cache_admin_usecase.CacheAdminUsecase

	// StoreBackend is "redis" or "memory".
	StoreBackend string

	ping  func(ctx context.Context) error
	close func() error
}

// NewApplicationComponents wires the proxy. The query cache lives in Redis
// when CACHE_REDIS_URL is set and in process memory otherwise.
func NewApplicationComponents(cfg *config.Config, logger *slog.Logger) (*ApplicationComponents, error) {
	var (
		store   query_cache_port.KeyValueStorePort
		backend string
		ping    = func(context.Context) error { return nil }
		closeFn = func() error { return nil }
	)

	if cfg.Cache.RedisURL != "" {
		redisStore, err := redis_kv.NewRedisKVWithURL(cfg.Cache.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		store, backend, ping, closeFn = redisStore, "redis", redisStore.Ping, redisStore.Close
	} else {
		store, backend = memory_kv.NewMemoryKV(cfg.Cache.MemoryEntries, domain.QueryCacheTTL), "memory"
	}

	limiter := rate_limiter.NewHostRateLimiter(cfg.Catalog.RateLimitInterval, cfg.Catalog.RateLimitBurst)
	httpClient := &http.Client{Timeout: cfg.Catalog.Timeout}

	var api catalog_port.CatalogAPIPort = catalog_api.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Timeout,
		catalog_api.WithHTTPClient(httpClient),
		catalog_api.WithRateLimiter(limiter),
		catalog_api.WithMaxBodyBytes(cfg.Catalog.MaxBodyBytes),
		catalog_api.WithUserAgent(cfg.Catalog.UserAgent),
	)

	catalogGateway := catalog_gateway.NewCatalogGateway(api)
	queryCacheGateway := query_cache_gateway.NewQueryCacheGateway(store)

	if logger != nil {
		logger.Info("application components wired",
			"cache_backend", backend,
			"catalog_url", cfg.Catalog.BaseURL,
			"rate_limited", limiter.Enabled(),
		)
	}

	return &ApplicationComponents{
		BrowseUsecase:     browse_usecase.NewBrowseUsecase(catalogGateway, queryCacheGateway),
		CacheAdminUsecase: cache_admin_usecase.NewCacheAdminUsecase(queryCacheGateway),
		StoreBackend:      backend,
		ping:              ping,
		close:             closeFn,
	}, nil
}

// NewApplicationComponentsWith builds components over caller-supplied ports.
func NewApplicationComponentsWith(catalog catalog_port.FetchCatalogPort, cache query_cache_port.QueryCachePort) *ApplicationComponents {
	return &ApplicationComponents{
		BrowseUsecase:     browse_usecase.NewBrowseUsecase(catalog, cache),
		CacheAdminUsecase: cache_admin_usecase.NewCacheAdminUsecase(cache),
		StoreBackend:      "custom",
		ping:              func(context.Context) error { return nil },
		close:             func() error { return nil },
	}
}

// Ping checks the cache backend.
func (a *ApplicationComponents) Ping(ctx context.Context) error {
	return a.ping(ctx)
}

func (a *ApplicationComponents) Close() error {
	return a.close()
}
