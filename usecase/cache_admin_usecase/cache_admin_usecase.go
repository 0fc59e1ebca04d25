package cache_admin_usecase

import (
	"context"

	"plugin-browser/domain"
	"plugin-browser/metrics"
	"plugin-browser/port/query_cache_port"
	appErrors "plugin-browser/utils/errors"
	"plugin-browser/utils/logger"
)

type CacheAdminUsecase struct {
	cache query_cache_port.QueryCachePort
}

func NewCacheAdminUsecase(cache query_cache_port.QueryCachePort) *CacheAdminUsecase {
	return &CacheAdminUsecase{cache: cache}
}

// ClearCache removes every entry in the query cache namespace and returns
// how many were deleted.
func (u *CacheAdminUsecase) ClearCache(ctx context.Context) (int, error) {
	ctx = logger.WithOperation(ctx, "cache_clear")
	deleted, err := u.cache.ClearNamespace(ctx)
	if err != nil {
		return 0, appErrors.NewCacheError("failed to clear query cache", "usecase", "CacheAdminUsecase", "ClearCache", err, nil)
	}

	metrics.RecordCacheCleared(deleted)
	logger.GlobalContext.WithContext(ctx).InfoContext(ctx, "query cache cleared", "deleted", deleted)
	return deleted, nil
}

func (u *CacheAdminUsecase) ListEntries(ctx context.Context) ([]domain.CacheEntrySummary, error) {
	entries, err := u.cache.List(ctx)
	if err != nil {
		return nil, appErrors.NewCacheError("failed to list query cache", "usecase", "CacheAdminUsecase", "ListEntries", err, nil)
	}
	if entries == nil {
		entries = []domain.CacheEntrySummary{}
	}
	return entries, nil
}
