package browse_client_port

import (
	"context"

	"plugin-browser/domain"
)

// BrowsePort is what a browse controller needs from the proxy endpoint.
type BrowsePort interface {
	Browse(ctx context.Context, req domain.BrowseRequest) (*domain.CatalogResponse, error)
}

// CacheAdminPort drives the proxy's cache admin routes.
type CacheAdminPort interface {
	ClearCache(ctx context.Context) (int, error)
	ListCache(ctx context.Context) ([]domain.CacheEntrySummary, error)
}
