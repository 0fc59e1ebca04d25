package catalog_port

import (
	"context"

	"plugin-browser/domain"
)

// CatalogAPIPort performs the raw HTTP exchange with the plugin directory.
// It returns the response body of a 2xx answer.
type CatalogAPIPort interface {
	QueryPlugins(ctx context.Context, q domain.Query) ([]byte, error)
}

// FetchCatalogPort returns a shape-checked upstream payload. Failures wrap
// domain.ErrUpstreamUnavailable or domain.ErrUpstreamMalformed.
type FetchCatalogPort interface {
	FetchCatalog(ctx context.Context, q domain.Query) (*domain.RawCatalogPayload, error)
}
