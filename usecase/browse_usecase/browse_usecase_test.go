package browse_usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"plugin-browser/domain"
	"plugin-browser/driver/memory_kv"
	"plugin-browser/gateway/query_cache_gateway"
	"plugin-browser/mocks"
	"plugin-browser/utils/cache_key"
	appErrors "plugin-browser/utils/errors"
)

func rawPayload(n, total int) *domain.RawCatalogPayload {
	p := &domain.RawCatalogPayload{Info: []byte(fmt.Sprintf(`{"results":%d}`, total))}
	for i := range n {
		p.Plugins = append(p.Plugins, []byte(fmt.Sprintf(`{"slug":"plugin-%d","name":"Plugin &amp; %d","rating":"%d"}`, i, i, 80+i%20)))
	}
	return p
}

func params(perPage, page string) domain.RawParams {
	return domain.RawParams{Action: domain.QueryPluginsAction, Browse: "popular", PerPage: perPage, Page: page}
}

func TestBrowse_ColdThenWarmCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockFetchCatalogPort(ctrl)
	store := memory_kv.NewMemoryKV(16, 2*time.Hour)
	uc := NewBrowseUsecase(catalog, query_cache_gateway.NewQueryCacheGateway(store))
	ctx := context.Background()

	want := domain.Query{Browse: domain.BrowsePopular, PerPage: 10, Page: 1}
	catalog.EXPECT().FetchCatalog(gomock.Any(), want).Return(rawPayload(10, 500), nil).Times(1)

	first, err := uc.Browse(ctx, params("10", "1"))
	require.NoError(t, err)
	assert.Len(t, first.Plugins, 10)
	assert.Equal(t, 500, first.Info.Results)
	assert.Equal(t, "Plugin & 0", first.Plugins[0].Name)

	key := cache_key.Build(want)
	ttl, err := store.TTL(ctx, key)
	require.NoError(t, err)
	assert.InDelta(t, time.Hour.Seconds(), ttl.Seconds(), 1)

	second, err := uc.Browse(ctx, params("10", "1"))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBrowse_WritesExactlyOnceWithOneHourTTL(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockFetchCatalogPort(ctrl)
	cache := mocks.NewMockQueryCachePort(ctrl)
	uc := NewBrowseUsecase(catalog, cache)

	q := domain.Query{Browse: domain.BrowseNew, PerPage: 5, Page: 2}
	key := cache_key.Build(q)

	gomock.InOrder(
		cache.EXPECT().Get(gomock.Any(), key).Return(nil, false, nil),
		catalog.EXPECT().FetchCatalog(gomock.Any(), q).Return(rawPayload(5, 40), nil),
		cache.EXPECT().Put(gomock.Any(), key, gomock.Any(), time.Hour).Return(nil),
	)

	resp, err := uc.Browse(context.Background(), domain.RawParams{Action: "query_plugins", Browse: "new", PerPage: "5", Page: "2"})
	require.NoError(t, err)
	assert.Len(t, resp.Plugins, 5)
}

func TestBrowse_ClampsParameters(t *testing.T) {
	tests := []struct {
		name    string
		perPage string
		page    string
		want    domain.Query
	}{
		{"per_page zero", "0", "1", domain.Query{Browse: domain.BrowsePopular, PerPage: 1, Page: 1}},
		{"per_page over max", "101", "1", domain.Query{Browse: domain.BrowsePopular, PerPage: 100, Page: 1}},
		{"page zero", "10", "0", domain.Query{Browse: domain.BrowsePopular, PerPage: 10, Page: 1}},
		{"defaults", "", "", domain.Query{Browse: domain.BrowsePopular, PerPage: 100, Page: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			catalog := mocks.NewMockFetchCatalogPort(ctrl)
			cache := mocks.NewMockQueryCachePort(ctrl)

			cache.EXPECT().Get(gomock.Any(), cache_key.Build(tt.want)).Return(nil, false, nil)
			catalog.EXPECT().FetchCatalog(gomock.Any(), tt.want).Return(rawPayload(1, 1), nil)
			cache.EXPECT().Put(gomock.Any(), cache_key.Build(tt.want), gomock.Any(), time.Hour).Return(nil)

			_, err := NewBrowseUsecase(catalog, cache).Browse(context.Background(), params(tt.perPage, tt.page))
			require.NoError(t, err)
		})
	}
}

func TestBrowse_CapsItemsToPerPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockFetchCatalogPort(ctrl)
	uc := NewBrowseUsecase(catalog, query_cache_gateway.NewQueryCacheGateway(memory_kv.NewMemoryKV(4, time.Hour)))

	catalog.EXPECT().FetchCatalog(gomock.Any(), gomock.Any()).Return(rawPayload(8, 8), nil)

	resp, err := uc.Browse(context.Background(), params("3", "1"))
	require.NoError(t, err)
	assert.Len(t, resp.Plugins, 3)
	assert.Equal(t, 8, resp.Info.Results)
}

func TestBrowse_InvalidAction(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := NewBrowseUsecase(mocks.NewMockFetchCatalogPort(ctrl), mocks.NewMockQueryCachePort(ctrl))

	_, err := uc.Browse(context.Background(), domain.RawParams{Action: "plugin_information"})

	var appErr *appErrors.AppContextError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPStatusCode())
	assert.True(t, appErrors.IsInvalidAction(err))
}

func TestBrowse_UpstreamFailuresAreNotCached(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"unavailable", fmt.Errorf("dial: %w", domain.ErrUpstreamUnavailable), http.StatusServiceUnavailable},
		{"malformed", fmt.Errorf("decode: %w", domain.ErrUpstreamMalformed), http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			catalog := mocks.NewMockFetchCatalogPort(ctrl)
			cache := mocks.NewMockQueryCachePort(ctrl)

			cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, false, nil)
			catalog.EXPECT().FetchCatalog(gomock.Any(), gomock.Any()).Return(nil, tt.err)
			cache.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

			resp, err := NewBrowseUsecase(catalog, cache).Browse(context.Background(), params("10", "1"))

			assert.Nil(t, resp)
			var appErr *appErrors.AppContextError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, tt.wantStatus, appErr.HTTPStatusCode())
		})
	}
}

func TestBrowse_CacheFailuresAreNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockFetchCatalogPort(ctrl)
	cache := mocks.NewMockQueryCachePort(ctrl)

	cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, false, errors.New("redis down"))
	catalog.EXPECT().FetchCatalog(gomock.Any(), gomock.Any()).Return(rawPayload(2, 2), nil)
	cache.EXPECT().Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	resp, err := NewBrowseUsecase(catalog, cache).Browse(context.Background(), params("10", "1"))
	require.NoError(t, err)
	assert.Len(t, resp.Plugins, 2)
}

func TestBrowse_EmptyUpstreamStillHasPluginsArray(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockFetchCatalogPort(ctrl)
	uc := NewBrowseUsecase(catalog, query_cache_gateway.NewQueryCacheGateway(memory_kv.NewMemoryKV(4, time.Hour)))

	catalog.EXPECT().FetchCatalog(gomock.Any(), gomock.Any()).Return(&domain.RawCatalogPayload{}, nil)

	resp, err := uc.Browse(context.Background(), params("10", "1"))
	require.NoError(t, err)
	assert.NotNil(t, resp.Plugins)
	assert.Zero(t, resp.Info.Results)
}
