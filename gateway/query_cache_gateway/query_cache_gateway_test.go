package query_cache_gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"plugin-browser/domain"
	"plugin-browser/driver/memory_kv"
	"plugin-browser/driver/redis_kv"
	"plugin-browser/mocks"
	"plugin-browser/utils/cache_key"
)

func sampleResponse(slugs ...string) *domain.CatalogResponse {
	resp := &domain.CatalogResponse{Plugins: []domain.CatalogItem{}, Info: domain.CatalogInfo{Results: 250}}
	for _, s := range slugs {
		resp.Plugins = append(resp.Plugins, domain.CatalogItem{Slug: s, Name: s, Rating: 90})
	}
	return resp
}

func keyFor(page int) string {
	return cache_key.Build(domain.Query{Browse: domain.BrowsePopular, PerPage: 2, Page: page})
}

func TestQueryCacheGateway_RoundTripRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	store, err := redis_kv.NewRedisKVWithURL("redis://" + mr.Addr())
	require.NoError(t, err)
	gw := NewQueryCacheGateway(store)
	ctx := context.Background()

	_, ok, err := gw.Get(ctx, keyFor(1))
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, gw.Put(ctx, keyFor(1), sampleResponse("a", "b"), domain.QueryCacheTTL))

	got, ok, err := gw.Get(ctx, keyFor(1))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sampleResponse("a", "b"), got)

	assert.Equal(t, domain.QueryCacheTTL, mr.TTL(keyFor(1)))

	mr.FastForward(domain.QueryCacheTTL + time.Second)
	_, ok, err = gw.Get(ctx, keyFor(1))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestQueryCacheGateway_ClearNamespaceLeavesOtherKeys(t *testing.T) {
	mr := miniredis.RunT(t)
	store, err := redis_kv.NewRedisKVWithURL("redis://" + mr.Addr())
	require.NoError(t, err)
	gw := NewQueryCacheGateway(store)
	ctx := context.Background()

	for page := 1; page <= 3; page++ {
		require.NoError(t, gw.Put(ctx, keyFor(page), sampleResponse("a"), domain.QueryCacheTTL))
	}
	require.NoError(t, mr.Set("unrelated", "keep"))

	deleted, err := gw.ClearNamespace(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, deleted)
	assert.True(t, mr.Exists("unrelated"))

	deleted, err = gw.ClearNamespace(ctx)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestQueryCacheGateway_ListMemory(t *testing.T) {
	gw := NewQueryCacheGateway(memory_kv.NewMemoryKV(16, time.Hour))
	ctx := context.Background()

	require.NoError(t, gw.Put(ctx, keyFor(1), sampleResponse("a", "b"), domain.QueryCacheTTL))
	require.NoError(t, gw.Put(ctx, keyFor(2), sampleResponse("c"), domain.QueryCacheTTL))

	entries, err := gw.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byKey := map[string]domain.CacheEntrySummary{}
	for _, e := range entries {
		byKey[e.Key] = e
		assert.Equal(t, 250, e.Results)
		assert.Greater(t, e.TTL, 59*time.Minute)
	}
	assert.Equal(t, 2, byKey[keyFor(1)].Items)
	assert.Equal(t, 1, byKey[keyFor(2)].Items)
}

func TestQueryCacheGateway_RejectsForeignKeys(t *testing.T) {
	gw := NewQueryCacheGateway(memory_kv.NewMemoryKV(4, time.Hour))
	ctx := context.Background()

	err := gw.Put(ctx, "session:abc", sampleResponse("a"), time.Hour)
	assert.ErrorIs(t, err, domain.ErrCacheKeyOutsideNS)

	_, _, err = gw.Get(ctx, "session:abc")
	assert.ErrorIs(t, err, domain.ErrCacheKeyOutsideNS)
}

func TestQueryCacheGateway_CorruptEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockKeyValueStorePort(ctrl)
	store.EXPECT().Get(gomock.Any(), keyFor(1)).Return([]byte("{not json"), true, nil)

	_, ok, err := NewQueryCacheGateway(store).Get(context.Background(), keyFor(1))
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestQueryCacheGateway_StoreErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockKeyValueStorePort(ctrl)
	boom := errors.New("connection reset")

	store.EXPECT().Keys(gomock.Any(), cache_key.Namespace).Return(nil, boom).Times(2)

	gw := NewQueryCacheGateway(store)
	_, err := gw.ClearNamespace(context.Background())
	assert.ErrorIs(t, err, boom)

	_, err = gw.List(context.Background())
	assert.ErrorIs(t, err, boom)
}
