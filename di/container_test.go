package di

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plugin-browser/config"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Catalog.BaseURL = "http://127.0.0.1:1/plugins/info/1.2/"
	cfg.Catalog.MaxBodyBytes = 1 << 20
	cfg.Catalog.RateLimitBurst = 1
	cfg.Cache.MemoryEntries = 8
	return cfg
}

func TestNewApplicationComponents_Memory(t *testing.T) {
	c, err := NewApplicationComponents(testConfig(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	assert.Equal(t, "memory", c.StoreBackend)
	assert.NotNil(t, c.BrowseUsecase)
	assert.NotNil(t, c.CacheAdminUsecase)
	assert.NoError(t, c.Ping(context.Background()))
}

func TestNewApplicationComponents_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig()
	cfg.Cache.RedisURL = "redis://" + mr.Addr()

	c, err := NewApplicationComponents(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	assert.Equal(t, "redis", c.StoreBackend)
	assert.NoError(t, c.Ping(context.Background()))

	mr.Close()
	assert.Error(t, c.Ping(context.Background()))
}

func TestNewApplicationComponents_BadRedisURL(t *testing.T) {
	cfg := testConfig()
	cfg.Cache.RedisURL = "not-a-url://"

	_, err := NewApplicationComponents(cfg, nil)
	assert.Error(t, err)
}
