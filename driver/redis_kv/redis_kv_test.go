package redis_kv

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKV(t *testing.T) (*RedisKV, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	kv, err := NewRedisKVWithURL("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })

	return kv, mr
}

func TestRedisKV_SetGet(t *testing.T) {
	kv, _ := newTestKV(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "plugin_browser_a", []byte(`{"x":1}`), time.Hour))

	val, ok, err := kv.Get(ctx, "plugin_browser_a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"x":1}`, string(val))

	_, ok, err = kv.Get(ctx, "plugin_browser_missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisKV_ExpiryEnforcedByStore(t *testing.T) {
	kv, mr := newTestKV(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "plugin_browser_a", []byte("v"), time.Hour))

	ttl, err := kv.TTL(ctx, "plugin_browser_a")
	require.NoError(t, err)
	assert.Equal(t, time.Hour, ttl)

	mr.FastForward(59 * time.Minute)
	_, ok, err := kv.Get(ctx, "plugin_browser_a")
	require.NoError(t, err)
	assert.True(t, ok)

	mr.FastForward(2 * time.Minute)
	_, ok, err = kv.Get(ctx, "plugin_browser_a")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisKV_TTLMissingAndPersistent(t *testing.T) {
	kv, mr := newTestKV(t)
	ctx := context.Background()

	ttl, err := kv.TTL(ctx, "nope")
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), ttl)

	require.NoError(t, mr.Set("forever", "v"))
	ttl, err = kv.TTL(ctx, "forever")
	require.NoError(t, err)
	assert.Equal(t, time.Duration(-1), ttl)
}

func TestRedisKV_KeysAndDeleteOnlyTouchPrefix(t *testing.T) {
	kv, mr := newTestKV(t)
	ctx := context.Background()

	for i := range 450 {
		require.NoError(t, kv.Set(ctx, fmt.Sprintf("plugin_browser_%03d", i), []byte("v"), time.Hour))
	}
	require.NoError(t, mr.Set("session:abc", "keep"))
	require.NoError(t, mr.Set("plugin_browserX", "keep"))

	keys, err := kv.Keys(ctx, "plugin_browser_")
	require.NoError(t, err)
	assert.Len(t, keys, 450)

	deleted, err := kv.Delete(ctx, keys...)
	require.NoError(t, err)
	assert.Equal(t, 450, deleted)

	assert.True(t, mr.Exists("session:abc"))
	assert.True(t, mr.Exists("plugin_browserX"))
}

func TestRedisKV_Errors(t *testing.T) {
	kv, mr := newTestKV(t)
	ctx := context.Background()

	require.NoError(t, kv.Ping(ctx))

	mr.SetError("ERR injected failure")
	_, _, err := kv.Get(ctx, "k")
	assert.Error(t, err)
	assert.Error(t, kv.Ping(ctx))
	mr.SetError("")

	assert.NoError(t, kv.Ping(ctx))
}

func TestEscapeGlob(t *testing.T) {
	assert.Equal(t, `a\*b\?c\[d\]`, escapeGlob("a*b?c[d]"))
	assert.Equal(t, "plugin_browser_", escapeGlob("plugin_browser_"))
}

func TestNewRedisKVWithURL_Invalid(t *testing.T) {
	_, err := NewRedisKVWithURL("http://not-redis")
	assert.Error(t, err)
}
