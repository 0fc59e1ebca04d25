// Package redis_kv implements the query cache's key-value store on Redis.
package redis_kv

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	scanCount   = 200
	deleteBatch = 500
)

// RedisKV stores cache entries as plain Redis strings with native expiry.
type RedisKV struct {
	client *redis.Client
}

// NewRedisKVWithURL connects using a redis:// or rediss:// URL.
func NewRedisKVWithURL(rawURL string) (*RedisKV, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, err
	}
	return &RedisKV{client: redis.NewClient(opts)}, nil
}

// NewRedisKV wraps an existing client.
func NewRedisKV(client *redis.Client) *RedisKV {
	return &RedisKV{client: client}
}

func (d *RedisKV) Close() error {
	return d.client.Close()
}

func (d *RedisKV) Ping(ctx context.Context) error {
	return d.client.Ping(ctx).Err()
}

func (d *RedisKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := d.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (d *RedisKV) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return d.client.Set(ctx, key, value, ttl).Err()
}

// Keys walks the keyspace with SCAN and returns every key under prefix.
func (d *RedisKV) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	iter := d.client.Scan(ctx, 0, escapeGlob(prefix)+"*", scanCount).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

// Delete removes keys in batches and returns how many existed.
func (d *RedisKV) Delete(ctx context.Context, keys ...string) (int, error) {
	deleted := 0
	for start := 0; start < len(keys); start += deleteBatch {
		end := min(start+deleteBatch, len(keys))
		n, err := d.client.Del(ctx, keys[start:end]...).Result()
		deleted += int(n)
		if err != nil {
			return deleted, err
		}
	}
	return deleted, nil
}

// TTL returns the remaining lifetime of key, 0 when it does not exist and
// -1 when it never expires.
func (d *RedisKV) TTL(ctx context.Context, key string) (time.Duration, error) {
	ttl, err := d.client.TTL(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	switch ttl {
	case -2:
		return 0, nil
	case -1:
		return -1, nil
	default:
		return ttl, nil
	}
}

func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
