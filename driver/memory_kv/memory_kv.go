// Package memory_kv is an in-process key-value store for running the proxy
// without Redis.
package memory_kv

import (
	"context"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryKV is a size-bounded LRU whose entries also carry their own expiry.
// maxTTL caps every entry's lifetime and drives background eviction.
type MemoryKV struct {
	lru *expirable.LRU[string, entry]
	now func() time.Time
}

func NewMemoryKV(size int, maxTTL time.Duration) *MemoryKV {
	return &MemoryKV{
		lru: expirable.NewLRU[string, entry](size, nil, maxTTL),
		now: time.Now,
	}
}

func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	e, ok := m.lru.Get(key)
	if !ok {
		return nil, false, nil
	}
	if m.expired(e) {
		m.lru.Remove(key)
		return nil, false, nil
	}
	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, true, nil
}

// Set stores a copy of value. A non-positive ttl means no per-entry expiry.
func (m *MemoryKV) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	e := entry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}
	m.lru.Add(key, e)
	return nil
}

func (m *MemoryKV) Keys(_ context.Context, prefix string) ([]string, error) {
	var keys []string
	for _, k := range m.lru.Keys() {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		if e, ok := m.lru.Peek(k); ok && !m.expired(e) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func (m *MemoryKV) Delete(_ context.Context, keys ...string) (int, error) {
	deleted := 0
	for _, k := range keys {
		if m.lru.Remove(k) {
			deleted++
		}
	}
	return deleted, nil
}

// TTL follows the Redis driver: 0 when missing, -1 when persistent.
func (m *MemoryKV) TTL(_ context.Context, key string) (time.Duration, error) {
	e, ok := m.lru.Peek(key)
	if !ok || m.expired(e) {
		return 0, nil
	}
	if e.expiresAt.IsZero() {
		return -1, nil
	}
	return e.expiresAt.Sub(m.now()), nil
}

func (m *MemoryKV) expired(e entry) bool {
	return !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt)
}
