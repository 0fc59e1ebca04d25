// Package cache_key derives deterministic cache keys for browse queries.
package cache_key

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strconv"
	"strings"

	"plugin-browser/domain"
)

// Namespace prefixes every key the query cache writes.
const Namespace = "plugin_browser_"

// KeyLength is len(Namespace) plus a hex-encoded SHA-256 digest.
const KeyLength = len(Namespace) + sha256.Size*2

// Build returns the cache key for q. Fields are serialized in a fixed order
// and search is omitted when empty, so equal queries yield equal keys.
func Build(q domain.Query) string {
	sum := sha256.Sum256([]byte(canonical(q)))
	return Namespace + hex.EncodeToString(sum[:])
}

// InNamespace reports whether key belongs to the query cache.
func InNamespace(key string) bool {
	return strings.HasPrefix(key, Namespace) && len(key) > len(Namespace)
}

func canonical(q domain.Query) string {
	var b strings.Builder
	if q.Search != "" {
		b.WriteString("search=")
		b.WriteString(url.QueryEscape(q.Search))
		b.WriteByte('&')
	}
	b.WriteString("browse=")
	b.WriteString(url.QueryEscape(q.Browse.String()))
	b.WriteString("&per_page=")
	b.WriteString(strconv.Itoa(q.PerPage))
	b.WriteString("&page=")
	b.WriteString(strconv.Itoa(q.Page))
	return b.String()
}
