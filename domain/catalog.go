package domain

import "time"

// CatalogItem is the sanitized view of one plugin listing.
type CatalogItem struct {
	Slug             string            `json:"slug"`
	Name             string            `json:"name"`
	Version          string            `json:"version,omitempty"`
	Author           string            `json:"author,omitempty"`
	AuthorProfile    string            `json:"author_profile,omitempty"`
	Requires         string            `json:"requires,omitempty"`
	Tested           string            `json:"tested,omitempty"`
	RequiresPHP      string            `json:"requires_php,omitempty"`
	LastUpdated      string            `json:"last_updated,omitempty"`
	Added            string            `json:"added,omitempty"`
	Homepage         string            `json:"homepage,omitempty"`
	DownloadLink     string            `json:"download_link,omitempty"`
	ShortDescription string            `json:"short_description"`
	Rating           int               `json:"rating"`
	NumRatings       int               `json:"num_ratings"`
	ActiveInstalls   int               `json:"active_installs"`
	Downloaded       *int              `json:"downloaded,omitempty"`
	Icons            map[string]string `json:"icons,omitempty"`

	// PreviewImages is filled in by clients and never serialized.
	PreviewImages []string `json:"-"`
}

// CatalogInfo holds the upstream-reported total match count.
type CatalogInfo struct {
	Results int `json:"results"`
}

// CatalogResponse is what the browse endpoint returns and caches.
type CatalogResponse struct {
	Plugins []CatalogItem `json:"plugins"`
	Info    CatalogInfo   `json:"info"`
}

// RawCatalogPayload is an upstream body whose top-level shape has been
// verified but whose items have not been decoded yet.
type RawCatalogPayload struct {
	Plugins [][]byte
	Info    []byte
}

// BrowseRequest is what a client sends to the browse endpoint.
type BrowseRequest struct {
	Search  string
	Browse  BrowseMode
	PerPage int
	Page    int
}

const (
	// QueryCacheTTL is the lifetime of every cached browse response.
	QueryCacheTTL = time.Hour
)

// CacheEntrySummary describes one cached browse response for introspection.
type CacheEntrySummary struct {
	Key     string        `json:"key"`
	Items   int           `json:"items"`
	Results int           `json:"results"`
	TTL     time.Duration `json:"-"`
}
