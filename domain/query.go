package domain

import (
	"strconv"
	"strings"
)

// BrowseMode selects the catalog listing order.
type BrowseMode string

const (
	BrowsePopular BrowseMode = "popular"
	BrowseNew     BrowseMode = "new"
	BrowseUpdated BrowseMode = "updated"
)

const (
	// QueryPluginsAction is the only action the browse endpoint accepts.
	QueryPluginsAction = "query_plugins"

	DefaultPerPage = 100
	MaxPerPage     = 100
	DefaultPage    = 1
)

// ParseBrowseMode falls back to popular for empty or unknown values.
func ParseBrowseMode(s string) BrowseMode {
	switch BrowseMode(strings.ToLower(strings.TrimSpace(s))) {
	case BrowseNew:
		return BrowseNew
	case BrowseUpdated:
		return BrowseUpdated
	default:
		return BrowsePopular
	}
}

func (m BrowseMode) String() string {
	return string(m)
}

// Query is a normalized browse request. Two equal Query values always map to
// the same cache entry.
type Query struct {
	Search  string
	Browse  BrowseMode
	PerPage int
	Page    int
}

// RawParams carries the untrusted request parameters as received.
type RawParams struct {
	Action  string
	Search  string
	Browse  string
	PerPage string
	Page    string
}

// NewQuery validates the action and clamps the paging parameters.
func NewQuery(raw RawParams) (Query, error) {
	if raw.Action != QueryPluginsAction {
		return Query{}, ErrInvalidAction
	}

	return Query{
		Search:  strings.TrimSpace(raw.Search),
		Browse:  ParseBrowseMode(raw.Browse),
		PerPage: ClampPerPage(parseIntOr(raw.PerPage, DefaultPerPage)),
		Page:    ClampPage(parseIntOr(raw.Page, DefaultPage)),
	}, nil
}

func ClampPerPage(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxPerPage {
		return MaxPerPage
	}
	return n
}

func ClampPage(n int) int {
	if n < 1 {
		return DefaultPage
	}
	return n
}

func parseIntOr(s string, fallback int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
