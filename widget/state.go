package widget

import "plugin-browser/domain"

const (
	DefaultPageSize = 12

	// previewOnlyFactor over-fetches while the preview filter is on, since
	// many listings have no screenshots.
	previewOnlyFactor = 3
)

// State is a snapshot of one controller. Items are slug-unique.
type State struct {
	// CurrentPage counts pages at the current request size. It is 0 when
	// enabling the preview filter left less than one larger page loaded.
	CurrentPage  int
	PageSize     int
	SortMode     domain.BrowseMode
	Search       string
	PreviewOnly  bool
	Items        []domain.CatalogItem
	TotalMatches int
	HasMorePages bool
	Loading      bool

	// Err is set after a failed fetch until the next successful one.
	Err *BrowseError

	PreviewAvailability map[string]bool
}

type browseState struct {
	page         int
	pageSize     int
	sortMode     domain.BrowseMode
	search       string
	previewOnly  bool
	items        []domain.CatalogItem
	slugs        map[string]struct{}
	totalMatches int
	hasMorePages bool
}

func (s *browseState) resetResults() {
	s.page = 1
	s.items = nil
	s.slugs = make(map[string]struct{})
	s.totalMatches = 0
	s.hasMorePages = false
}

// requestSize is the per_page sent upstream.
func (s *browseState) requestSize() int {
	if s.previewOnly {
		return min(s.pageSize*previewOnlyFactor, domain.MaxPerPage)
	}
	return s.pageSize
}

// merge adds items, skipping slugs already present. Replace mode starts from
// an empty set.
func (s *browseState) merge(items []domain.CatalogItem, appendMode bool) {
	if !appendMode {
		s.items = nil
		s.slugs = make(map[string]struct{}, len(items))
	}
	for _, item := range items {
		if item.Slug == "" {
			continue
		}
		if _, dup := s.slugs[item.Slug]; dup {
			continue
		}
		s.slugs[item.Slug] = struct{}{}
		s.items = append(s.items, item)
	}
}

func (s *browseState) replaceItems(items []domain.CatalogItem) {
	s.items = nil
	s.slugs = make(map[string]struct{}, len(items))
	s.merge(items, true)
}
