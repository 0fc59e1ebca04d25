// Package preview guesses and verifies screenshot URLs for catalog items and
// steps through them in a viewer.
//
// The catalog does not list screenshots in browse results, so candidates are
// built from the asset host's URL pattern. Whether a candidate exists is only
// known after probing it, and a slow asset host produces false negatives.
package preview

import (
	"fmt"
	"net/url"
)

const (
	AssetHost = "https://ps.w.org"

	// MaxCandidates is the highest screenshot index tried per item.
	MaxCandidates = 10
)

// CandidateURLs returns screenshot-1.png through screenshot-10.png for slug,
// in order. An empty slug has no candidates.
func CandidateURLs(slug string) []string {
	if slug == "" {
		return nil
	}
	escaped := url.PathEscape(slug)
	urls := make([]string, 0, MaxCandidates)
	for n := 1; n <= MaxCandidates; n++ {
		urls = append(urls, fmt.Sprintf("%s/%s/assets/screenshot-%d.png", AssetHost, escaped, n))
	}
	return urls
}
