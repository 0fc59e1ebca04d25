// Package sanitizer converts untrusted catalog payloads into display-safe
// domain values.
package sanitizer

import (
	"encoding/json"
	"sort"

	"plugin-browser/domain"
)

const (
	minRating = 0
	maxRating = 100
)

// SanitizePayload decodes each raw listing tolerantly and sanitizes it.
// Listings that are not JSON objects are dropped. The result always has a
// non-nil plugin slice.
func SanitizePayload(payload *domain.RawCatalogPayload) domain.CatalogResponse {
	resp := domain.CatalogResponse{Plugins: []domain.CatalogItem{}}
	if payload == nil {
		return resp
	}

	for _, raw := range payload.Plugins {
		var p rawPlugin
		if err := json.Unmarshal(raw, &p); err != nil {
			continue
		}
		resp.Plugins = append(resp.Plugins, fromRaw(p))
	}

	if len(payload.Info) > 0 {
		var info rawInfo
		if err := json.Unmarshal(payload.Info, &info); err == nil && info.Results.Valid {
			resp.Info.Results = info.Results.Value
		}
	}

	return SanitizeResponse(resp)
}

// SanitizeResponse applies the field rules to an already typed response.
// It is idempotent.
func SanitizeResponse(resp domain.CatalogResponse) domain.CatalogResponse {
	out := domain.CatalogResponse{
		Plugins: make([]domain.CatalogItem, 0, len(resp.Plugins)),
		Info:    domain.CatalogInfo{Results: max(resp.Info.Results, 0)},
	}
	for _, item := range resp.Plugins {
		out.Plugins = append(out.Plugins, SanitizeItem(item))
	}
	return out
}

// SanitizeItem cleans every text field, drops invalid URLs and clamps the
// numeric fields.
func SanitizeItem(item domain.CatalogItem) domain.CatalogItem {
	out := domain.CatalogItem{
		Slug:             CleanText(item.Slug),
		Name:             CleanText(item.Name),
		Version:          CleanText(item.Version),
		Author:           CleanText(item.Author),
		AuthorProfile:    CleanURL(item.AuthorProfile),
		Requires:         CleanText(item.Requires),
		Tested:           CleanText(item.Tested),
		RequiresPHP:      CleanText(item.RequiresPHP),
		LastUpdated:      CleanText(item.LastUpdated),
		Added:            CleanText(item.Added),
		Homepage:         CleanURL(item.Homepage),
		DownloadLink:     CleanURL(item.DownloadLink),
		ShortDescription: CleanText(item.ShortDescription),
		Rating:           min(max(item.Rating, minRating), maxRating),
		NumRatings:       max(item.NumRatings, 0),
		ActiveInstalls:   max(item.ActiveInstalls, 0),
		Icons:            cleanIcons(item.Icons),
	}
	if item.Downloaded != nil {
		d := max(*item.Downloaded, 0)
		out.Downloaded = &d
	}
	return out
}

func fromRaw(p rawPlugin) domain.CatalogItem {
	item := domain.CatalogItem{
		Slug:             p.Slug.Value,
		Name:             p.Name.Value,
		Version:          p.Version.Value,
		Author:           p.Author.Value,
		AuthorProfile:    p.AuthorProfile.Value,
		Requires:         p.Requires.Value,
		Tested:           p.Tested.Value,
		RequiresPHP:      p.RequiresPHP.Value,
		LastUpdated:      p.LastUpdated.Value,
		Added:            p.Added.Value,
		Homepage:         p.Homepage.Value,
		DownloadLink:     p.DownloadLink.Value,
		ShortDescription: p.ShortDescription.Value,
		Rating:           p.Rating.Value,
		NumRatings:       p.NumRatings.Value,
		ActiveInstalls:   p.ActiveInstalls.Value,
	}
	if p.Downloaded.Valid {
		d := p.Downloaded.Value
		item.Downloaded = &d
	}
	if len(p.Icons) > 0 {
		item.Icons = map[string]string(p.Icons)
	}
	return item
}

func cleanIcons(icons map[string]string) map[string]string {
	if len(icons) == 0 {
		return nil
	}

	keys := make([]string, 0, len(icons))
	for k := range icons {
		keys = append(keys, k)
	}
	// deterministic winner when two keys clean to the same value
	sort.Strings(keys)

	out := make(map[string]string, len(icons))
	for _, k := range keys {
		key := CleanText(k)
		if key == "" {
			continue
		}
		if _, taken := out[key]; taken {
			continue
		}
		if u := CleanURL(icons[k]); u != "" {
			out[key] = u
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
