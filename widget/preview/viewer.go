package preview

import (
	"errors"

	"plugin-browser/domain"
)

var ErrNoPreviews = errors.New("item has no preview images")

// Viewer pages through one item's preview images, wrapping at both ends.
type Viewer struct {
	slug   string
	images []string
	index  int
}

// Open shows item's previews starting at start, which wraps into range.
// Items without PreviewImages fall back to the URL pattern for their slug.
func (v *Viewer) Open(item domain.CatalogItem, start int) error {
	images := item.PreviewImages
	if len(images) == 0 {
		images = CandidateURLs(item.Slug)
	}
	if len(images) == 0 {
		return ErrNoPreviews
	}

	v.slug = item.Slug
	v.images = append([]string(nil), images...)
	v.index = wrap(start, len(v.images))
	return nil
}

func (v *Viewer) Close() {
	v.slug, v.images, v.index = "", nil, 0
}

func (v *Viewer) IsOpen() bool { return len(v.images) > 0 }

func (v *Viewer) Slug() string { return v.slug }

// Current returns the image on display, or "" when closed.
func (v *Viewer) Current() string {
	if !v.IsOpen() {
		return ""
	}
	return v.images[v.index]
}

func (v *Viewer) Next() string {
	if v.HasNavigation() {
		v.index = wrap(v.index+1, len(v.images))
	}
	return v.Current()
}

func (v *Viewer) Prev() string {
	if v.HasNavigation() {
		v.index = wrap(v.index-1, len(v.images))
	}
	return v.Current()
}

// HasNavigation is false when there is nothing to step to.
func (v *Viewer) HasNavigation() bool { return len(v.images) > 1 }

// Position returns the 1-based index on display and the image count.
func (v *Viewer) Position() (int, int) {
	if !v.IsOpen() {
		return 0, 0
	}
	return v.index + 1, len(v.images)
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}
