package preview

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"plugin-browser/domain"
	"plugin-browser/port/preview_probe_port"
)

const (
	DefaultProbeTimeout = 2 * time.Second
	DefaultBatchSize    = 3
	DefaultBatchPause   = 100 * time.Millisecond
)

// Filter keeps the items whose first screenshot loads. Probe results are
// remembered per slug for the lifetime of the Filter.
type Filter struct {
	probe        preview_probe_port.ImageProbePort
	probeTimeout time.Duration
	batchSize    int
	batchPause   time.Duration

	mu   sync.Mutex
	memo map[string]bool
}

type FilterOption func(*Filter)

func WithProbeTimeout(d time.Duration) FilterOption {
	return func(f *Filter) { f.probeTimeout = d }
}

func WithBatchSize(n int) FilterOption {
	return func(f *Filter) {
		if n > 0 {
			f.batchSize = n
		}
	}
}

func WithBatchPause(d time.Duration) FilterOption {
	return func(f *Filter) { f.batchPause = d }
}

func NewFilter(probe preview_probe_port.ImageProbePort, opts ...FilterOption) *Filter {
	f := &Filter{
		probe:        probe,
		probeTimeout: DefaultProbeTimeout,
		batchSize:    DefaultBatchSize,
		batchPause:   DefaultBatchPause,
		memo:         make(map[string]bool),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Apply returns the items with an available preview, in input order. Items
// without a slug are dropped. Unknown slugs are probed batchSize at a time
// with a pause between batches. If ctx ends mid-pass Apply returns ctx.Err()
// and the interrupted probes are not remembered.
func (f *Filter) Apply(ctx context.Context, items []domain.CatalogItem) ([]domain.CatalogItem, error) {
	pending := f.unknown(items)

	for start := 0; start < len(pending); start += f.batchSize {
		if start > 0 && f.batchPause > 0 {
			timer := time.NewTimer(f.batchPause)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}

		end := min(start+f.batchSize, len(pending))
		if err := f.probeBatch(ctx, pending[start:end]); err != nil {
			return nil, err
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]domain.CatalogItem, 0, len(items))
	for _, item := range items {
		if item.Slug != "" && f.memo[item.Slug] {
			out = append(out, item)
		}
	}
	return out, nil
}

// Available reports the remembered result for slug.
func (f *Filter) Available(slug string) (available, known bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	available, known = f.memo[slug]
	return available, known
}

// Snapshot copies the remembered results.
func (f *Filter) Snapshot() map[string]bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]bool, len(f.memo))
	for k, v := range f.memo {
		out[k] = v
	}
	return out
}

type probeTarget struct {
	slug string
	url  string
}

func (f *Filter) unknown(items []domain.CatalogItem) []probeTarget {
	f.mu.Lock()
	defer f.mu.Unlock()

	seen := make(map[string]struct{}, len(items))
	var targets []probeTarget
	for _, item := range items {
		if item.Slug == "" {
			continue
		}
		if _, done := f.memo[item.Slug]; done {
			continue
		}
		if _, dup := seen[item.Slug]; dup {
			continue
		}
		seen[item.Slug] = struct{}{}

		candidates := item.PreviewImages
		if len(candidates) == 0 {
			candidates = CandidateURLs(item.Slug)
		}
		targets = append(targets, probeTarget{slug: item.Slug, url: candidates[0]})
	}
	return targets
}

func (f *Filter) probeBatch(ctx context.Context, batch []probeTarget) error {
	results := make([]bool, len(batch))

	var g errgroup.Group
	for i, target := range batch {
		g.Go(func() error {
			probeCtx, cancel := context.WithTimeout(ctx, f.probeTimeout)
			defer cancel()
			results[i] = f.probe.Probe(probeCtx, target.url) == nil
			return nil
		})
	}
	_ = g.Wait()

	// a cancelled parent says nothing about the images
	if err := ctx.Err(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for i, target := range batch {
		f.memo[target.slug] = results[i]
	}
	return nil
}
