// Package widget is the client side of the plugin browser: a paginated
// browse controller per widget instance and a registry holding them.
package widget

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"plugin-browser/domain"
	"plugin-browser/port/browse_client_port"
	"plugin-browser/port/preview_probe_port"
	"plugin-browser/widget/preview"
)

// ErrSuperseded is returned by an operation whose result was discarded
// because a newer operation started on the same controller.
var ErrSuperseded = errors.New("browse request superseded")

type pendingFetch struct {
	page       int
	appendMode bool
}

// Controller owns the browse state of one widget instance. Only one
// request is in flight at a time; starting another cancels it and its
// result is never applied.
type Controller struct {
	client browse_client_port.BrowsePort
	filter *preview.Filter
	logger *slog.Logger

	mu         sync.Mutex
	state      browseState
	generation uint64
	cancel     context.CancelFunc
	loading    bool
	lastErr    *BrowseError
	failed     *pendingFetch
}

type Option func(*controllerOptions)

type controllerOptions struct {
	pageSize    int
	sortMode    domain.BrowseMode
	search      string
	previewOnly bool
	filterOpts  []preview.FilterOption
	logger      *slog.Logger
}

func WithPageSize(n int) Option {
	return func(o *controllerOptions) { o.pageSize = n }
}

func WithSortMode(mode domain.BrowseMode) Option {
	return func(o *controllerOptions) { o.sortMode = mode }
}

func WithSearch(term string) Option {
	return func(o *controllerOptions) { o.search = term }
}

func WithPreviewOnly(enabled bool) Option {
	return func(o *controllerOptions) { o.previewOnly = enabled }
}

func WithFilterOptions(opts ...preview.FilterOption) Option {
	return func(o *controllerOptions) { o.filterOpts = append(o.filterOpts, opts...) }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *controllerOptions) { o.logger = l }
}

func NewController(client browse_client_port.BrowsePort, probe preview_probe_port.ImageProbePort, opts ...Option) *Controller {
	o := controllerOptions{
		pageSize: DefaultPageSize,
		sortMode: domain.BrowsePopular,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Controller{
		client: client,
		filter: preview.NewFilter(probe, o.filterOpts...),
		logger: o.logger,
		state: browseState{
			pageSize:    domain.ClampPerPage(o.pageSize),
			sortMode:    domain.ParseBrowseMode(o.sortMode.String()),
			search:      strings.TrimSpace(o.search),
			previewOnly: o.previewOnly,
		},
	}
	c.state.resetResults()
	return c
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return State{
		CurrentPage:         c.state.page,
		PageSize:            c.state.pageSize,
		SortMode:            c.state.sortMode,
		Search:              c.state.search,
		PreviewOnly:         c.state.previewOnly,
		Items:               append([]domain.CatalogItem(nil), c.state.items...),
		TotalMatches:        c.state.totalMatches,
		HasMorePages:        c.state.hasMorePages,
		Loading:             c.loading,
		Err:                 c.lastErr,
		PreviewAvailability: c.filter.Snapshot(),
	}
}

// SetSortMode clears the results and fetches page 1 in the new order.
func (c *Controller) SetSortMode(ctx context.Context, mode domain.BrowseMode) error {
	c.mu.Lock()
	c.state.sortMode = domain.ParseBrowseMode(mode.String())
	c.state.resetResults()
	c.mu.Unlock()

	return c.fetch(ctx, 1, false)
}

// SetSearchTerm clears the results and fetches page 1 for term.
func (c *Controller) SetSearchTerm(ctx context.Context, term string) error {
	c.mu.Lock()
	c.state.search = strings.TrimSpace(term)
	c.state.resetResults()
	c.mu.Unlock()

	return c.fetch(ctx, 1, false)
}

// SetPreviewOnlyFilter toggles the screenshot filter. Enabling it over
// loaded items filters them in place without a fetch and re-bases the page
// number on the larger request size, so the next LoadMore overlaps the
// loaded offsets instead of skipping past them. Disabling it reloads page 1
// unfiltered. If the in-place filter fails, the filter stays off.
func (c *Controller) SetPreviewOnlyFilter(ctx context.Context, enabled bool) error {
	c.mu.Lock()
	if c.state.previewOnly == enabled {
		c.mu.Unlock()
		return nil
	}
	loadedOffsets := c.state.page * c.state.requestSize()
	c.state.previewOnly = enabled

	if !enabled || len(c.state.items) == 0 {
		c.state.resetResults()
		c.mu.Unlock()
		return c.fetch(ctx, 1, false)
	}

	opCtx, gen := c.beginLocked(ctx)
	loaded := append([]domain.CatalogItem(nil), c.state.items...)
	c.mu.Unlock()

	filtered, err := c.filter.Apply(opCtx, loaded)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return ErrSuperseded
	}
	c.endLocked()
	if err != nil {
		c.state.previewOnly = false
		return err
	}

	c.state.replaceItems(filtered)
	c.state.page = loadedOffsets / c.state.requestSize()
	c.state.hasMorePages = loadedOffsets < c.state.totalMatches
	return nil
}

// FetchPage requests the current page. In append mode the results are
// added to the loaded items, otherwise they replace them.
func (c *Controller) FetchPage(ctx context.Context, appendMode bool) error {
	c.mu.Lock()
	page := max(c.state.page, 1)
	c.mu.Unlock()

	return c.fetch(ctx, page, appendMode)
}

// LoadMore appends the next page. It does nothing when every page is
// loaded or a request is already running. The page only advances once the
// fetch succeeds.
func (c *Controller) LoadMore(ctx context.Context) error {
	c.mu.Lock()
	if !c.state.hasMorePages || c.loading {
		c.mu.Unlock()
		return nil
	}
	next := c.state.page + 1
	c.mu.Unlock()

	return c.fetch(ctx, next, true)
}

// Retry re-issues the last failed request, if any.
func (c *Controller) Retry(ctx context.Context) error {
	c.mu.Lock()
	failed := c.failed
	c.mu.Unlock()

	if failed == nil {
		return nil
	}
	return c.fetch(ctx, failed.page, failed.appendMode)
}

// Close cancels any in-flight request.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.generation++
	c.loading = false
}

func (c *Controller) fetch(ctx context.Context, page int, appendMode bool) error {
	c.mu.Lock()
	opCtx, gen := c.beginLocked(ctx)
	size := c.state.requestSize()
	previewOnly := c.state.previewOnly
	req := domain.BrowseRequest{
		Search:  c.state.search,
		Browse:  c.state.sortMode,
		PerPage: size,
		Page:    page,
	}
	c.mu.Unlock()

	resp, err := c.client.Browse(opCtx, req)

	var items []domain.CatalogItem
	if err == nil {
		items = withPreviews(resp.Plugins)
		if previewOnly {
			items, err = c.filter.Apply(opCtx, items)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		return ErrSuperseded
	}
	cancelled := opCtx.Err()
	c.endLocked()

	if err != nil {
		if cancelled != nil {
			// deliberate cancellation is not a failure, but Retry can still
			// re-issue it
			c.failed = &pendingFetch{page: page, appendMode: appendMode}
			return cancelled
		}
		c.lastErr = Categorize(err)
		c.failed = &pendingFetch{page: page, appendMode: appendMode}
		c.logger.WarnContext(ctx, "browse request failed",
			"kind", c.lastErr.Kind,
			"page", page,
			"error", err,
		)
		return c.lastErr
	}

	c.state.merge(items, appendMode)
	c.state.page = page
	c.state.totalMatches = resp.Info.Results
	c.state.hasMorePages = page*size < resp.Info.Results
	c.lastErr = nil
	c.failed = nil
	return nil
}

// beginLocked supersedes any running operation. c.mu must be held.
func (c *Controller) beginLocked(ctx context.Context) (context.Context, uint64) {
	if c.cancel != nil {
		c.cancel()
	}
	c.generation++
	opCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.loading = true
	return opCtx, c.generation
}

func (c *Controller) endLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.loading = false
}

func withPreviews(items []domain.CatalogItem) []domain.CatalogItem {
	out := make([]domain.CatalogItem, len(items))
	for i, item := range items {
		item.PreviewImages = preview.CandidateURLs(item.Slug)
		out[i] = item
	}
	return out
}
