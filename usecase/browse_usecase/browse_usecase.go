package browse_usecase

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"plugin-browser/domain"
	"plugin-browser/metrics"
	"plugin-browser/port/catalog_port"
	"plugin-browser/port/query_cache_port"
	"plugin-browser/utils/cache_key"
	appErrors "plugin-browser/utils/errors"
	"plugin-browser/utils/logger"
	"plugin-browser/utils/sanitizer"
)

const (
	layer     = "usecase"
	component = "BrowseUsecase"
)

// BrowseUsecase serves browse queries from the query cache, falling back to
// the upstream catalog on a miss.
type BrowseUsecase struct {
	catalog catalog_port.FetchCatalogPort
	cache   query_cache_port.QueryCachePort
	ttl     time.Duration
	tracer  trace.Tracer
}

func NewBrowseUsecase(catalog catalog_port.FetchCatalogPort, cache query_cache_port.QueryCachePort) *BrowseUsecase {
	return &BrowseUsecase{
		catalog: catalog,
		cache:   cache,
		ttl:     domain.QueryCacheTTL,
		tracer:  otel.Tracer("plugin-browser/browse_usecase"),
	}
}

// Browse validates and normalizes raw, then returns the cached or freshly
// fetched response. Errors are *appErrors.AppContextError.
func (u *BrowseUsecase) Browse(ctx context.Context, raw domain.RawParams) (*domain.CatalogResponse, error) {
	q, err := domain.NewQuery(raw)
	if err != nil {
		return nil, appErrors.NewInvalidActionError(layer, component, "Browse", raw.Action)
	}

	key := cache_key.Build(q)
	ctx = logger.WithCacheKey(logger.WithOperation(ctx, "browse"), key)
	ctx, span := u.tracer.Start(ctx, "BrowseUsecase.Browse", trace.WithAttributes(
		attribute.String("browse.mode", q.Browse.String()),
		attribute.Int("browse.per_page", q.PerPage),
		attribute.Int("browse.page", q.Page),
	))
	defer span.End()

	log := logger.GlobalContext.WithContext(ctx)

	cached, hit, err := u.cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.RecordCacheError()
		log.WarnContext(ctx, "query cache read failed, falling back to upstream", "error", err)
	case hit:
		metrics.RecordCacheHit()
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return cached, nil
	default:
		metrics.RecordCacheMiss()
	}
	span.SetAttributes(attribute.Bool("cache.hit", false))

	started := time.Now()
	payload, err := u.catalog.FetchCatalog(ctx, q)
	if err != nil {
		outcome := metrics.OutcomeUnavailable
		if errors.Is(err, domain.ErrUpstreamMalformed) {
			outcome = metrics.OutcomeMalformed
		}
		metrics.RecordUpstream(outcome, time.Since(started).Seconds())
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		log.ErrorContext(ctx, "catalog fetch failed", "error", err, "outcome", outcome)
		return nil, appErrors.FromUpstream(layer, component, "Browse", err, map[string]any{"cache_key": key})
	}
	metrics.RecordUpstream(metrics.OutcomeSuccess, time.Since(started).Seconds())

	resp := sanitizer.SanitizePayload(payload)
	if len(resp.Plugins) > q.PerPage {
		resp.Plugins = resp.Plugins[:q.PerPage]
	}
	metrics.RecordResponseItems(len(resp.Plugins))

	if err := u.cache.Put(ctx, key, &resp, u.ttl); err != nil {
		metrics.RecordCacheWrite(false)
		log.WarnContext(ctx, "query cache write failed", "error", err)
	} else {
		metrics.RecordCacheWrite(true)
	}

	log.InfoContext(ctx, "browse served from upstream",
		"items", len(resp.Plugins),
		"results", resp.Info.Results,
		"duration_ms", time.Since(started).Milliseconds(),
	)
	return &resp, nil
}
