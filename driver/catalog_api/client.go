package catalog_api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"plugin-browser/domain"
	"plugin-browser/utils/logger"
	"plugin-browser/utils/rate_limiter"
)

// fieldSelection turns off the heavy listing fields and asks for the ones
// the browse view renders.
var fieldSelection = []struct {
	name string
	on   bool
}{
	{"sections", false},
	{"description", false},
	{"screenshots", false},
	{"banners", false},
	{"ratings", false},
	{"versions", false},
	{"tags", false},
	{"contributors", false},
	{"donate_link", false},
	{"compatibility", false},
	{"reviews", false},
	{"short_description", true},
	{"icons", true},
	{"active_installs", true},
	{"last_updated", true},
	{"added", true},
	{"homepage", true},
	{"downloaded", true},
}

// Client talks to the plugin directory's query_plugins API.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	userAgent    string
	maxBodyBytes int64
	limiter      *rate_limiter.HostRateLimiter
	tracer       trace.Tracer
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

func WithRateLimiter(l *rate_limiter.HostRateLimiter) Option {
	return func(cl *Client) { cl.limiter = l }
}

func WithMaxBodyBytes(n int64) Option {
	return func(cl *Client) { cl.maxBodyBytes = n }
}

func WithUserAgent(ua string) Option {
	return func(cl *Client) { cl.userAgent = ua }
}

func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		httpClient:   &http.Client{Timeout: timeout},
		baseURL:      baseURL,
		userAgent:    "plugin-browser/1.0",
		maxBodyBytes: 8 << 20,
		tracer:       otel.Tracer("plugin-browser/catalog_api"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BuildQueryURL encodes q as a query_plugins request against baseURL.
func BuildQueryURL(baseURL string, q domain.Query) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid catalog base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("catalog base URL must be absolute: %q", baseURL)
	}

	params := u.Query()
	params.Set("action", domain.QueryPluginsAction)
	if q.Search != "" {
		params.Set("request[search]", q.Search)
	}
	params.Set("request[browse]", q.Browse.String())
	params.Set("request[per_page]", strconv.Itoa(q.PerPage))
	params.Set("request[page]", strconv.Itoa(q.Page))
	for _, f := range fieldSelection {
		v := "0"
		if f.on {
			v = "1"
		}
		params.Set("request[fields]["+f.name+"]", v)
	}
	u.RawQuery = params.Encode()

	return u.String(), nil
}

// QueryPlugins performs exactly one GET. Transport failures and non-2xx
// answers wrap domain.ErrUpstreamUnavailable. There is no retry.
func (c *Client) QueryPlugins(ctx context.Context, q domain.Query) ([]byte, error) {
	ctx, span := c.tracer.Start(ctx, "catalog_api.QueryPlugins",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("catalog.browse", q.Browse.String()),
			attribute.Int("catalog.per_page", q.PerPage),
			attribute.Int("catalog.page", q.Page),
			attribute.Bool("catalog.search", q.Search != ""),
		),
	)
	defer span.End()

	body, err := c.queryPlugins(ctx, q)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return body, nil
}

func (c *Client) queryPlugins(ctx context.Context, q domain.Query) ([]byte, error) {
	endpoint, err := BuildQueryURL(c.baseURL, q)
	if err != nil {
		return nil, err
	}

	if err := c.limiter.WaitForHost(ctx, endpoint); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %v", domain.ErrUpstreamUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	log := logger.GlobalContext.WithContext(ctx)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WarnContext(ctx, "catalog request failed", "error", err, "timeout", isTimeout(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.DebugContext(ctx, "failed to close catalog response body", "error", closeErr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		log.WarnContext(ctx, "catalog returned non-2xx", "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, &domain.ExternalHTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			URL:        redact(endpoint),
		})
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes+1))
	if err != nil {
		log.WarnContext(ctx, "failed to read catalog body", "error", err)
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrUpstreamUnavailable, err)
	}
	if int64(len(body)) > c.maxBodyBytes {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", domain.ErrUpstreamMalformed, c.maxBodyBytes)
	}

	log.DebugContext(ctx, "catalog response received", slog.Int("status", resp.StatusCode), slog.Int("bytes", len(body)))
	return body, nil
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// redact drops the query string so search terms stay out of error text.
func redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	u.RawQuery = ""
	return u.String()
}
