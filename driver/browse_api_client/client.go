package browse_api_client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"plugin-browser/domain"
	"plugin-browser/utils/sanitizer"
)

const maxResponseBytes = 16 << 20

// Client calls a plugin-browser proxy over HTTP. It implements
// browse_client_port.BrowsePort and browse_client_port.CacheAdminPort.
type Client struct {
	httpClient *http.Client
	baseURL    string
	adminToken string
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

// WithAdminToken sets the bearer token sent on admin calls.
func WithAdminToken(token string) Option {
	return func(cl *Client) { cl.adminToken = token }
}

func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Browse requests one page. Non-2xx answers come back as
// *domain.ExternalHTTPError; transport failures wrap
// domain.ErrEndpointUnreachable.
func (c *Client) Browse(ctx context.Context, req domain.BrowseRequest) (*domain.CatalogResponse, error) {
	params := url.Values{}
	params.Set("action", domain.QueryPluginsAction)
	if req.Search != "" {
		params.Set("search", req.Search)
	}
	params.Set("browse", req.Browse.String())
	params.Set("per_page", strconv.Itoa(req.PerPage))
	params.Set("page", strconv.Itoa(req.Page))

	var resp domain.CatalogResponse
	if err := c.do(ctx, http.MethodGet, "/query?"+params.Encode(), false, &resp); err != nil {
		return nil, err
	}

	// idempotent on output the proxy already cleaned
	clean := sanitizer.SanitizeResponse(resp)
	return &clean, nil
}

func (c *Client) ClearCache(ctx context.Context) (int, error) {
	var body struct {
		Deleted int `json:"deleted"`
	}
	if err := c.do(ctx, http.MethodPost, "/admin/cache/clear", true, &body); err != nil {
		return 0, err
	}
	return body.Deleted, nil
}

func (c *Client) ListCache(ctx context.Context) ([]domain.CacheEntrySummary, error) {
	var body struct {
		Entries []struct {
			Key        string `json:"key"`
			Items      int    `json:"items"`
			Results    int    `json:"results"`
			TTLSeconds int64  `json:"ttl_seconds"`
		} `json:"entries"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin/cache", true, &body); err != nil {
		return nil, err
	}

	entries := make([]domain.CacheEntrySummary, 0, len(body.Entries))
	for _, e := range body.Entries {
		entries = append(entries, domain.CacheEntrySummary{
			Key:     e.Key,
			Items:   e.Items,
			Results: e.Results,
			TTL:     time.Duration(e.TTLSeconds) * time.Second,
		})
	}
	return entries, nil
}

func (c *Client) do(ctx context.Context, method, path string, admin bool, out any) error {
	endpoint := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if admin && c.adminToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.adminToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", domain.ErrEndpointUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &domain.ExternalHTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			URL:        c.baseURL + strings.SplitN(path, "?", 2)[0],
		}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("empty response from %s", path)
		}
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
