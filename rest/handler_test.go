package rest

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"plugin-browser/config"
	"plugin-browser/di"
	"plugin-browser/domain"
	"plugin-browser/driver/memory_kv"
	"plugin-browser/gateway/query_cache_gateway"
	middleware_custom "plugin-browser/middleware"
	"plugin-browser/mocks"
)

type testServer struct {
	e       *echo.Echo
	catalog *mocks.MockFetchCatalogPort
}

func newTestServer(t *testing.T, adminSecret string) *testServer {
	t.Helper()

	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockFetchCatalogPort(ctrl)
	cache := query_cache_gateway.NewQueryCacheGateway(memory_kv.NewMemoryKV(32, time.Hour))
	container := di.NewApplicationComponentsWith(catalog, cache)

	cfg := &config.Config{}
	cfg.Server.RequestTimeout = 5 * time.Second
	cfg.Server.AllowedOrigins = "*"
	cfg.Admin.TokenSecret = adminSecret
	cfg.Admin.TokenIssuer = "plugin-browser"

	e := echo.New()
	RegisterRoutes(e, container, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return &testServer{e: e, catalog: catalog}
}

func (s *testServer) do(method, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func payload(n, total int) *domain.RawCatalogPayload {
	p := &domain.RawCatalogPayload{Info: []byte(fmt.Sprintf(`{"results":%d,"pages":3}`, total))}
	for i := range n {
		p.Plugins = append(p.Plugins, []byte(fmt.Sprintf(
			`{"slug":"slug-%d","name":"<b>Name</b> %d","rating":"95","num_ratings":12,"active_installs":"1000","homepage":"javascript:alert(1)","icons":{"1x":"https://ps.w.org/slug/assets/icon.png"}}`,
			i, i)))
	}
	return p
}

func TestQuery_InvalidAction(t *testing.T) {
	s := newTestServer(t, "")

	rec := s.do(http.MethodGet, "/query?action=plugin_information", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"INVALID_ACTION"`)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestQuery_ServesAndCaches(t *testing.T) {
	s := newTestServer(t, "")
	s.catalog.EXPECT().
		FetchCatalog(gomock.Any(), domain.Query{Search: "seo", Browse: domain.BrowseNew, PerPage: 2, Page: 1}).
		Return(payload(2, 42), nil).
		Times(1)

	target := "/query?action=query_plugins&search=seo&browse=new&per_page=2&page=1"
	first := s.do(http.MethodGet, target, "")
	require.Equal(t, http.StatusOK, first.Code)

	var body struct {
		Plugins []map[string]any `json:"plugins"`
		Info    map[string]any   `json:"info"`
	}
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &body))
	require.Len(t, body.Plugins, 2)
	assert.Equal(t, "Name 0", body.Plugins[0]["name"])
	assert.Equal(t, float64(95), body.Plugins[0]["rating"])
	assert.Equal(t, float64(1000), body.Plugins[0]["active_installs"])
	assert.NotContains(t, body.Plugins[0], "homepage")
	assert.NotContains(t, body.Plugins[0], "downloaded")
	assert.Equal(t, map[string]any{"results": float64(42)}, body.Info)

	second := s.do(http.MethodGet, target, "")
	require.Equal(t, http.StatusOK, second.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestQuery_UpstreamFailures(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"unreachable", fmt.Errorf("%w: connection refused", domain.ErrUpstreamUnavailable), http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
		{"non-json body", fmt.Errorf("%w: invalid character", domain.ErrUpstreamMalformed), http.StatusBadGateway, "BAD_GATEWAY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, "")
			s.catalog.EXPECT().FetchCatalog(gomock.Any(), gomock.Any()).Return(nil, tt.err).Times(2)

			for range 2 {
				rec := s.do(http.MethodGet, "/query?action=query_plugins", "")
				assert.Equal(t, tt.wantStatus, rec.Code)
				assert.Contains(t, rec.Body.String(), tt.wantCode)
			}
		})
	}
}

func TestAdmin_ClearAndList(t *testing.T) {
	s := newTestServer(t, "")
	s.catalog.EXPECT().FetchCatalog(gomock.Any(), gomock.Any()).Return(payload(1, 1), nil).Times(2)

	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/query?action=query_plugins&page=1", "").Code)
	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/query?action=query_plugins&page=2", "").Code)

	list := s.do(http.MethodGet, "/admin/cache", "")
	require.Equal(t, http.StatusOK, list.Code)
	var listed listCacheResponse
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &listed))
	require.Len(t, listed.Entries, 2)
	for _, e := range listed.Entries {
		assert.True(t, strings.HasPrefix(e.Key, "plugin_browser_"))
		assert.Equal(t, 1, e.Items)
		assert.Greater(t, e.TTLSeconds, int64(3500))
	}

	cleared := s.do(http.MethodPost, "/admin/cache/clear", "")
	require.Equal(t, http.StatusOK, cleared.Code)
	assert.JSONEq(t, `{"deleted":2}`, cleared.Body.String())

	empty := s.do(http.MethodGet, "/admin/cache", "")
	assert.JSONEq(t, `{"entries":[]}`, empty.Body.String())
}

func TestAdmin_RequiresTokenWhenSecretSet(t *testing.T) {
	s := newTestServer(t, "admin-secret")

	rec := s.do(http.MethodPost, "/admin/cache/clear", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, err := middleware_custom.IssueAdminToken("admin-secret", "plugin-browser", time.Minute)
	require.NoError(t, err)

	rec = s.do(http.MethodPost, "/admin/cache/clear", token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"deleted":0}`, rec.Body.String())

	// browsing stays public
	s.catalog.EXPECT().FetchCatalog(gomock.Any(), gomock.Any()).Return(payload(0, 0), nil)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/query?action=query_plugins", "").Code)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t, "")

	health := s.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, health.Code)
	assert.Contains(t, health.Body.String(), `"status":"healthy"`)

	metrics := s.do(http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, metrics.Code)
}

func TestSplitOrigins(t *testing.T) {
	assert.Equal(t, []string{"*"}, splitOrigins(""))
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, splitOrigins(" https://a.example, https://b.example ,"))
}
