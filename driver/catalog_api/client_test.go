package catalog_api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plugin-browser/domain"
)

func TestBuildQueryURL(t *testing.T) {
	raw, err := BuildQueryURL("https://api.example.org/plugins/info/1.2/", domain.Query{
		Search: "contact form", Browse: domain.BrowseNew, PerPage: 12, Page: 3,
	})
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	q := u.Query()

	assert.Equal(t, "/plugins/info/1.2/", u.Path)
	assert.Equal(t, "query_plugins", q.Get("action"))
	assert.Equal(t, "contact form", q.Get("request[search]"))
	assert.Equal(t, "new", q.Get("request[browse]"))
	assert.Equal(t, "12", q.Get("request[per_page]"))
	assert.Equal(t, "3", q.Get("request[page]"))
	for _, heavy := range []string{"sections", "description", "screenshots", "banners", "ratings", "versions", "tags", "contributors", "donate_link"} {
		assert.Equal(t, "0", q.Get("request[fields]["+heavy+"]"), heavy)
	}
	assert.Equal(t, "1", q.Get("request[fields][icons]"))
}

func TestBuildQueryURL_OmitsEmptySearch(t *testing.T) {
	raw, err := BuildQueryURL("https://api.example.org/", domain.Query{Browse: domain.BrowsePopular, PerPage: 1, Page: 1})
	require.NoError(t, err)

	u, _ := url.Parse(raw)
	_, present := u.Query()["request[search]"]
	assert.False(t, present)
}

func TestBuildQueryURL_RejectsRelativeBase(t *testing.T) {
	_, err := BuildQueryURL("/plugins", domain.Query{})
	assert.Error(t, err)
}

func TestClient_QueryPlugins_Success(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "plugin-browser-test", r.Header.Get("User-Agent"))
		assert.Equal(t, "popular", r.URL.Query().Get("request[browse]"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"info":{"results":1},"plugins":[{"slug":"a"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 2*time.Second, WithUserAgent("plugin-browser-test"))

	body, err := client.QueryPlugins(context.Background(), domain.Query{Browse: domain.BrowsePopular, PerPage: 10, Page: 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"info":{"results":1},"plugins":[{"slug":"a"}]}`, string(body))
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_QueryPlugins_Non2xx(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, 2*time.Second)

	_, err := client.QueryPlugins(context.Background(), domain.Query{Search: "secret", Browse: domain.BrowsePopular, PerPage: 1, Page: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)

	var httpErr *domain.ExternalHTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.NotContains(t, err.Error(), "secret")
	assert.Equal(t, int32(1), calls.Load(), "no retry")
}

func TestClient_QueryPlugins_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := server.URL
	server.Close()

	client := NewClient(base, time.Second)

	_, err := client.QueryPlugins(context.Background(), domain.Query{Browse: domain.BrowsePopular, PerPage: 1, Page: 1})
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestClient_QueryPlugins_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, 50*time.Millisecond)

	_, err := client.QueryPlugins(context.Background(), domain.Query{Browse: domain.BrowsePopular, PerPage: 1, Page: 1})
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestClient_QueryPlugins_OversizedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(make([]byte, 4096))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, WithMaxBodyBytes(1024))

	_, err := client.QueryPlugins(context.Background(), domain.Query{Browse: domain.BrowsePopular, PerPage: 1, Page: 1})
	assert.ErrorIs(t, err, domain.ErrUpstreamMalformed)
}
