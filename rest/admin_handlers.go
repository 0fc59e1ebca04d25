package rest

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"plugin-browser/config"
	"plugin-browser/di"
	middleware_custom "plugin-browser/middleware"
)

type clearCacheResponse struct {
	Deleted int `json:"deleted"`
}

type cacheEntryView struct {
	Key        string `json:"key"`
	Items      int    `json:"items"`
	Results    int    `json:"results"`
	TTLSeconds int64  `json:"ttl_seconds"`
}

type listCacheResponse struct {
	Entries []cacheEntryView `json:"entries"`
}

func registerAdminRoutes(e *echo.Echo, container *di.ApplicationComponents, cfg *config.Config, logger *slog.Logger) {
	auth := middleware_custom.NewAdminAuthMiddleware(logger, cfg.Admin.TokenSecret, cfg.Admin.TokenIssuer)

	admin := e.Group("/admin", auth.RequireAdmin())
	admin.POST("/cache/clear", handleClearCache(container))
	admin.GET("/cache", handleListCache(container))
}

func handleClearCache(container *di.ApplicationComponents) echo.HandlerFunc {
	return func(c echo.Context) error {
		deleted, err := container.CacheAdminUsecase.ClearCache(c.Request().Context())
		if err != nil {
			return handleError(c, err, "ClearCache")
		}
		return c.JSON(http.StatusOK, clearCacheResponse{Deleted: deleted})
	}
}

func handleListCache(container *di.ApplicationComponents) echo.HandlerFunc {
	return func(c echo.Context) error {
		entries, err := container.CacheAdminUsecase.ListEntries(c.Request().Context())
		if err != nil {
			return handleError(c, err, "ListCache")
		}

		resp := listCacheResponse{Entries: make([]cacheEntryView, 0, len(entries))}
		for _, e := range entries {
			resp.Entries = append(resp.Entries, cacheEntryView{
				Key:        e.Key,
				Items:      e.Items,
				Results:    e.Results,
				TTLSeconds: int64(e.TTL.Seconds()),
			})
		}
		return c.JSON(http.StatusOK, resp)
	}
}
