package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"plugin-browser/di"
)

func registerHealthRoutes(e *echo.Echo, container *di.ApplicationComponents) {
	e.GET("/health", func(c echo.Context) error {
		if err := container.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"cache":  container.StoreBackend,
			})
		}
		return c.JSON(http.StatusOK, map[string]string{
			"status": "healthy",
			"cache":  container.StoreBackend,
		})
	})
}
