package rest

import (
	"log/slog"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"plugin-browser/config"
	"plugin-browser/di"
	middleware_custom "plugin-browser/middleware"
)

const bodyLimit = "64K"

func RegisterRoutes(e *echo.Echo, container *di.ApplicationComponents, cfg *config.Config, logger *slog.Logger) {
	// 1. Request ID first so every later log line carries it
	e.Use(middleware_custom.RequestIDMiddleware())

	// 2. Recover early
	e.Use(middleware.Recover())

	// 3. Security headers
	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         31536000,
	}))

	// 4. CORS
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: splitOrigins(cfg.Server.AllowedOrigins),
		AllowMethods: []string{echo.GET, echo.POST, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "X-Request-ID"},
		MaxAge:       86400,
	}))

	// 5. Body limit; the only bodies are empty admin POSTs
	e.Use(middleware.BodyLimit(bodyLimit))

	// 6. Request timeout
	if cfg.Server.RequestTimeout > 0 {
		e.Use(middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
			Timeout: cfg.Server.RequestTimeout,
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/health" || c.Path() == "/metrics"
			},
		}))
	}

	// 7. Logging
	e.Use(middleware_custom.LoggingMiddleware(logger))

	// 8. Compression last
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			return strings.Contains(c.Path(), "/health")
		},
	}))

	registerBrowseRoutes(e, container)
	registerAdminRoutes(e, container, cfg, logger)
	registerHealthRoutes(e, container)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
