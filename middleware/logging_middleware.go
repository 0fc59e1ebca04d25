package middleware

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"plugin-browser/utils/logger"
)

func LoggingMiddleware(baseLogger *slog.Logger) echo.MiddlewareFunc {
	contextLogger := logger.NewContextLogger(baseLogger)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			// health and scrape traffic is noise
			if req.URL.Path == "/health" || req.URL.Path == "/metrics" {
				return next(c)
			}
			ctx := req.Context()

			err := next(c)

			duration := time.Since(start)
			res := c.Response()
			status := res.Status

			logAttrs := []any{
				"method", req.Method,
				"path", req.URL.Path,
				"status", status,
				"duration_ms", duration.Milliseconds(),
				"response_size", res.Size,
				"remote_addr", c.RealIP(),
			}
			log := contextLogger.WithContext(ctx)
			switch {
			case status >= 500:
				log.ErrorContext(ctx, "request completed", logAttrs...)
			case status >= 400:
				log.WarnContext(ctx, "request completed", logAttrs...)
			default:
				log.InfoContext(ctx, "request completed", logAttrs...)
			}

			if err != nil {
				log.ErrorContext(ctx, "request error",
					"method", req.Method,
					"path", req.URL.Path,
					"error", err,
				)
			}

			return err
		}
	}
}
