package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// OTelStatusMiddleware tags the request span with the route, the request id
// and the response status, and marks it failed on 5xx. Upstream outages
// surface here as 502 and 503. It must run after otelecho.Middleware, which
// creates the span.
func OTelStatusMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)

			span := trace.SpanFromContext(c.Request().Context())
			if !span.SpanContext().IsValid() {
				return err
			}

			status := c.Response().Status
			span.SetAttributes(
				semconv.HTTPRoute(c.Path()),
				semconv.HTTPResponseStatusCode(status),
			)
			if id := c.Response().Header().Get(requestIDHeader); id != "" {
				span.SetAttributes(attribute.String("request.id", id))
			}

			if status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(status))
				if err != nil {
					span.RecordError(err)
				}
			}

			return err
		}
	}
}
