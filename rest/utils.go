package rest

import (
	stderrors "errors"

	"github.com/labstack/echo/v4"

	"plugin-browser/utils/errors"
	"plugin-browser/utils/logger"
)

// handleError enriches err with request context, logs it and writes the
// JSON error body.
func handleError(c echo.Context, err error, operation string) error {
	requestContext := map[string]any{
		"path":       c.Request().URL.Path,
		"method":     c.Request().Method,
		"request_id": c.Response().Header().Get("X-Request-ID"),
	}

	var enrichedErr *errors.AppContextError
	var appContextErr *errors.AppContextError
	if stderrors.As(err, &appContextErr) {
		enrichedErr = errors.EnrichWithContext(appContextErr, "rest", "RESTHandler", operation, requestContext)
	} else {
		enrichedErr = errors.NewUnknownContextError("internal server error", "rest", "RESTHandler", operation, err, requestContext)
	}

	ctx := c.Request().Context()
	log := logger.GlobalContext.WithContext(ctx)
	status := enrichedErr.HTTPStatusCode()
	if status >= 500 {
		log.ErrorContext(ctx, "request failed",
			"operation", operation,
			"code", enrichedErr.Code,
			"error", enrichedErr.Error(),
		)
	} else {
		log.WarnContext(ctx, "request rejected",
			"operation", operation,
			"code", enrichedErr.Code,
			"error", enrichedErr.Error(),
		)
	}

	return c.JSON(status, enrichedErr.ToHTTPResponse())
}
