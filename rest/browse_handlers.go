package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"plugin-browser/di"
	"plugin-browser/domain"
)

func registerBrowseRoutes(e *echo.Echo, container *di.ApplicationComponents) {
	e.GET("/query", handleQuery(container))
}

// handleQuery serves GET /query?action=query_plugins&search=&browse=&per_page=&page=
func handleQuery(container *di.ApplicationComponents) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := domain.RawParams{
			Action:  c.QueryParam("action"),
			Search:  c.QueryParam("search"),
			Browse:  c.QueryParam("browse"),
			PerPage: c.QueryParam("per_page"),
			Page:    c.QueryParam("page"),
		}

		resp, err := container.BrowseUsecase.Browse(c.Request().Context(), raw)
		if err != nil {
			return handleError(c, err, "Query")
		}

		c.Response().Header().Set("Cache-Control", "no-store")
		return c.JSON(http.StatusOK, resp)
	}
}
