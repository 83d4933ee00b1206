package search

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	"bookmart/app/echoServer/respond"
	searchsvc "bookmart/service/search"
)

type Controller struct {
	Svc searchsvc.Service
	Log *slog.Logger
}

// GET /v1/books/search
// Query params are catalog field filters; title_keyword matches a title
// substring. Unknown fields are rejected.
func (h *Controller) Query(c echo.Context) error {
	params := map[string]string{}
	for k, vs := range c.QueryParams() {
		if len(vs) > 0 {
			params[k] = vs[0]
		}
	}
	books, err := h.Svc.QueryBooks(c.Request().Context(), params)
	if err != nil {
		return respond.Err(c, h.Log, "query books", err)
	}
	return respond.OK(c, echo.Map{"books": books})
}
