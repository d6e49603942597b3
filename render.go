package docsite

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Render writes a templ component as an HTTP 200 HTML response.
func (a *App) Render(c echo.Context, cmp templ.Component) error {
	return a.RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code and
// counts it as a page view.
func (a *App) RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	a.metrics.pageViews.WithLabelValues(statusClass(code)).Inc()
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}
