package docsite

import (
	"errors"
	"math"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kamiertop/docsite/views"
)

func (a *App) handlePage(c echo.Context) error {
	raw := c.Param("*")
	if unescaped, err := url.PathUnescape(raw); err == nil {
		raw = unescaped
	}
	reqPath := path.Clean("/" + raw)
	if strings.HasSuffix(raw, "/") && reqPath != "/" {
		reqPath += "/"
	}

	page, prev, next, err := a.Cache.Page(reqPath)
	if errors.Is(err, ErrNotFound) {
		if file, ok := a.publicFile(reqPath); ok {
			return c.File(file)
		}
		if target, ok := a.canonicalURL(reqPath); ok {
			return c.Redirect(http.StatusMovedPermanently, target)
		}
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}

	pv := views.PageView{
		Title:       page.Title,
		Description: page.Description,
		URL:         page.URL,
		HTML:        page.HTML,
		SourcePath:  page.SourcePath,
		LastUpdated: page.LastUpdated,
	}
	for _, h := range page.Headings {
		pv.Headings = append(pv.Headings, views.Heading{Level: h.Level, ID: h.ID, Text: h.Text})
	}
	if prev != nil {
		pv.Prev = &views.NavItem{Title: prev.Title, URL: prev.URL}
	}
	if next != nil {
		pv.Next = &views.NavItem{Title: next.Title, URL: next.URL}
	}
	return a.Render(c, views.Page(a.chrome(c), pv))
}

// canonicalURL finds the served URL for a request that names a page in a
// non-canonical form: with or without ".html", or a directory without its
// trailing slash.
func (a *App) canonicalURL(reqPath string) (string, bool) {
	var candidates []string
	if strings.HasSuffix(reqPath, ".html") {
		candidates = append(candidates, strings.TrimSuffix(reqPath, ".html"))
		if strings.HasSuffix(reqPath, "/index.html") {
			candidates = append(candidates, strings.TrimSuffix(reqPath, "index.html"))
		}
	} else if !strings.HasSuffix(reqPath, "/") {
		candidates = append(candidates, reqPath+".html", reqPath+"/")
	}
	site, err := a.Cache.Site()
	if err != nil {
		return "", false
	}
	for _, cand := range candidates {
		if _, _, ok := site.Lookup(cand); ok {
			return cand, true
		}
	}
	return "", false
}

// publicFile maps a URL path to a file under the public directory.
func (a *App) publicFile(reqPath string) (string, bool) {
	if reqPath == "/" || strings.HasSuffix(reqPath, "/") {
		return "", false
	}
	file := filepath.Join(a.site.PublicDir(), filepath.FromSlash(path.Clean(reqPath)))
	info, err := os.Stat(file)
	if err != nil || info.IsDir() {
		return "", false
	}
	return file, true
}

type searchResponse struct {
	Query string      `json:"query"`
	Hits  []SearchHit `json:"hits"`
}

func (a *App) handleSearch(c echo.Context) error {
	if ok, wait := a.limiter.Allow(c.RealIP()); !ok {
		secs := int(math.Ceil(wait.Seconds()))
		c.Response().Header().Set("Retry-After", strconv.Itoa(max(secs, 1)))
		return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "too many search requests"})
	}
	q := strings.TrimSpace(c.QueryParam("q"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	// Make sure a stale index is refreshed before querying it.
	if _, err := a.Cache.Site(); err != nil {
		return err
	}
	hits, err := a.Store.Search(c.Request().Context(), q, limit)
	if err != nil {
		return err
	}
	a.metrics.searches.Inc()
	if hits == nil {
		hits = []SearchHit{}
	}
	return c.JSON(http.StatusOK, searchResponse{Query: q, Hits: hits})
}

func (a *App) handleSitemap(c echo.Context) error {
	site, err := a.Cache.Site()
	if err != nil {
		return err
	}
	return a.renderSitemap(c, site.Pages)
}

func (a *App) handleIcon(c echo.Context) error {
	if a.site.Icon == "" {
		return echo.ErrNotFound
	}
	if isRemote(a.site.Icon) {
		return c.Redirect(http.StatusFound, a.site.Icon)
	}
	return c.File(a.site.ResolveAsset(a.site.Icon))
}

func (a *App) handleEmbedded(c echo.Context) error {
	name := c.Param("file")
	data, err := EmbeddedAssets.ReadFile("embedded/" + path.Base(name))
	if err != nil {
		return echo.ErrNotFound
	}
	ctype := "application/octet-stream"
	switch path.Ext(name) {
	case ".css":
		ctype = "text/css; charset=utf-8"
	case ".js":
		ctype = "text/javascript; charset=utf-8"
	}
	return c.Blob(http.StatusOK, ctype, data)
}

func (a *App) handleAppearance(c echo.Context) error {
	if err := setDark(c, !isDark(c)); err != nil {
		return err
	}
	back := c.Request().Referer()
	if back == "" || !sameOrigin(back, c.Request()) {
		back = "/"
	}
	return c.Redirect(http.StatusSeeOther, back)
}

func sameOrigin(ref string, r *http.Request) bool {
	return strings.HasPrefix(ref, "http://"+r.Host+"/") || strings.HasPrefix(ref, "https://"+r.Host+"/")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = a.RenderStatus(c, http.StatusNotFound, a.views.NotFound(a.chrome(c)))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.logger.Error("Server error", "method", c.Request().Method, "uri", c.Request().RequestURI, "error", err)
		_ = a.RenderStatus(c, code, a.views.ServerError(a.chrome(c)))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
