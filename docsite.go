// Package docsite serves a documentation site described by a single YAML
// config. Markdown goes through goldmark, pages are templ components behind
// Echo, and search is a SQLite index rebuilt whenever the content reloads.
package docsite

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/kamiertop/docsite/markdown"
	"github.com/kamiertop/docsite/views"
)

// ViewFuncs holds the components rendered for error responses. Unset fields
// fall back to the built-in pages.
type ViewFuncs struct {
	NotFound    func(views.Chrome) templ.Component
	ServerError func(views.Chrome) templ.Component
}

// App is the central docsite application. It wires together the config,
// content cache, search store, handlers and middleware.
type App struct {
	Echo  *echo.Echo
	Store *Store
	Cache *SiteCache

	site         SiteConfig
	server       ServerConfig
	renderer     *markdown.Renderer
	metrics      *Metrics
	limiter      *RateLimiter
	watcher      *Watcher
	logger       *slog.Logger
	views        ViewFuncs
	lastModified func(path string) time.Time
	customRoutes []func(*App)
	ready        bool
}

// New creates an App. The site config is cloned, so later changes by the
// caller do not reach the running site.
func New(site SiteConfig, server ServerConfig, opts ...Option) *App {
	site = site.Clone()
	site.setDefaults()
	server.setDefaults()

	a := &App{
		Echo:    echo.New(),
		site:    site,
		server:  server,
		metrics: newMetrics(),
		logger:  slog.Default(),
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true

	for _, opt := range opts {
		opt(a)
	}
	if a.views.NotFound == nil {
		a.views.NotFound = views.NotFound
	}
	if a.views.ServerError == nil {
		a.views.ServerError = views.ServerError
	}
	if a.lastModified == nil {
		a.lastModified = NewGitDates(site.ContentDir(), a.logger).LastModified
	}
	a.renderer = markdown.New(markdown.Options{ShowLineNumbers: site.Markdown.ShowLineNumbers})
	return a
}

// Site returns a copy of the site config.
func (a *App) Site() SiteConfig {
	return a.site.Clone()
}

// Init validates the config, opens the search store, loads the content and
// registers middleware and routes. Start calls it; tests call it directly and
// drive a.Echo through httptest.
func (a *App) Init() error {
	if a.ready {
		return nil
	}
	if err := a.site.Validate(); err != nil {
		return err
	}
	if a.server.SessionSecret == "" {
		a.server.SessionSecret = randomSecret()
		a.logger.Warn("No session secret configured; appearance preferences reset on restart")
	}

	store, err := NewStore(a.server.DatabasePath, a.site.Search.CodeBlocks)
	if err != nil {
		return fmt.Errorf("docsite: init store: %w", err)
	}
	a.Store = store

	a.Cache = NewSiteCache(a.loadSite, a.server.CacheTTL, a.indexSite)
	site, err := a.Cache.Site()
	if err != nil {
		return err
	}
	a.logger.Info("Loaded documentation site", "root", a.site.ContentDir(), "pages", len(site.Pages))

	a.limiter = NewRateLimiter(a.server.SearchRateLimit, time.Minute)

	if a.server.Watch {
		w, err := NewWatcher(a.site.ContentDir(), a.Cache.Invalidate, a.logger)
		if err != nil {
			return fmt.Errorf("docsite: watch content: %w", err)
		}
		a.watcher = w
	}

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	a.ready = true
	return nil
}

// Start initializes the app and serves until the server is shut down.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}
	a.logger.Info("Serving documentation", "addr", a.server.Addr, "title", a.site.Title)
	if err := a.Echo.Start(a.server.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the HTTP server gracefully.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

func (a *App) loadSite() (*Site, error) {
	start := time.Now()
	s, err := LoadSite(a.site, a.renderer, a.lastModified)
	if err != nil {
		a.metrics.siteLoads.WithLabelValues("error").Inc()
		a.logger.Error("Load site failed", "error", err)
		return nil, err
	}
	a.metrics.siteLoads.WithLabelValues("ok").Inc()
	a.metrics.sitePages.Set(float64(len(s.Pages)))
	a.logger.Debug("Site loaded", "pages", len(s.Pages), "duration", time.Since(start))
	return s, nil
}

func (a *App) indexSite(s *Site) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := a.Store.Index(ctx, s.Pages); err != nil {
		a.logger.Error("Search reindex failed", "error", err)
		return
	}
	if n, err := a.Store.Count(ctx); err == nil {
		a.logger.Debug("Search index rebuilt", "pages", n)
	}
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/_docsite/icon", a.handleIcon)
	e.GET("/_docsite/:file", a.handleEmbedded)
	e.POST("/_docsite/appearance", a.handleAppearance)
	e.GET("/api/search", a.handleSearch)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/metrics", echo.WrapHandler(a.metrics.Handler()))
	e.GET("/*", a.handlePage)
}

// chrome builds the per-request layout frame.
func (a *App) chrome(c echo.Context) views.Chrome {
	s := a.site
	t := s.ThemeConfig
	ch := views.Chrome{
		Title:               s.Title,
		Description:         s.Description,
		LogoText:            s.LogoText,
		LogoLight:           s.AssetURL(s.Logo.Light),
		LogoDark:            s.AssetURL(s.Logo.Dark),
		HideNavbar:          t.HideNavbar,
		Outline:             t.Outline,
		OutlineTitle:        t.OutlineTitle,
		PrevPageText:        t.PrevPageText,
		NextPageText:        t.NextPageText,
		LastUpdated:         t.LastUpdated,
		LastUpdatedText:     t.LastUpdatedText,
		ContentAnimation:    t.EnableContentAnimation,
		AppearanceAnimation: t.EnableAppearanceAnimation,
		ScrollToTop:         t.EnableScrollToTop,
		Dark:                isDark(c),
		CSRFToken:           CsrfToken(c),
	}
	if s.Icon != "" {
		ch.IconURL = "/_docsite/icon"
	}
	if t.EditLink != nil {
		ch.EditLinkText = t.EditLink.Text
		ch.EditLinkBase = t.EditLink.DocRepoBaseURL
	}
	for _, l := range t.SocialLinks {
		if l.Mode == "link" {
			ch.SocialLinks = append(ch.SocialLinks, views.SocialLink{Icon: l.Icon, URL: l.Content})
		}
	}
	if site, err := a.Cache.Site(); err == nil {
		ch.Nav = navGroups(site)
	}
	return ch
}

func navGroups(s *Site) []views.NavGroup {
	var groups []views.NavGroup
	for _, p := range s.Pages {
		if len(groups) == 0 || groups[len(groups)-1].Title != p.Group {
			groups = append(groups, views.NavGroup{Title: p.Group})
		}
		g := &groups[len(groups)-1]
		g.Items = append(g.Items, views.NavItem{Title: p.Title, URL: p.URL})
	}
	return groups
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.watcher != nil {
		a.watcher.Close()
	}
	if a.limiter != nil {
		a.limiter.Stop()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
