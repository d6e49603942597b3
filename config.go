package docsite

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every problem reported by SiteConfig.Validate.
var ErrInvalidConfig = errors.New("docsite: invalid site config")

// SiteConfig is the declarative description of a documentation site. It is
// loaded once at startup and never mutated afterwards; the App only hands
// out clones.
type SiteConfig struct {
	Root        string         `yaml:"root"`
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	Icon        string         `yaml:"icon"`
	LogoText    string         `yaml:"logoText"`
	Logo        LogoConfig     `yaml:"logo"`
	Route       RouteConfig    `yaml:"route"`
	ThemeConfig ThemeConfig    `yaml:"themeConfig"`
	Search      SearchConfig   `yaml:"search"`
	Markdown    MarkdownConfig `yaml:"markdown"`

	// BaseDir is the directory relative paths are resolved against. LoadConfig
	// sets it to the directory of the config file.
	BaseDir string `yaml:"-"`
}

// LogoConfig holds the logo variants for light and dark appearance.
type LogoConfig struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// UnmarshalYAML accepts either a single path or a {light, dark} mapping.
func (l *LogoConfig) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		l.Light = value.Value
		l.Dark = value.Value
		return nil
	}
	type plain LogoConfig
	return value.Decode((*plain)(l))
}

type RouteConfig struct {
	CleanURLs bool `yaml:"cleanUrls"`
}

type ThemeConfig struct {
	SocialLinks               []SocialLink    `yaml:"socialLinks"`
	HideNavbar                string          `yaml:"hideNavbar"`
	OutlineTitle              string          `yaml:"outlineTitle"`
	PrevPageText              string          `yaml:"prevPageText"`
	NextPageText              string          `yaml:"nextPageText"`
	EnableContentAnimation    bool            `yaml:"enableContentAnimation"`
	EnableScrollToTop         bool            `yaml:"enableScrollToTop"`
	EnableAppearanceAnimation bool            `yaml:"enableAppearanceAnimation"`
	Outline                   bool            `yaml:"outline"`
	LastUpdated               bool            `yaml:"lastUpdated"`
	LastUpdatedText           string          `yaml:"lastUpdatedText"`
	EditLink                  *EditLinkConfig `yaml:"editLink"`
}

// SocialLink is a navbar icon link. Only mode "link" is rendered.
type SocialLink struct {
	Icon    string `yaml:"icon"`
	Mode    string `yaml:"mode"`
	Content string `yaml:"content"`
}

// EditLinkConfig enables the "edit this page" link. The page's path relative
// to the content root is appended to DocRepoBaseURL.
type EditLinkConfig struct {
	Text           string `yaml:"text"`
	DocRepoBaseURL string `yaml:"docRepoBaseUrl"`
}

type SearchConfig struct {
	CodeBlocks bool `yaml:"codeBlocks"`
}

type MarkdownConfig struct {
	ShowLineNumbers bool `yaml:"showLineNumbers"`
}

var hideNavbarModes = []string{"always", "auto", "never"}

// LoadConfig reads a YAML site config. Unknown keys are ignored.
func LoadConfig(path string) (SiteConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SiteConfig{}, fmt.Errorf("docsite: read config %s: %w", path, err)
	}
	var cfg SiteConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("docsite: parse config %s: %w", path, err)
	}
	abs, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return SiteConfig{}, fmt.Errorf("docsite: resolve config dir: %w", err)
	}
	cfg.BaseDir = abs
	cfg.setDefaults()
	return cfg, nil
}

func (c *SiteConfig) setDefaults() {
	if c.Root == "" {
		c.Root = "docs"
	}
	if c.BaseDir == "" {
		c.BaseDir = "."
	}
	if c.LogoText == "" {
		c.LogoText = c.Title
	}
	if c.Logo.Dark == "" {
		c.Logo.Dark = c.Logo.Light
	}
	t := &c.ThemeConfig
	if t.HideNavbar == "" {
		t.HideNavbar = "never"
	}
	if t.OutlineTitle == "" {
		t.OutlineTitle = "目录"
	}
	if t.PrevPageText == "" {
		t.PrevPageText = "上一页"
	}
	if t.NextPageText == "" {
		t.NextPageText = "下一页"
	}
	if t.LastUpdatedText == "" {
		t.LastUpdatedText = "上次更新时间"
	}
	if t.EditLink != nil && t.EditLink.Text == "" {
		t.EditLink.Text = "编辑此页"
	}
	for i := range t.SocialLinks {
		if t.SocialLinks[i].Mode == "" {
			t.SocialLinks[i].Mode = "link"
		}
	}
}

// Validate reports every problem with the config at once.
func (c SiteConfig) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, errors.New("title must not be empty"))
	}
	if err := checkReadableDir(c.ContentDir()); err != nil {
		errs = append(errs, fmt.Errorf("root: %w", err))
	}
	assets := []struct{ field, path string }{
		{"icon", c.Icon},
		{"logo.light", c.Logo.Light},
		{"logo.dark", c.Logo.Dark},
	}
	for _, a := range assets {
		if a.path == "" || isRemote(a.path) {
			continue
		}
		if _, err := CheckAsset(c.ResolveAsset(a.path)); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", a.field, err))
		}
	}
	if !slices.Contains(hideNavbarModes, c.ThemeConfig.HideNavbar) {
		errs = append(errs, fmt.Errorf("themeConfig.hideNavbar: unknown mode %q", c.ThemeConfig.HideNavbar))
	}
	if el := c.ThemeConfig.EditLink; el != nil {
		if u, err := url.Parse(el.DocRepoBaseURL); err != nil || !u.IsAbs() {
			errs = append(errs, fmt.Errorf("themeConfig.editLink.docRepoBaseUrl: %q is not an absolute URL", el.DocRepoBaseURL))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// Clone returns a deep copy.
func (c SiteConfig) Clone() SiteConfig {
	out := c
	out.ThemeConfig.SocialLinks = slices.Clone(c.ThemeConfig.SocialLinks)
	if c.ThemeConfig.EditLink != nil {
		el := *c.ThemeConfig.EditLink
		out.ThemeConfig.EditLink = &el
	}
	return out
}

// ContentDir is the absolute-or-BaseDir-relative path of the content root.
func (c SiteConfig) ContentDir() string {
	if filepath.IsAbs(c.Root) {
		return c.Root
	}
	return filepath.Join(c.BaseDir, c.Root)
}

// PublicDir holds static files served from the site root.
func (c SiteConfig) PublicDir() string {
	return filepath.Join(c.ContentDir(), "public")
}

// ResolveAsset maps a configured asset path to a file. Paths starting with "/"
// are site URLs served from PublicDir; others are relative to BaseDir.
func (c SiteConfig) ResolveAsset(p string) string {
	if strings.HasPrefix(p, "/") {
		return filepath.Join(c.PublicDir(), filepath.FromSlash(p))
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.BaseDir, filepath.FromSlash(p))
}

// AssetURL maps a configured asset path to the URL a browser should load.
func (c SiteConfig) AssetURL(p string) string {
	if p == "" || isRemote(p) || strings.HasPrefix(p, "/") {
		return p
	}
	public := c.PublicDir()
	if rel, err := filepath.Rel(public, c.ResolveAsset(p)); err == nil && !strings.HasPrefix(rel, "..") {
		return "/" + filepath.ToSlash(rel)
	}
	return ""
}

func isRemote(p string) bool {
	return strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") || strings.HasPrefix(p, "data:")
}

func checkReadableDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Readdirnames(1); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%s is not readable: %w", dir, err)
	}
	return nil
}

// ServerConfig holds runtime settings that are not part of the site itself.
type ServerConfig struct {
	Addr            string        // Listen address (default ":3000")
	DatabasePath    string        // Search index SQLite path (default "data/search.db")
	CacheTTL        time.Duration // How long a loaded site is reused (default 5min)
	SessionSecret   string        // Appearance cookie secret; random per process when empty
	CookieSecure    bool          // Set true for HTTPS
	Watch           bool          // Reload on content changes
	SearchRateLimit int           // Search requests per client per minute (default 60)
}

func (c *ServerConfig) setDefaults() {
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/search.db"
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = 5 * time.Minute
	}
	if c.SearchRateLimit == 0 {
		c.SearchRateLimit = 60
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithLogger replaces the default slog logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		a.logger = l
	}
}

// WithViews replaces the 404 and 500 pages.
func WithViews(v ViewFuncs) Option {
	return func(a *App) {
		a.views = v
	}
}

// WithLastModified overrides how page modification times are resolved.
func WithLastModified(fn func(path string) time.Time) Option {
	return func(a *App) {
		a.lastModified = fn
	}
}
