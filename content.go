package docsite

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/kamiertop/docsite/markdown"
)

var reMDXImport = regexp.MustCompile(`(?m)^import\s+[^\n]+\s+from\s+['"][^'"\n]+['"];?[ \t]*\r?\n?`)

// LoadSite walks the content root and renders every .md and .mdx page.
// lastModified may be nil, in which case pages carry no timestamp.
func LoadSite(cfg SiteConfig, r *markdown.Renderer, lastModified func(string) time.Time) (*Site, error) {
	root := cfg.ContentDir()
	var pages []Page
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if rel == "." {
				return nil
			}
			name := d.Name()
			if rel == "public" || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "node_modules" {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(path.Ext(rel))
		if ext != ".md" && ext != ".mdx" {
			return nil
		}
		page, err := loadPage(cfg, r, p, rel)
		if err != nil {
			return err
		}
		if lastModified != nil {
			page.LastUpdated = lastModified(p)
		}
		pages = append(pages, page)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("docsite: load site: %w", err)
	}
	return newSite(pages)
}

func newSite(pages []Page) (*Site, error) {
	sort.SliceStable(pages, func(i, j int) bool {
		a, b := pages[i], pages[j]
		if a.Group != b.Group {
			return a.Group < b.Group
		}
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		ai, bi := isIndex(a.SourcePath), isIndex(b.SourcePath)
		if ai != bi {
			return ai
		}
		return a.URL < b.URL
	})
	s := &Site{Pages: pages, byURL: make(map[string]int, len(pages))}
	for i, p := range pages {
		if prev, ok := s.byURL[p.URL]; ok {
			return nil, fmt.Errorf("docsite: %s and %s both map to %s", pages[prev].SourcePath, p.SourcePath, p.URL)
		}
		s.byURL[p.URL] = i
	}
	return s, nil
}

func loadPage(cfg SiteConfig, r *markdown.Renderer, file, rel string) (Page, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return Page{}, err
	}
	var meta pageMeta
	body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		return Page{}, fmt.Errorf("%s: front matter: %w", rel, err)
	}
	if strings.EqualFold(path.Ext(rel), ".mdx") {
		body = reMDXImport.ReplaceAll(body, nil)
	}
	doc, err := r.Render(body)
	if err != nil {
		return Page{}, fmt.Errorf("%s: %w", rel, err)
	}

	title := meta.Title
	if title == "" {
		title = doc.Title
	}
	if title == "" {
		title = strings.TrimSuffix(path.Base(rel), path.Ext(rel))
	}
	return Page{
		URL:         RouteFor(rel, cfg.Route.CleanURLs),
		SourcePath:  rel,
		Title:       title,
		Description: meta.Description,
		Order:       meta.Order,
		Group:       groupOf(rel),
		HTML:        doc.HTML,
		Headings:    doc.Headings,
		Text:        doc.Text,
		Code:        doc.Code,
	}, nil
}

// RouteFor maps a content-relative source path to its URL. Index pages map
// to their directory; other pages lose their extension and, unless
// cleanURLs is set, gain ".html".
func RouteFor(rel string, cleanURLs bool) string {
	rel = strings.TrimPrefix(filepath.ToSlash(rel), "/")
	stem := strings.TrimSuffix(rel, path.Ext(rel))
	if path.Base(stem) == "index" {
		dir := path.Dir(stem)
		if dir == "." {
			return "/"
		}
		return "/" + dir + "/"
	}
	if cleanURLs {
		return "/" + stem
	}
	return "/" + stem + ".html"
}

func groupOf(rel string) string {
	if i := strings.Index(rel, "/"); i >= 0 {
		return rel[:i]
	}
	return ""
}

func isIndex(rel string) bool {
	return strings.TrimSuffix(path.Base(rel), path.Ext(rel)) == "index"
}
