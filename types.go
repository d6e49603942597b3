package docsite

import (
	"time"

	"github.com/kamiertop/docsite/markdown"
)

// Page is one rendered documentation page.
type Page struct {
	URL         string // canonical URL, shaped by route.cleanUrls
	SourcePath  string // slash-separated path relative to the content root
	Title       string
	Description string
	Order       int
	Group       string // top-level directory, "" for the root
	HTML        string
	Headings    []markdown.Heading
	Text        string
	Code        string
	LastUpdated time.Time
}

// Site is a loaded content tree: pages in navigation order plus a URL index.
type Site struct {
	Pages []Page
	byURL map[string]int
}

// Lookup returns the page served at url.
func (s *Site) Lookup(url string) (Page, int, bool) {
	i, ok := s.byURL[url]
	if !ok {
		return Page{}, -1, false
	}
	return s.Pages[i], i, true
}

// pageMeta is the front matter a page may declare.
type pageMeta struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Order       int    `yaml:"order"`
}

// SearchHit is one search result.
type SearchHit struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}
