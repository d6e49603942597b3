package views

import (
	"bytes"
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

func esc(s string) string {
	return templ.EscapeString(s)
}

// Page renders a documentation page inside the site frame.
func Page(c Chrome, p PageView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		title := p.Title
		if title != c.Title {
			title = p.Title + " | " + c.Title
		}
		desc := p.Description
		if desc == "" {
			desc = c.Description
		}
		writeHead(&buf, c, title, desc)
		writeNavbar(&buf, c)
		buf.WriteString(`<div class="layout">`)
		writeSidebar(&buf, WithActive(c.Nav, p.URL))
		writeContent(&buf, c, p)
		if c.Outline && len(p.Headings) > 0 {
			writeOutline(&buf, c.OutlineTitle, p.Headings)
		}
		buf.WriteString(`</div>`)
		writeFoot(&buf, c)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// NotFound renders the 404 page.
func NotFound(c Chrome) templ.Component {
	return message(c, "404", "页面不存在")
}

// ServerError renders the 500 page.
func ServerError(c Chrome) templ.Component {
	return message(c, "500", "服务器出错了，请稍后再试")
}

func message(c Chrome, code, text string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		writeHead(&buf, c, code+" | "+c.Title, c.Description)
		writeNavbar(&buf, c)
		buf.WriteString(`<main class="message"><h1>` + code + `</h1><p>` + esc(text) + `</p><p><a href="/">` + esc(c.Title) + `</a></p></main>`)
		writeFoot(&buf, c)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func writeHead(buf *bytes.Buffer, c Chrome, title, desc string) {
	buf.WriteString(`<!DOCTYPE html><html lang="zh-CN"`)
	if c.Dark {
		buf.WriteString(` class="dark"`)
	}
	buf.WriteString(`><head><meta charset="utf-8"/><meta name="viewport" content="width=device-width, initial-scale=1"/>`)
	buf.WriteString(`<title>` + esc(title) + `</title>`)
	if desc != "" {
		buf.WriteString(`<meta name="description" content="` + esc(desc) + `"/>`)
	}
	if c.IconURL != "" {
		buf.WriteString(`<link rel="icon" href="` + esc(c.IconURL) + `"/>`)
	}
	buf.WriteString(`<link rel="stylesheet" href="/_docsite/docsite.css"/>`)
	buf.WriteString(`<script src="/_docsite/search.js" defer></script>`)
	buf.WriteString(`</head><body`)
	if cls := bodyClass(c); cls != "" {
		buf.WriteString(` class="` + cls + `"`)
	}
	buf.WriteString(`>`)
}

func writeNavbar(buf *bytes.Buffer, c Chrome) {
	if c.HideNavbar == "always" {
		return
	}
	buf.WriteString(`<header class="navbar" data-hide-navbar="` + esc(c.HideNavbar) + `">`)
	buf.WriteString(`<a class="brand" href="/">`)
	if logo := c.Logo(); logo != "" {
		buf.WriteString(`<img class="logo" src="` + esc(logo) + `" alt="" width="24" height="24"/>`)
	}
	if c.LogoText != "" {
		buf.WriteString(`<span>` + esc(c.LogoText) + `</span>`)
	}
	buf.WriteString(`</a>`)
	buf.WriteString(`<form class="search" role="search" action="/api/search" method="get"><input type="search" name="q" placeholder="搜索文档" autocomplete="off"/></form>`)
	buf.WriteString(`<nav class="social">`)
	for _, s := range c.SocialLinks {
		buf.WriteString(`<a href="` + esc(s.URL) + `" target="_blank" rel="` + ExternalLinkRel + `" class="social-` + esc(s.Icon) + `" aria-label="` + esc(s.Icon) + `">` + esc(s.Icon) + `</a>`)
	}
	buf.WriteString(`</nav>`)
	buf.WriteString(`<form class="appearance" action="/_docsite/appearance" method="post"><input type="hidden" name="_csrf" value="` + esc(c.CSRFToken) + `"/><button type="submit" aria-label="切换外观">`)
	if c.Dark {
		buf.WriteString(`☀`)
	} else {
		buf.WriteString(`☾`)
	}
	buf.WriteString(`</button></form></header>`)
}

func writeSidebar(buf *bytes.Buffer, groups []NavGroup) {
	buf.WriteString(`<aside class="sidebar"><nav>`)
	for _, g := range groups {
		buf.WriteString(`<section>`)
		if g.Title != "" {
			buf.WriteString(`<h4>` + esc(g.Title) + `</h4>`)
		}
		buf.WriteString(`<ul>`)
		for _, it := range g.Items {
			buf.WriteString(`<li><a href="` + esc(it.URL) + `"`)
			if it.Active {
				buf.WriteString(` class="active" aria-current="page"`)
			}
			buf.WriteString(`>` + esc(it.Title) + `</a></li>`)
		}
		buf.WriteString(`</ul></section>`)
	}
	buf.WriteString(`</nav></aside>`)
}

func writeContent(buf *bytes.Buffer, c Chrome, p PageView) {
	buf.WriteString(`<main class="content`)
	if c.ContentAnimation {
		buf.WriteString(` content-animation`)
	}
	buf.WriteString(`"><article class="doc">`)
	buf.WriteString(p.HTML)
	buf.WriteString(`</article><footer class="doc-footer">`)
	if href := EditURL(c.EditLinkBase, p.SourcePath); href != "" {
		buf.WriteString(`<a class="edit-link" href="` + esc(href) + `" target="_blank" rel="` + ExternalLinkRel + `">` + esc(c.EditLinkText) + `</a>`)
	}
	if c.LastUpdated {
		if stamp := FormatLastUpdated(p.LastUpdated); stamp != "" {
			buf.WriteString(`<p class="last-updated">` + esc(c.LastUpdatedText) + `: <time datetime="` + p.LastUpdated.UTC().Format("2006-01-02T15:04:05Z") + `">` + stamp + `</time></p>`)
		}
	}
	if p.Prev != nil || p.Next != nil {
		buf.WriteString(`<nav class="pager">`)
		if p.Prev != nil {
			buf.WriteString(`<a class="prev" href="` + esc(p.Prev.URL) + `"><span>` + esc(c.PrevPageText) + `</span>` + esc(p.Prev.Title) + `</a>`)
		}
		if p.Next != nil {
			buf.WriteString(`<a class="next" href="` + esc(p.Next.URL) + `"><span>` + esc(c.NextPageText) + `</span>` + esc(p.Next.Title) + `</a>`)
		}
		buf.WriteString(`</nav>`)
	}
	buf.WriteString(`</footer></main>`)
}

func writeOutline(buf *bytes.Buffer, title string, headings []Heading) {
	buf.WriteString(`<aside class="outline"><h4>` + esc(title) + `</h4><ul>`)
	for _, h := range headings {
		buf.WriteString(`<li class="level-` + strconv.Itoa(h.Level) + `"><a href="#` + esc(h.ID) + `">` + esc(h.Text) + `</a></li>`)
	}
	buf.WriteString(`</ul></aside>`)
}

func writeFoot(buf *bytes.Buffer, c Chrome) {
	if c.ScrollToTop {
		buf.WriteString(`<a class="scroll-to-top" href="#" aria-label="回到顶部">↑</a>`)
	}
	buf.WriteString(`</body></html>`)
}
