package views

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testChrome() Chrome {
	return Chrome{
		Title:           "Polars中文指南",
		LogoText:        "Polars中文指南",
		LogoLight:       "/polars.svg",
		LogoDark:        "/polars-dark.svg",
		HideNavbar:      "auto",
		OutlineTitle:    "目录",
		PrevPageText:    "上一页",
		NextPageText:    "下一页",
		LastUpdatedText: "上次更新时间",
		SocialLinks:     []SocialLink{{Icon: "github", URL: "https://github.com/kamiertop/polars-doc"}},
		Nav: []NavGroup{{Items: []NavItem{
			{Title: "介绍", URL: "/"},
			{Title: "安装", URL: "/install"},
		}}},
	}
}

func TestPageLastUpdated(t *testing.T) {
	c := testChrome()
	c.LastUpdated = true
	p := PageView{Title: "介绍", URL: "/", HTML: "<h1>介绍</h1>", LastUpdated: time.Date(2025, 5, 27, 10, 0, 0, 0, time.UTC)}

	out := render(t, Page(c, p))
	assert.Contains(t, out, `<p class="last-updated">上次更新时间: <time`)

	c.LastUpdated = false
	out = render(t, Page(c, p))
	assert.NotContains(t, out, "last-updated")
}

func TestPageOutline(t *testing.T) {
	c := testChrome()
	p := PageView{Title: "t", URL: "/", Headings: []Heading{{Level: 2, ID: "select", Text: "选择列"}}}

	out := render(t, Page(c, p))
	assert.NotContains(t, out, `class="outline"`)

	c.Outline = true
	out = render(t, Page(c, p))
	assert.Contains(t, out, `<aside class="outline"><h4>目录</h4>`)
	assert.Contains(t, out, `<a href="#select">选择列</a>`)
}

func TestPageEditLink(t *testing.T) {
	c := testChrome()
	c.EditLinkText = "📝在 GitHub 上编辑此页"
	c.EditLinkBase = "https://github.com/kamiertop/polars-doc/tree/main/docs/"
	p := PageView{Title: "t", URL: "/guide/io", SourcePath: "guide/io.md"}

	out := render(t, Page(c, p))
	assert.Contains(t, out, `href="https://github.com/kamiertop/polars-doc/tree/main/docs/guide/io.md"`)
	assert.Contains(t, out, "📝在 GitHub 上编辑此页")
}

func TestPagePager(t *testing.T) {
	c := testChrome()
	p := PageView{
		Title: "安装",
		URL:   "/install",
		Prev:  &NavItem{Title: "介绍", URL: "/"},
	}
	out := render(t, Page(c, p))
	assert.Contains(t, out, `<a class="prev" href="/"><span>上一页</span>介绍</a>`)
	assert.NotContains(t, out, `class="next"`)
	assert.Contains(t, out, `<a href="/install" class="active" aria-current="page">安装</a>`)
}

func TestPageNavbar(t *testing.T) {
	c := testChrome()
	out := render(t, Page(c, PageView{Title: "x"}))
	assert.Contains(t, out, `data-hide-navbar="auto"`)
	assert.Contains(t, out, `src="/polars.svg"`)
	assert.Contains(t, out, `rel="noopener noreferrer"`)

	c.Dark = true
	out = render(t, Page(c, PageView{Title: "x"}))
	assert.Contains(t, out, `src="/polars-dark.svg"`)
	assert.True(t, strings.HasPrefix(out, `<!DOCTYPE html><html lang="zh-CN" class="dark">`))

	c.HideNavbar = "always"
	out = render(t, Page(c, PageView{Title: "x"}))
	assert.NotContains(t, out, `class="navbar"`)
}

func TestErrorPages(t *testing.T) {
	c := testChrome()
	out := render(t, NotFound(c))
	require.Contains(t, out, "<h1>404</h1>")
	out = render(t, ServerError(c))
	require.Contains(t, out, "<h1>500</h1>")
}

func TestEditURL(t *testing.T) {
	assert.Equal(t, "", EditURL("", "a.md"))
	assert.Equal(t, "https://x/docs/a/b.md", EditURL("https://x/docs", "a/b.md"))
	assert.Equal(t, "https://x/docs/a.md", EditURL("https://x/docs/", "/a.md"))
}

func TestPageEscapesChromeAndPageText(t *testing.T) {
	c := testChrome()
	c.Title = `A & "B"`
	c.LogoText = "<b>logo</b>"
	p := PageView{Title: "<script>x</script>", URL: "/", Headings: []Heading{{Level: 2, ID: `a"b`, Text: "1 < 2"}}}
	c.Outline = true

	out := render(t, Page(c, p))
	assert.Contains(t, out, "<title>&lt;script&gt;x&lt;/script&gt; | A &amp; &#34;B&#34;</title>")
	assert.Contains(t, out, "<span>&lt;b&gt;logo&lt;/b&gt;</span>")
	assert.Contains(t, out, `<a href="#a&#34;b">1 &lt; 2</a>`)
	assert.NotContains(t, out, "<script>x")
}
