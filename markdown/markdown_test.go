package markdown

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTitleAndHeadings(t *testing.T) {
	src := "# Polars 简介\n\nPolars 是一个 DataFrame 库。\n\n## Installation\n\ntext\n\n### Using pip\n\n#### deep\n"
	doc, err := New(Options{}).Render([]byte(src))
	require.NoError(t, err)

	assert.Equal(t, "Polars 简介", doc.Title)
	require.Len(t, doc.Headings, 2)
	assert.Equal(t, Heading{Level: 2, ID: "installation", Text: "Installation"}, doc.Headings[0])
	assert.Equal(t, 3, doc.Headings[1].Level)
	assert.Equal(t, "using-pip", doc.Headings[1].ID)
	assert.Contains(t, doc.HTML, `<h2 id="installation">Installation</h2>`)
}

func TestRenderSeparatesProseAndCode(t *testing.T) {
	src := "Select columns with `select`.\n\n```python\ndf.select(pl.col(\"a\"))\n```\n"
	doc, err := New(Options{}).Render([]byte(src))
	require.NoError(t, err)

	assert.Contains(t, doc.Text, "Select columns with")
	assert.Contains(t, doc.Text, "select")
	assert.NotContains(t, doc.Text, "pl.col")
	assert.Equal(t, "df.select(pl.col(\"a\"))\n", doc.Code)
}

func TestRenderCodeBlockWithLanguage(t *testing.T) {
	src := "```python\nimport polars as pl\n```"
	doc, err := New(Options{}).Render([]byte(src))
	require.NoError(t, err)

	assert.Contains(t, doc.HTML, `<span class="code-lang code-lang-python">python</span>`)
	assert.Contains(t, doc.HTML, `<code class="language-python">import polars as pl`)
	assert.NotContains(t, doc.HTML, `class="line"`)
}

func TestRenderCodeBlockLineNumbers(t *testing.T) {
	src := "```\na < b\nc\n```"
	doc, err := New(Options{ShowLineNumbers: true}).Render([]byte(src))
	require.NoError(t, err)

	assert.Contains(t, doc.HTML, `<pre class="code-block"><code><span class="line" data-line="1">a &lt; b</span>`)
	assert.Contains(t, doc.HTML, `<span class="line" data-line="2">c</span>`)
	assert.NotContains(t, doc.HTML, `code-block-wrapper`)
}

func TestRenderTables(t *testing.T) {
	src := "| a | b |\n|---|---|\n| 1 | 2 |\n"
	doc, err := New(Options{}).Render([]byte(src))
	require.NoError(t, err)
	assert.Contains(t, doc.HTML, "<table>")
	assert.Contains(t, doc.HTML, "<td>1</td>")
}

func TestExpandLinks(t *testing.T) {
	src := []byte(`参考 <Link description="GitHub" href="https://github.com/pola-rs/polars" /> 获取源码`)
	out := string(ExpandLinks(src))

	assert.NotContains(t, out, "<Link")
	assert.Contains(t, out, `href="https://github.com/pola-rs/polars"`)
	assert.Contains(t, out, `target="_blank" rel="noopener noreferrer"`)
	assert.Contains(t, out, ">GitHub<svg")
	assert.True(t, strings.HasPrefix(out, "参考 <a "))
	assert.True(t, strings.HasSuffix(out, "</a> 获取源码"))
}

func TestExpandLinksAttributeForms(t *testing.T) {
	out := string(ExpandLinks([]byte(`<Link href='https://a.example' description={"A &amp; B"}></Link>`)))
	assert.Contains(t, out, `href="https://a.example"`)
	assert.Contains(t, out, `>A &amp; B<svg`)
	assert.NotContains(t, out, "</Link>")
}

func TestExpandLinksSkipsFencedCode(t *testing.T) {
	src := "```jsx\n<Link description=\"x\" href=\"y\" />\n```\n\n<Link description=\"x\" href=\"y\" />\n"
	out := string(ExpandLinks([]byte(src)))
	assert.Equal(t, 1, strings.Count(out, "<Link"))
	assert.Equal(t, 1, strings.Count(out, "<svg"))
}

func TestRenderExpandsLinkTags(t *testing.T) {
	doc, err := New(Options{}).Render([]byte("<Link description=\"Polars\" href=\"https://pola.rs\" />\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(doc.HTML, "<a "))
	assert.Contains(t, doc.HTML, `rel="noopener noreferrer"`)
}

func TestMarkdownComponent(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Markdown("**bold**").Render(context.Background(), &buf))
	assert.Contains(t, buf.String(), "<strong>bold</strong>")
}

func TestExpandLinksMultiLineTag(t *testing.T) {
	src := "参考\n\n<Link\n  description=\"Polars\"\n  href=\"https://pola.rs\"\n/>\n\n结束\n"
	out := string(ExpandLinks([]byte(src)))
	assert.NotContains(t, out, "<Link")
	assert.Contains(t, out, `href="https://pola.rs"`)
	assert.Contains(t, out, ">Polars<svg")
	assert.True(t, strings.HasPrefix(out, "参考\n\n<a "))
	assert.True(t, strings.HasSuffix(out, "</a>\n\n结束\n"))

	doc, err := New(Options{}).Render([]byte(src))
	require.NoError(t, err)
	assert.NotContains(t, doc.HTML, "<Link")
	assert.Contains(t, doc.HTML, `rel="noopener noreferrer"`)
}

func TestExpandLinksSkipsCodeSpans(t *testing.T) {
	src := "Write `<Link description=\"x\" href=\"y\" />` or ``a ` <Link href=\"y\"/>`` then <Link description=\"x\" href=\"y\" />\n"
	out := string(ExpandLinks([]byte(src)))
	assert.Contains(t, out, "`<Link description=\"x\" href=\"y\" />`")
	assert.Contains(t, out, "``a ` <Link href=\"y\"/>``")
	assert.Equal(t, 2, strings.Count(out, "<Link"))
	assert.Equal(t, 1, strings.Count(out, "<svg"))
}

func TestExpandLinksUnclosedBacktick(t *testing.T) {
	out := string(ExpandLinks([]byte("a ` b <Link description=\"x\" href=\"y\" />\n")))
	assert.NotContains(t, out, "<Link")
	assert.Equal(t, 1, strings.Count(out, "<svg"))
}

func TestExpandLinksSkipsIndentedCode(t *testing.T) {
	src := "示例:\n\n    <Link description=\"x\" href=\"y\" />\n\t<Link description=\"x\" href=\"y\" />\n\n<Link description=\"x\" href=\"y\" />\n"
	out := string(ExpandLinks([]byte(src)))
	assert.Contains(t, out, "\n    <Link description=\"x\" href=\"y\" />\n\t<Link")
	assert.Equal(t, 2, strings.Count(out, "<Link"))
	assert.Equal(t, 1, strings.Count(out, "<svg"))
}

func TestExpandLinksIndentedContinuationIsProse(t *testing.T) {
	// An indented line right after a paragraph line continues the paragraph.
	src := "see\n    <Link description=\"x\" href=\"y\" />\n"
	out := string(ExpandLinks([]byte(src)))
	assert.NotContains(t, out, "<Link")
}

func TestRenderUnicodeHeadingIDs(t *testing.T) {
	src := "## 安装\n\n## 安装\n\n### Polars 与 pandas\n\n## 数据读取（CSV）\n\n## !!!\n"
	doc, err := New(Options{}).Render([]byte(src))
	require.NoError(t, err)

	require.Len(t, doc.Headings, 5)
	var ids []string
	for _, h := range doc.Headings {
		ids = append(ids, h.ID)
	}
	assert.Equal(t, []string{"安装", "安装-1", "polars-与-pandas", "数据读取csv", "heading"}, ids)
	assert.Contains(t, doc.HTML, `<h2 id="安装">安装</h2>`)
	assert.Contains(t, doc.HTML, `<h3 id="polars-与-pandas">Polars 与 pandas</h3>`)
}

func TestRenderHeadingIDsPerDocument(t *testing.T) {
	r := New(Options{})
	for range 2 {
		doc, err := r.Render([]byte("## 安装\n"))
		require.NoError(t, err)
		require.Len(t, doc.Headings, 1)
		assert.Equal(t, "安装", doc.Headings[0].ID)
	}
}
