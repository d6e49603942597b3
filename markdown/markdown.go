// Package markdown renders documentation pages with goldmark and extracts the
// pieces the site needs around the HTML: title, outline and searchable text.
package markdown

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Options controls rendering.
type Options struct {
	ShowLineNumbers bool
}

// Heading is an outline entry taken from an h2 or h3.
type Heading struct {
	Level int
	ID    string
	Text  string
}

// Document is the result of rendering one page.
type Document struct {
	HTML     string
	Title    string // text of the first h1, if any
	Headings []Heading
	Text     string // prose, without code
	Code     string // contents of code blocks
}

// Renderer is safe for concurrent use.
type Renderer struct {
	md goldmark.Markdown
}

// New builds a Renderer with GFM, heading IDs and raw HTML passthrough.
func New(opts Options) *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
			renderer.WithNodeRenderers(
				util.Prioritized(&codeBlockRenderer{lineNumbers: opts.ShowLineNumbers}, 100),
			),
		),
	)
	return &Renderer{md: md}
}

// Render expands <Link/> tags in src and converts it to HTML.
func (r *Renderer) Render(src []byte) (Document, error) {
	src = ExpandLinks(src)
	pc := parser.NewContext(parser.WithIDs(newHeadingIDs()))
	doc := r.md.Parser().Parse(text.NewReader(src), parser.WithContext(pc))

	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, src, doc); err != nil {
		return Document{}, fmt.Errorf("markdown: render: %w", err)
	}
	out := Document{HTML: buf.String()}
	collect(doc, src, &out)
	return out, nil
}

// Markdown returns a templ.Component that renders content with default options.
func Markdown(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		doc, err := New(Options{}).Render([]byte(content))
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, doc.HTML)
		return err
	})
}

func collect(doc ast.Node, src []byte, out *Document) {
	var prose, code strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Heading:
			txt := nodeText(n, src)
			if n.Level == 1 && out.Title == "" {
				out.Title = txt
			}
			if n.Level == 2 || n.Level == 3 {
				id := ""
				if v, ok := n.AttributeString("id"); ok {
					if b, ok := v.([]byte); ok {
						id = string(b)
					}
				}
				out.Headings = append(out.Headings, Heading{Level: n.Level, ID: id, Text: txt})
			}
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				code.Write(seg.Value(src))
			}
			return ast.WalkSkipChildren, nil
		case *ast.CodeSpan:
			prose.WriteString(nodeText(n, src))
			prose.WriteByte(' ')
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			prose.Write(n.Segment.Value(src))
			if n.SoftLineBreak() || n.HardLineBreak() {
				prose.WriteByte(' ')
			}
		case *ast.String:
			prose.Write(n.Value)
		}
		if n.Kind() == ast.KindParagraph || n.Kind() == ast.KindHeading {
			if prose.Len() > 0 {
				prose.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})
	out.Text = strings.Join(strings.Fields(prose.String()), " ")
	out.Code = code.String()
}

// nodeText concatenates the text descendants of n.
func nodeText(n ast.Node, src []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch c := c.(type) {
		case *ast.Text:
			sb.Write(c.Segment.Value(src))
			if c.SoftLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(c.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}
