package markdown

import (
	"strconv"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// codeBlockRenderer replaces goldmark's fenced code output with the site's
// markup: a language badge and optional per-line numbering.
type codeBlockRenderer struct {
	lineNumbers bool
}

func (r *codeBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
}

func (r *codeBlockRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)
	lang := string(n.Language(source))

	if lang != "" {
		escapedLang := string(util.EscapeHTML([]byte(lang)))
		_, _ = w.WriteString(`<div class="code-block-wrapper"><span class="code-lang code-lang-` + escapedLang + `">` + escapedLang + `</span>`)
		_, _ = w.WriteString(`<pre class="code-block"><code class="language-` + escapedLang + `">`)
	} else {
		_, _ = w.WriteString(`<pre class="code-block"><code>`)
	}

	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		line := seg.Value(source)
		if r.lineNumbers {
			content := line
			if l := len(content); l > 0 && content[l-1] == '\n' {
				content = content[:l-1]
			}
			_, _ = w.WriteString(`<span class="line" data-line="` + strconv.Itoa(i+1) + `">`)
			_, _ = w.Write(util.EscapeHTML(content))
			_, _ = w.WriteString("</span>\n")
			continue
		}
		_, _ = w.Write(util.EscapeHTML(line))
	}

	_, _ = w.WriteString("</code></pre>")
	if lang != "" {
		_, _ = w.WriteString("</div>")
	}
	_ = w.WriteByte('\n')
	return ast.WalkSkipChildren, nil
}
