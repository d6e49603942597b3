package views

import (
	"bytes"
	"context"
	"io"

	"github.com/a-h/templ"
)

// linkBadgeStyle is the fixed inline style of an external link badge.
const linkBadgeStyle = "color:#0070f3;font-weight:600;cursor:pointer;display:inline-flex;align-items:center;gap:4px;border:1px solid black;padding:15px 8px;border-radius:4px"

// ExternalLinkRel is the rel value of every anchor that opens a new browsing context.
const ExternalLinkRel = "noopener noreferrer"

// chainIcon is the two-link glyph drawn after the badge text.
const chainIcon = `<svg class="icon" viewBox="0 0 1024 1024" version="1.1" xmlns="http://www.w3.org/2000/svg" width="16" height="16" aria-hidden="true">` +
	`<path d="M574 665.4c-3.1-3.1-8.2-3.1-11.3 0L446.5 781.6c-53.8 53.8-144.6 59.5-204 0-59.5-59.5-53.8-150.2 0-204l116.2-116.2c3.1-3.1 3.1-8.2 0-11.3l-39.8-39.8c-3.1-3.1-8.2-3.1-11.3 0L191.4 526.5c-84.6 84.6-84.6 221.5 0 306s221.5 84.6 306 0l116.2-116.2c3.1-3.1 3.1-8.2 0-11.3L574 665.4zM832.6 191.4c-84.6-84.6-221.5-84.6-306 0L410.3 307.6c-3.1 3.1-3.1 8.2 0 11.3l39.7 39.7c3.1 3.1 8.2 3.1 11.3 0l116.2-116.2c53.8-53.8 144.6-59.5 204 0 59.5 59.5 53.8 150.2 0 204L665.3 562.6c-3.1 3.1-3.1 8.2 0 11.3l39.8 39.8c3.1 3.1 8.2 3.1 11.3 0l116.2-116.2c84.5-84.6 84.5-221.5 0-306.1z"></path>` +
	`<path d="M610.1 372.3c-3.1-3.1-8.2-3.1-11.3 0L372.3 598.7c-3.1 3.1-3.1 8.2 0 11.3l39.6 39.6c3.1 3.1 8.2 3.1 11.3 0l226.4-226.4c3.1-3.1 3.1-8.2 0-11.3l-39.5-39.6z"></path>` +
	`</svg>`

// ExternalLinkBadge renders a bordered inline link that opens href in a new
// tab. href is written as given; only attribute escaping is applied.
func ExternalLinkBadge(description, href string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		writeLinkBadge(&buf, description, href)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// LinkBadgeHTML returns the badge markup as a string, for callers that splice
// it into raw HTML such as rendered markdown.
func LinkBadgeHTML(description, href string) string {
	var buf bytes.Buffer
	writeLinkBadge(&buf, description, href)
	return buf.String()
}

func writeLinkBadge(buf *bytes.Buffer, description, href string) {
	buf.WriteString(`<a href="`)
	buf.WriteString(templ.EscapeString(href))
	buf.WriteString(`" target="_blank" rel="` + ExternalLinkRel + `" class="link-badge" style="` + linkBadgeStyle + `">`)
	buf.WriteString(templ.EscapeString(description))
	buf.WriteString(chainIcon)
	buf.WriteString(`</a>`)
}
