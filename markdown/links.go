package markdown

import (
	"bytes"
	"html"
	"regexp"

	"github.com/kamiertop/docsite/views"
)

var (
	// reLinkTag is anchored; [^>] also matches newlines so props may span lines.
	reLinkTag  = regexp.MustCompile(`^<Link\b([^>]*?)/?>(?:\s*</Link>)?`)
	reLinkAttr = regexp.MustCompile(`(\w+)\s*=\s*(?:"([^"]*)"|'([^']*)'|\{["']([^"']*)["']\})`)
)

// ExpandLinks replaces <Link description="..." href="..."/> tags with external
// link badge HTML. Tags may span several lines. Fenced and indented code
// blocks and backtick code spans are left untouched.
func ExpandLinks(src []byte) []byte {
	if !bytes.Contains(src, []byte("<Link")) {
		return src
	}
	var out, run bytes.Buffer
	out.Grow(len(src))
	flush := func() {
		out.Write(expandRun(run.Bytes()))
		run.Reset()
	}

	var fence []byte
	prevBlank, indented := true, false
	for _, line := range bytes.SplitAfter(src, []byte("\n")) {
		trimmed := bytes.TrimLeft(line, " \t")
		blank := len(bytes.TrimSpace(line)) == 0
		switch {
		case fence != nil:
			if bytes.HasPrefix(trimmed, fence) {
				fence = nil
			}
			out.Write(line)
		case !blank && isIndentedCode(line) && (prevBlank || indented):
			flush()
			indented = true
			out.Write(line)
		case fenceMarker(trimmed) != nil:
			flush()
			fence = fenceMarker(trimmed)
			indented = false
			out.Write(line)
		default:
			if !blank {
				indented = false
			}
			run.Write(line)
		}
		prevBlank = blank
	}
	flush()
	return out.Bytes()
}

func isIndentedCode(line []byte) bool {
	return bytes.HasPrefix(line, []byte("    ")) || bytes.HasPrefix(line, []byte("\t"))
}

func fenceMarker(line []byte) []byte {
	for _, f := range [][]byte{[]byte("```"), []byte("~~~")} {
		if bytes.HasPrefix(line, f) {
			return f
		}
	}
	return nil
}

// expandRun rewrites the <Link> tags of a run of prose lines, copying code
// spans verbatim.
func expandRun(b []byte) []byte {
	if !bytes.Contains(b, []byte("<Link")) {
		return b
	}
	var out bytes.Buffer
	out.Grow(len(b))
	for len(b) > 0 {
		i := bytes.IndexAny(b, "`<")
		if i < 0 {
			out.Write(b)
			break
		}
		out.Write(b[:i])
		b = b[i:]

		if b[0] == '`' {
			n := tickRun(b)
			if end := closingTicks(b[n:], n); end >= 0 {
				span := n + end + n
				out.Write(b[:span])
				b = b[span:]
				continue
			}
			out.Write(b[:n])
			b = b[n:]
			continue
		}

		if loc := reLinkTag.FindIndex(b); loc != nil {
			out.Write(expandLinkTag(b[:loc[1]]))
			b = b[loc[1]:]
			continue
		}
		out.WriteByte('<')
		b = b[1:]
	}
	return out.Bytes()
}

func tickRun(b []byte) int {
	n := 0
	for n < len(b) && b[n] == '`' {
		n++
	}
	return n
}

// closingTicks finds a backtick run of exactly n in b, stopping at the end of
// the paragraph. It returns the offset of that run or -1.
func closingTicks(b []byte, n int) int {
	if p := bytes.Index(b, []byte("\n\n")); p >= 0 {
		b = b[:p]
	}
	for off := 0; off < len(b); {
		i := bytes.IndexByte(b[off:], '`')
		if i < 0 {
			return -1
		}
		start := off + i
		m := tickRun(b[start:])
		if m == n {
			return start
		}
		off = start + m
	}
	return -1
}

func expandLinkTag(tag []byte) []byte {
	m := reLinkTag.FindSubmatch(tag)
	attrs := map[string]string{}
	for _, a := range reLinkAttr.FindAllSubmatch(m[1], -1) {
		val := a[2]
		if len(a[3]) > 0 {
			val = a[3]
		} else if len(a[4]) > 0 {
			val = a[4]
		}
		attrs[string(a[1])] = html.UnescapeString(string(val))
	}
	return []byte(views.LinkBadgeHTML(attrs["description"], attrs["href"]))
}
