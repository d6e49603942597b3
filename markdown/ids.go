package markdown

import (
	"bytes"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
)

// headingIDs generates element ids that keep non-ASCII letters, so a Chinese
// heading gets an anchor like "安装" instead of "heading-1". Spaces, '-' and
// '_' become '-'; other punctuation is dropped.
type headingIDs struct {
	used map[string]bool
}

var _ parser.IDs = (*headingIDs)(nil)

func newHeadingIDs() *headingIDs {
	return &headingIDs{used: map[string]bool{}}
}

func (s *headingIDs) Generate(value []byte, kind ast.NodeKind) []byte {
	value = bytes.TrimSpace(value)
	result := make([]byte, 0, len(value))
	for len(value) > 0 {
		r, n := utf8.DecodeRune(value)
		value = value[n:]
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			result = utf8.AppendRune(result, unicode.ToLower(r))
		case unicode.IsSpace(r) || r == '-' || r == '_':
			result = append(result, '-')
		}
	}
	if len(result) == 0 {
		if kind == ast.KindHeading {
			result = []byte("heading")
		} else {
			result = []byte("id")
		}
	}
	id := string(result)
	if !s.used[id] {
		s.used[id] = true
		return result
	}
	for i := 1; ; i++ {
		next := id + "-" + strconv.Itoa(i)
		if !s.used[next] {
			s.used[next] = true
			return []byte(next)
		}
	}
}

func (s *headingIDs) Put(value []byte) {
	s.used[string(value)] = true
}
