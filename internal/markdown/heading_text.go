package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var inlineParser = goldmark.New().Parser()

// headingText renders the inline Markdown of a heading as plain text, so
// emphasis markers, code backticks and link targets do not leak into slugs.
func headingText(raw string) string {
	if !strings.ContainsAny(raw, "*_`[]<>\\!&") {
		return raw
	}

	// Parsing as a heading keeps block syntax such as "1. Intro" inline.
	src := []byte("# " + raw)
	root := inlineParser.Parse(text.NewReader(src))

	var b strings.Builder
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.Text:
			b.Write(node.Segment.Value(src))
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *gmast.String:
			b.Write(node.Value)
		}
		return gmast.WalkContinue, nil
	})

	out := strings.TrimSpace(b.String())
	if out == "" {
		return raw
	}
	return out
}
