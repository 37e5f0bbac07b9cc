package markdown

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
)

// Heading is a heading as goldmark sees it.
type Heading struct {
	Level int
	Text  string
	ID    string
	Line  int // 1-based line number of the heading text
}

func collectHeadings(root ast.Node, source []byte) []Heading {
	var headings []Heading
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		heading := Heading{Level: h.Level, Text: inlineText(h, source)}
		if v, ok := h.AttributeString("id"); ok {
			if id, ok := v.([]byte); ok {
				heading.ID = string(id)
			}
		}
		if lines := h.Lines(); lines.Len() > 0 {
			heading.Line = bytes.Count(source[:lines.At(0).Start], []byte("\n")) + 1
		}
		headings = append(headings, heading)
		return ast.WalkSkipChildren, nil
	})
	return headings
}

// inlineText concatenates the literal text below n.
func inlineText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}
