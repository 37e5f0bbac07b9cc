// Package markdown reads documents with goldmark to cross-check generated
// TOC anchors against the heading IDs a renderer assigns.
package markdown

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Parser wraps goldmark with automatic heading IDs enabled.
type Parser struct {
	md goldmark.Markdown
}

func NewParser() *Parser {
	return &Parser{
		md: goldmark.New(goldmark.WithParserOptions(parser.WithAutoHeadingID())),
	}
}

// Parse parses markdown content and returns a parsed document.
func (p *Parser) Parse(content []byte) *ParsedDoc {
	doc := &ParsedDoc{
		Content:     content,
		Frontmatter: ExtractFrontmatter(content),
	}

	body := blankFrontmatter(content, doc.Frontmatter)
	root := p.md.Parser().Parse(text.NewReader(body))
	doc.Headings = collectHeadings(root, body)
	return doc
}

// ParsedDoc contains what the checks need from a markdown file.
type ParsedDoc struct {
	Content     []byte
	Frontmatter *Frontmatter
	Headings    []Heading
}

// Title returns the frontmatter title, or the text of the first top-level
// heading, or "".
func (d *ParsedDoc) Title() string {
	if d.Frontmatter != nil && d.Frontmatter.Title != "" {
		return d.Frontmatter.Title
	}
	for _, h := range d.Headings {
		if h.Level == 1 {
			return h.Text
		}
	}
	return ""
}
