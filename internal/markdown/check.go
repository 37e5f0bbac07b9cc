package markdown

import (
	"github.com/pfassina/mdtoc/internal/toc"
)

// Problem is a generated anchor that does not match the heading ID a
// renderer would assign.
type Problem struct {
	Entry toc.Entry
	// HeadingID is the renderer's ID for the heading on the same line, or ""
	// when the renderer does not see a heading there.
	HeadingID string
}

// Report summarizes a Check.
type Report struct {
	Checked  int
	Skipped  int // entries without a generated anchor
	Problems []Problem
}

// OK reports whether every checked anchor resolves.
func (r Report) OK() bool {
	return len(r.Problems) == 0
}

// Check builds the TOC entries of content the way a refresh would and
// verifies each generated anchor against goldmark's heading IDs. When the
// document has a marker pair its attributes apply and only the headings
// after it are checked.
func (p *Parser) Check(content []byte, defaults toc.Options) Report {
	text := string(content)
	opts, after := defaults, 0
	if pair, ok := toc.LocateMarkers(text, defaults); ok {
		opts, after = pair.Options, pair.Close.End
	}

	doc := p.Parse(content)
	ids := make(map[string]bool, len(doc.Headings))
	byLine := make(map[int]string, len(doc.Headings))
	for _, h := range doc.Headings {
		ids[h.ID] = true
		byLine[h.Line] = h.ID
	}

	var r Report
	for _, e := range toc.Entries(text, after, opts) {
		if !e.Linked || e.Explicit {
			r.Skipped++
			continue
		}
		r.Checked++
		if byLine[e.Line] == e.Anchor || (byLine[e.Line] == "" && ids[e.Anchor]) {
			continue
		}
		r.Problems = append(r.Problems, Problem{Entry: e, HeadingID: byLine[e.Line]})
	}
	return r
}
