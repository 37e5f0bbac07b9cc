package toc

import "strings"

// RawHeading is a heading as found in the document, before its level is
// normalized.
type RawHeading struct {
	Region Region
	Level  int
	Text   string
	Line   int // 1-based line of the heading text
}

// Scan finds ATX and setext headings in text, in document order. depth
// limits ATX headings to at most that many '#' characters (0 means no
// limit). Only headings whose matched region ends after offset after are
// returned. Headings inside fenced code blocks are skipped; a leading
// "---" block gets no special treatment.
func Scan(text string, depth, after int) []RawHeading {
	lines := splitLines(text)
	areas := CodeBlockAreas(fenceRegions(lines))

	var headings []RawHeading
	for i := 0; i < len(lines); i++ {
		ln := lines[i]

		// Setext: a text line followed by an underline. Both lines are
		// consumed even when the text line is blank, so a lone "---" rule
		// never turns into a heading.
		if i+1 < len(lines) {
			if level, ok := setextLevel(lines[i+1].text); ok {
				under := lines[i+1]
				i++
				if strings.TrimSpace(ln.text) == "" {
					continue
				}
				headings = append(headings, RawHeading{
					Region: Region{Begin: ln.Begin, End: under.End},
					Level:  level,
					Text:   ln.text,
					Line:   ln.num,
				})
				continue
			}
		}

		level, title, ok := atxHeading(ln.text, depth)
		if !ok {
			continue
		}
		headings = append(headings, RawHeading{
			Region: Region{Begin: ln.Begin, End: ln.Begin + level + 1},
			Level:  level,
			Text:   title,
			Line:   ln.num,
		})
	}

	var kept []RawHeading
	for _, h := range headings {
		if h.Region.End <= after || insideAny(h.Region.Begin, areas) {
			continue
		}
		kept = append(kept, h)
	}
	return kept
}

// atxHeading matches "#{1,depth}[^#]" at the start of s.
func atxHeading(s string, depth int) (int, string, bool) {
	level := 0
	for level < len(s) && s[level] == '#' {
		level++
	}
	if level == 0 || level == len(s) {
		return 0, "", false
	}
	if depth > 0 && level > depth {
		return 0, "", false
	}
	title := strings.TrimLeft(s[level:], " \t")
	if strings.TrimSpace(title) == "" {
		return 0, "", false
	}
	return level, title, true
}

// setextLevel reports whether s is a setext underline made only of '='
// (level 1) or only of '-' (level 2).
func setextLevel(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	c := s[0]
	if c != '=' && c != '-' {
		return 0, false
	}
	if strings.Trim(s, string(c)) != "" {
		return 0, false
	}
	if c == '=' {
		return 1, true
	}
	return 2, true
}
