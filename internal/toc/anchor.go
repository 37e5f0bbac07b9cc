package toc

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	tagPattern    = regexp.MustCompile(`<.*?>`)
	anchorPattern = regexp.MustCompile(`\[.+?\]`)

	// reservedChars are stripped from generated anchors.
	reservedChars = strings.NewReplacer(
		"!", "", "#", "", "$", "", "&", "", "'", "",
		"(", "", ")", "", "*", "", "+", "", ",", "",
		"/", "", ":", "", ";", "", "=", "", "?", "",
		"@", "", "[", "", "]", "", "`", "",
	)
)

// Entry is one line of a table of contents.
type Entry struct {
	Level  int
	Text   string
	Anchor string
	// Linked entries render as links, even when Anchor is empty.
	Linked bool
	// Explicit is set when Anchor came from a [label] in the heading text.
	Explicit bool
	Line     int
}

// Slug lower-cases text, turns spaces into hyphens and strips reserved
// characters.
func Slug(text string) string {
	return reservedChars.Replace(strings.ReplaceAll(strings.ToLower(text), " ", "-"))
}

// Generate derives TOC entries from normalized headings. Generated anchors
// are unique within the returned slice; explicit anchors are used verbatim.
func Generate(headings []Heading, opts Options) []Entry {
	entries := make([]Entry, 0, len(headings))
	seen := map[string]int{}
	used := map[string]bool{}

	for _, h := range headings {
		text := tagPattern.ReplaceAllString(h.Text, "")
		text = strings.TrimRight(text, " \t")

		e := Entry{Level: h.Level, Text: text, Line: h.Line}

		if loc := anchorPattern.FindStringIndex(text); loc != nil {
			label := text[loc[0]:loc[1]]
			e.Text = strings.TrimSpace(text[:loc[0]])
			e.Anchor = strings.NewReplacer("[", "", "]", "").Replace(label)
			e.Linked, e.Explicit = true, true
		} else if opts.Autolink {
			e.Anchor = uniqueAnchor(Slug(text), seen, used)
			e.Linked = true
		}

		entries = append(entries, e)
	}
	return entries
}

// uniqueAnchor suffixes repeated slugs with -1, -2, ... and skips any
// candidate that an earlier heading already produced.
func uniqueAnchor(slug string, seen map[string]int, used map[string]bool) string {
	n := seen[slug]
	seen[slug] = n + 1
	anchor := slug
	if n > 0 {
		anchor = slug + "-" + strconv.Itoa(n)
	}
	for used[anchor] {
		n++
		seen[slug] = n + 1
		anchor = slug + "-" + strconv.Itoa(n)
	}
	used[anchor] = true
	return anchor
}
