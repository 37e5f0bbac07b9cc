package toc

import "strings"

// Markdown renders the entry as a list item body (without indent and "- ").
func (e Entry) Markdown(bracket Bracket) string {
	if !e.Linked {
		return e.Text
	}
	if bracket == BracketRound {
		return "[" + e.Text + "](#" + e.Anchor + ")"
	}
	return "[" + e.Text + "][" + e.Anchor + "]"
}

// Render writes entries as a tab-indented bullet list, one newline
// terminated line per entry. It returns "" for an empty entry list.
func Render(entries []Entry, opts Options) string {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(strings.Repeat("\t", e.Level-1))
		b.WriteString("- ")
		b.WriteString(e.Markdown(opts.Bracket))
		b.WriteByte('\n')
	}
	return b.String()
}
