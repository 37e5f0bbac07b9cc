package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfassina/mdtoc/internal/index"
	"github.com/pfassina/mdtoc/internal/markdown"
	"github.com/pfassina/mdtoc/internal/toc"
)

// CheckReport renders the result of an anchor check for one file.
func (s Styles) CheckReport(path string, r markdown.Report) string {
	var b strings.Builder
	if r.OK() {
		fmt.Fprintf(&b, "%s %s %s\n", s.OK.Render("ok"), path,
			s.Dim.Render(fmt.Sprintf("(%d anchors, %d skipped)", r.Checked, r.Skipped)))
		return b.String()
	}

	fmt.Fprintf(&b, "%s %s %s\n", s.Error.Render("FAIL"), path,
		s.Dim.Render(fmt.Sprintf("(%d of %d anchors unresolved)", len(r.Problems), r.Checked)))
	for _, p := range r.Problems {
		want := s.Dim.Render("no heading ID")
		if p.HeadingID != "" {
			want = "#" + p.HeadingID
		}
		fmt.Fprintf(&b, "  %s %s -> %s\n",
			s.Warn.Render(fmt.Sprintf("line %d:", p.Entry.Line)), "#"+p.Entry.Anchor, want)
	}
	return b.String()
}

// Outcome renders one command outcome for a file.
func (s Styles) Outcome(path string, outcome toc.Outcome, changed bool) string {
	style := s.Dim
	switch outcome {
	case toc.Refreshed, toc.Inserted:
		style = s.OK
	case toc.Emptied:
		style = s.Warn
	}
	note := ""
	if !changed && (outcome == toc.Refreshed || outcome == toc.Emptied) {
		note = s.Dim.Render(" (unchanged)")
	}
	return fmt.Sprintf("%s: %s%s\n", path, style.Render(outcome.String()), note)
}

// Journal renders the journal listing used by the status command.
func (s Styles) Journal(records []index.Record, now time.Time) string {
	if len(records) == 0 {
		return s.Dim.Render("no documents journaled yet") + "\n"
	}

	width := 0
	for _, r := range records {
		width = max(width, len(r.Path))
	}

	var b strings.Builder
	b.WriteString(s.Title.Render("Journal") + "\n")
	for _, r := range records {
		fmt.Fprintf(&b, "  %-*s  %3d entries  %-22s %s\n",
			width, r.Path, r.Entries, r.Outcome, s.Dim.Render(ago(now.Sub(r.UpdatedAt))))
	}
	return b.String()
}

func ago(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
