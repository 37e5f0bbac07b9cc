// Package command exposes the TOC actions a host editor binds to commands
// and save hooks.
package command

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/pfassina/mdtoc/internal/config"
	"github.com/pfassina/mdtoc/internal/document"
	"github.com/pfassina/mdtoc/internal/logging"
	"github.com/pfassina/mdtoc/internal/toc"
)

// Host is the document a command runs against.
type Host interface {
	document.Document
	// Cursor returns the byte offset of the cursor or selection start.
	Cursor() (int, error)
	// Status shows a transient message to the user.
	Status(msg string)
}

// Result reports what a command did.
type Result struct {
	Outcome toc.Outcome
	// Changed is false when the edit would not alter the document.
	Changed  bool
	Entries  int
	Warnings []string
}

// Runner runs TOC commands with one set of settings.
type Runner struct {
	settings config.Settings
	logger   *log.Logger
}

func NewRunner(settings config.Settings, logger *log.Logger) *Runner {
	return &Runner{settings: settings, logger: logging.OrDiscard(logger)}
}

// InsertOrRefresh refreshes the first marker pair, or inserts a new TOC at
// the cursor when the document has none.
func (r *Runner) InsertOrRefresh(h Host) (Result, error) {
	text, err := h.Text()
	if err != nil {
		return r.fail(h, fmt.Errorf("read document: %w", err))
	}

	edit, outcome, pair := toc.Refresh(text, r.settings.Options())
	if outcome == toc.NoMarker {
		cursor, err := h.Cursor()
		if err != nil {
			return r.fail(h, fmt.Errorf("read cursor: %w", err))
		}
		edit, outcome = toc.Insert(text, cursor, r.settings.Options())
	}
	return r.finish(h, text, edit, outcome, pair.Warnings)
}

// RefreshIfPresent refreshes the first marker pair and does nothing when the
// document has none.
func (r *Runner) RefreshIfPresent(h Host) (Result, error) {
	text, err := h.Text()
	if err != nil {
		return r.fail(h, fmt.Errorf("read document: %w", err))
	}
	edit, outcome, pair := toc.Refresh(text, r.settings.Options())
	return r.finish(h, text, edit, outcome, pair.Warnings)
}

// PreSave is the hook run before a document is persisted. It refreshes the
// TOC only for markdown file names.
func (r *Runner) PreSave(h Host, path string) (Result, error) {
	if !IsMarkdownExt(path) {
		r.logger.Debug("skipping non-markdown file", "path", path)
		return Result{Outcome: toc.Nothing}, nil
	}
	return r.RefreshIfPresent(h)
}

func (r *Runner) finish(h Host, text string, edit toc.Edit, outcome toc.Outcome, warnings []string) (Result, error) {
	res := Result{Outcome: outcome, Warnings: warnings}
	for _, w := range warnings {
		r.logger.Warn("marker attribute", "warning", w)
	}

	switch outcome {
	case toc.Refreshed, toc.Emptied, toc.Inserted:
		res.Entries = countEntries(edit.Text)
		if !edit.Noop(text) {
			if err := h.Apply(edit); err != nil {
				return r.fail(h, fmt.Errorf("apply edit: %w", err))
			}
			res.Changed = true
		}
	}

	r.logger.Debug(outcome.String(), "changed", res.Changed)
	if r.settings.Logging {
		h.Status(outcome.String())
	}
	return res, nil
}

func (r *Runner) fail(h Host, err error) (Result, error) {
	r.logger.Error("toc command failed", "err", err)
	h.Status("MarkdownTOC Error: " + err.Error())
	return Result{}, err
}

// countEntries counts the list lines of a generated TOC block.
func countEntries(block string) int {
	n := 0
	for _, ln := range strings.Split(block, "\n") {
		if strings.HasPrefix(strings.TrimLeft(ln, "\t"), "- ") {
			n++
		}
	}
	return n
}

var markdownExts = map[string]bool{
	".md":       true,
	".markdown": true,
	".mdown":    true,
	".mdwn":     true,
	".mkdn":     true,
	".mkd":      true,
	".mark":     true,
}

// IsMarkdownExt reports whether path has one of the markdown extensions the
// save hook acts on. The comparison ignores case.
func IsMarkdownExt(path string) bool {
	return markdownExts[strings.ToLower(filepath.Ext(path))]
}
