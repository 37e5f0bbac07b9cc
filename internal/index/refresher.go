package index

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/pfassina/mdtoc/internal/command"
	"github.com/pfassina/mdtoc/internal/document"
	"github.com/pfassina/mdtoc/internal/logging"
	"github.com/pfassina/mdtoc/internal/toc"
)

// Refresher refreshes the TOC of markdown files under a root directory and
// journals each result.
type Refresher struct {
	db     *DB
	runner *command.Runner
	opts   toc.Options
	root   string
	logger *log.Logger
}

func NewRefresher(db *DB, runner *command.Runner, opts toc.Options, root string, logger *log.Logger) *Refresher {
	return &Refresher{
		db:     db,
		runner: runner,
		opts:   opts,
		root:   root,
		logger: logging.OrDiscard(logger),
	}
}

// RefreshAll refreshes every markdown file under the root, skipping hidden
// directories. Failures on single files are logged and do not stop the walk.
func (r *Refresher) RefreshAll() error {
	return filepath.Walk(r.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}

		if info.IsDir() && strings.HasPrefix(info.Name(), ".") && path != r.root {
			return filepath.SkipDir
		}

		if info.IsDir() || !command.IsMarkdownExt(info.Name()) {
			return nil
		}

		if _, err := r.RefreshFile(path); err != nil {
			r.logger.Warn("refresh failed", "path", path, "err", err)
		}
		return nil
	})
}

// RefreshFile refreshes one file unless its content matches the journaled
// hash. It reports whether the file was processed.
func (r *Refresher) RefreshFile(absPath string) (bool, error) {
	content, err := os.ReadFile(absPath)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", absPath, err)
	}

	rel := r.relPath(absPath)
	existing, err := r.db.Hash(rel)
	if err != nil {
		return false, fmt.Errorf("journal hash: %w", err)
	}
	if hashOf(content) == existing {
		return false, nil // unchanged since our last pass
	}

	f, err := document.OpenFile(absPath)
	if err != nil {
		return false, err
	}
	res, err := r.runner.RefreshIfPresent(&command.FileHost{File: f})
	if err != nil {
		return false, err
	}

	text, err := f.Text()
	if err != nil {
		return false, err
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", absPath, err)
	}

	var entries []toc.Entry
	if pair, ok := toc.LocateMarkers(text, r.opts); ok {
		entries = toc.Entries(text, pair.Close.End, pair.Options)
	}

	rec := Record{
		Path:    rel,
		Hash:    hashOf([]byte(text)),
		Outcome: res.Outcome.String(),
		Entries: len(entries),
		ModTime: info.ModTime(),
	}
	if err := r.db.Record(rec, entries); err != nil {
		return false, fmt.Errorf("journal %s: %w", rel, err)
	}

	r.logger.Info(res.Outcome.String(), "path", rel, "changed", res.Changed, "entries", len(entries))
	return true, nil
}

// RemoveFile drops a file from the journal.
func (r *Refresher) RemoveFile(absPath string) error {
	return r.db.Delete(r.relPath(absPath))
}

func (r *Refresher) relPath(absPath string) string {
	rel, err := filepath.Rel(r.root, absPath)
	if err != nil {
		return absPath
	}
	return filepath.ToSlash(rel)
}

func hashOf(content []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(content))
}
