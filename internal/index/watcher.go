package index

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/pfassina/mdtoc/internal/command"
	"github.com/pfassina/mdtoc/internal/logging"
)

const debounceDelay = 200 * time.Millisecond

// Watcher monitors a directory tree and refreshes markdown files after they
// are written.
type Watcher struct {
	refresher *Refresher
	watcher   *fsnotify.Watcher
	root      string
	logger    *log.Logger
	debounce  map[string]*time.Timer
	mu        sync.Mutex
	closed    bool
	onChange  func(path string) // called after a file was processed
}

func NewWatcher(refresher *Refresher, root string, logger *log.Logger, onChange func(path string)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		refresher: refresher,
		watcher:   fw,
		root:      root,
		logger:    logging.OrDiscard(logger),
		debounce:  make(map[string]*time.Timer),
		onChange:  onChange,
	}

	// Add root and subdirectories
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if isHidden(info.Name()) && path != root {
				return filepath.SkipDir
			}
			if err := fw.Add(path); err != nil {
				w.logger.Warn("cannot watch directory", "path", path, "err", err)
			}
		}
		return nil
	})
	if err != nil {
		_ = fw.Close()
		return nil, err
	}

	return w, nil
}

// Start begins watching for changes. Blocks until Stop is called.
func (w *Watcher) Start() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watch error", "err", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name

	if !watchable(path) {
		// But watch new directories
		if event.Has(fsnotify.Create) {
			info, err := os.Stat(path)
			if err == nil && info.IsDir() && !isHidden(info.Name()) {
				if err := w.watcher.Add(path); err != nil {
					w.logger.Warn("cannot watch directory", "path", path, "err", err)
				}
			}
		}
		return
	}

	// Debounce: wait before processing so editors finish their writes.
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if timer, ok := w.debounce[path]; ok {
		timer.Stop()
	}
	w.debounce[path] = time.AfterFunc(debounceDelay, func() {
		w.mu.Lock()
		delete(w.debounce, path)
		closed := w.closed
		w.mu.Unlock()
		if closed {
			return
		}
		w.process(path)
	})
}

func (w *Watcher) process(path string) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := w.refresher.RemoveFile(path); err != nil {
			w.logger.Warn("journal remove failed", "path", path, "err", err)
		}
		return
	}

	processed, err := w.refresher.RefreshFile(path)
	if err != nil {
		w.logger.Warn("refresh failed", "path", path, "err", err)
		return
	}
	if processed && w.onChange != nil {
		w.onChange(path)
	}
}

// Stop stops the watcher and cancels pending refreshes.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	w.closed = true
	for p, t := range w.debounce {
		t.Stop()
		delete(w.debounce, p)
	}
	w.mu.Unlock()
	return w.watcher.Close()
}

// watchable reports whether path is a visible markdown file.
func watchable(path string) bool {
	return command.IsMarkdownExt(path) && !isHidden(filepath.Base(path))
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
