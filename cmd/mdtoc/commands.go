package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/pfassina/mdtoc/internal/command"
	"github.com/pfassina/mdtoc/internal/editor"
	"github.com/pfassina/mdtoc/internal/index"
	"github.com/pfassina/mdtoc/internal/markdown"
	"github.com/pfassina/mdtoc/internal/outline"
	"github.com/pfassina/mdtoc/internal/toc"
)

// InsertCmd implements the 'insert' command.
type InsertCmd struct {
	File string `arg:"" type:"existingfile" help:"Markdown file"`
	At   int    `default:"1" help:"1-based line to insert the TOC at when the file has none"`
}

func (c *InsertCmd) Run(env *Env) error {
	h, err := command.OpenFileHost(c.File, c.At)
	if err != nil {
		return err
	}
	h.Notify = func(msg string) { env.Logger.Info(msg, "file", c.File) }

	res, err := env.Runner().InsertOrRefresh(h)
	if err != nil {
		return err
	}
	fmt.Fprint(env.Out, env.Styles.Outcome(c.File, res.Outcome, res.Changed))
	return nil
}

// UpdateCmd implements the 'update' command.
type UpdateCmd struct {
	Files []string `arg:"" type:"existingfile" help:"Markdown files"`
}

func (c *UpdateCmd) Run(env *Env) error {
	runner := env.Runner()
	var errs []error
	for _, path := range c.Files {
		h, err := command.OpenFileHost(path, 1)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		res, err := runner.RefreshIfPresent(h)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}
		fmt.Fprint(env.Out, env.Styles.Outcome(path, res.Outcome, res.Changed))
	}
	return errors.Join(errs...)
}

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	Files []string `arg:"" type:"existingfile" help:"Markdown files"`
}

func (c *CheckCmd) Run(env *Env) error {
	p := markdown.NewParser()
	failed := 0
	for _, path := range c.Files {
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		r := p.Check(content, env.Settings.Options())
		if !r.OK() {
			failed++
		}
		fmt.Fprint(env.Out, env.Styles.CheckReport(path, r))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files have unresolved anchors", failed, len(c.Files))
	}
	return nil
}

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Dir       string `arg:"" optional:"" type:"existingdir" default:"." help:"Directory to watch"`
	Journal   string `type:"path" help:"Journal database (default: data dir)"`
	NoInitial bool   `help:"Skip the initial refresh of every file"`
}

func (c *WatchCmd) Run(env *Env) error {
	root, err := filepath.Abs(c.Dir)
	if err != nil {
		return err
	}
	db, err := openJournal(c.Journal)
	if err != nil {
		return err
	}
	defer db.Close()

	refresher := index.NewRefresher(db, env.Runner(), env.Settings.Options(), root, env.Logger)
	if !c.NoInitial {
		if err := refresher.RefreshAll(); err != nil {
			return fmt.Errorf("initial refresh: %w", err)
		}
	}

	w, err := index.NewWatcher(refresher, root, env.Logger, nil)
	if err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		if err := w.Stop(); err != nil {
			env.Logger.Error("stop watcher", "err", err)
		}
	}()

	env.Logger.Info("watching", "dir", root)
	w.Start()
	return nil
}

// StatusCmd implements the 'status' command.
type StatusCmd struct {
	Journal string `type:"path" help:"Journal database (default: data dir)"`
}

func (c *StatusCmd) Run(env *Env) error {
	db, err := openJournal(c.Journal)
	if err != nil {
		return err
	}
	defer db.Close()

	records, err := db.List()
	if err != nil {
		return fmt.Errorf("read journal: %w", err)
	}
	fmt.Fprint(env.Out, env.Styles.Journal(records, time.Now()))
	return nil
}

func openJournal(path string) (*index.DB, error) {
	if path == "" {
		var err error
		if path, err = index.DefaultPath(); err != nil {
			return nil, err
		}
	}
	return index.Open(path)
}

// OutlineCmd implements the 'outline' command.
type OutlineCmd struct {
	File string `arg:"" type:"existingfile" help:"Markdown file"`
}

func (c *OutlineCmd) Run(env *Env) error {
	content, err := os.ReadFile(c.File)
	if err != nil {
		return err
	}

	title := markdown.NewParser().Parse(content).Title()
	if title == "" {
		title = filepath.Base(c.File)
	}

	e, ok, err := outline.Run(title, outlineEntries(string(content), env.Settings.Options()))
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintf(env.Out, "%s:%d\n", c.File, e.Line)
	}
	return nil
}

// outlineEntries lists every heading of text. Marker attributes apply when
// the document has a marker pair.
func outlineEntries(text string, defaults toc.Options) []toc.Entry {
	opts := defaults
	if pair, ok := toc.LocateMarkers(text, defaults); ok {
		opts = pair.Options
	}
	return toc.Entries(text, 0, opts)
}

// NvimCmd implements the 'nvim' command.
type NvimCmd struct {
	Listen  string `help:"Neovim socket to dial; stdio is used when empty"`
	Install bool   `help:"Install the Neovim loader plugin and exit"`
	Force   bool   `help:"Overwrite an existing loader plugin (with --install)"`
}

func (c *NvimCmd) Run(env *Env) error {
	if c.Install {
		if err := editor.CheckNvimVersion(); err != nil {
			env.Logger.Warn("nvim version", "err", err)
		}
		path, written, err := editor.InstallPlugin(c.Force)
		if err != nil {
			return err
		}
		if written {
			fmt.Fprintf(env.Out, "installed %s\n", path)
		} else {
			fmt.Fprintf(env.Out, "%s already exists (use --force to overwrite)\n", path)
		}
		return nil
	}

	var rpc *editor.RPC
	var err error
	if c.Listen != "" {
		rpc, err = editor.ConnectRPC(c.Listen, env.Logger)
	} else {
		rpc, err = editor.StdioRPC(os.Stdin, os.Stdout, env.Logger)
	}
	if err != nil {
		return err
	}
	defer rpc.Close()

	if err := rpc.Register(env.Runner()); err != nil {
		return fmt.Errorf("register commands: %w", err)
	}
	env.Logger.Debug("serving neovim")
	return rpc.Wait()
}
