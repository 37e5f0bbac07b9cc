package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/pfassina/mdtoc/internal/command"
	"github.com/pfassina/mdtoc/internal/config"
	"github.com/pfassina/mdtoc/internal/logging"
	"github.com/pfassina/mdtoc/internal/ui"
)

// Env is shared by all subcommands.
type Env struct {
	Settings config.Settings
	Logger   *log.Logger
	Styles   ui.Styles
	Out      io.Writer
}

// Runner returns a command runner for the loaded settings.
func (e *Env) Runner() *command.Runner {
	return command.NewRunner(e.Settings, e.Logger)
}

// CLI definition & global flags.
type CLI struct {
	Config  []string `short:"c" type:"path" help:"Extra configuration file, applied after the user config (repeatable)"`
	Verbose bool     `short:"v" help:"Enable verbose logging"`

	Insert  InsertCmd  `cmd:"" help:"Insert a TOC at a line, or refresh the existing one"`
	Update  UpdateCmd  `cmd:"" help:"Refresh the TOC of files that already have one"`
	Check   CheckCmd   `cmd:"" help:"Verify generated anchors against rendered heading IDs"`
	Watch   WatchCmd   `cmd:"" help:"Refresh TOCs of markdown files under a directory as they change"`
	Status  StatusCmd  `cmd:"" help:"List the documents journaled by watch"`
	Outline OutlineCmd `cmd:"" help:"Browse a document's headings"`
	Nvim    NvimCmd    `cmd:"" help:"Serve the TOC commands to Neovim"`
}

// AfterApply runs after flag parsing; loads settings and sets up logging once.
func (c *CLI) AfterApply(ctx *kong.Context) error {
	logger := logging.New(os.Stderr, c.Verbose)

	settings, err := config.Load(c.Config...)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	for _, w := range settings.Warnings {
		logger.Warn("config", "warning", w)
	}

	ctx.Bind(&Env{
		Settings: settings,
		Logger:   logger,
		Styles:   ui.DefaultStyles(),
		Out:      os.Stdout,
	})
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("mdtoc"),
		kong.Description("Generate and refresh Markdown tables of contents."),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(ctx.Run())
}
