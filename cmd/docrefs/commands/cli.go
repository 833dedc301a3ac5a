// Package commands implements the docrefs command-line interface.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"git.home.luguber.info/inful/docrefs/internal/config"
	"git.home.luguber.info/inful/docrefs/internal/foundation/errors"
	"git.home.luguber.info/inful/docrefs/internal/logfields"
	"git.home.luguber.info/inful/docrefs/internal/report"
)

// Global carries per-invocation state shared by every subcommand.
type Global struct {
	Ctx      context.Context
	Stdout   io.Writer
	Logger   *slog.Logger
	RunID    string
	ExitCode int // Outcome code set by commands that finish without error
}

// NewGlobal creates the shared state for one invocation.
func NewGlobal(ctx context.Context, stdout io.Writer) *Global {
	id := uuid.NewString()
	return &Global{
		Ctx:    ctx,
		Stdout: stdout,
		Logger: slog.Default().With(logfields.RunID(id)),
		RunID:  id,
	}
}

// setExit keeps the most severe outcome.
func (g *Global) setExit(code int) {
	if code > g.ExitCode {
		g.ExitCode = code
	}
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (default: docrefs.yaml when present)"`
	Root    string           `short:"r" help:"Documentation root, overrides the configuration"`
	Format  string           `short:"f" default:"text" enum:"text,json" help:"Output format (text or json)"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Check   CheckCmd   `cmd:"" default:"withargs" help:"Validate links, anchors and navigation"`
	Suggest SuggestCmd `cmd:"" help:"Suggest fixes for broken links"`
	Fix     FixCmd     `cmd:"" help:"Rewrite broken links and record redirects"`
	Nav     NavCmd     `cmd:"" help:"Show the navigation tree and its problems"`
	Anchor  AnchorCmd  `cmd:"" help:"Print the anchor a heading would receive"`
	Watch   WatchCmd   `cmd:"" help:"Re-check whenever documentation changes"`
	Init    InitCmd    `cmd:"" help:"Write an example configuration file"`
}

// AfterApply runs after flag parsing; set up logging once. Configuration may
// refine the level later.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply(g *Global) error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	installLogger(g, slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return nil
}

// configureLogging applies the configured level and format unless --verbose
// already forced debug output.
func (c *CLI) configureLogging(g *Global, cfg *config.Config) {
	level := cfg.Log.Level.SlogLevel()
	if c.Verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Log.Format == config.LogFormatJSON {
		installLogger(g, slog.NewJSONHandler(os.Stderr, opts))
		return
	}
	installLogger(g, slog.NewTextHandler(os.Stderr, opts))
}

func installLogger(g *Global, h slog.Handler) {
	logger := slog.New(h)
	slog.SetDefault(logger)
	g.Logger = logger.With(logfields.RunID(g.RunID))
}

func (c *CLI) formatter() report.Formatter {
	return report.New(report.Format(c.Format))
}

// exitFor maps a check report onto the outcome exit codes.
func exitFor(r report.CheckReport) int {
	switch {
	case r.HasBroken():
		return errors.ExitBroken
	case r.HasWarnings():
		return errors.ExitWarnings
	default:
		return errors.ExitOK
	}
}
