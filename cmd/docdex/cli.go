package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/crawl"
	"github.com/docdex/docdex/sqlite"
	"github.com/docdex/docdex/toml"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Config    *toml.Config
	DB        *sqlite.DB
	Runs      docdex.RunService
	Snapshots docdex.SnapshotStore
	Importer  *crawl.Importer
	Corpus    *crawl.Corpus
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config string `short:"C" type:"path" help:"Path to config file (default ~/.docdex/config.toml)"`

	Import ImportCmd `cmd:"" help:"Crawl a documentation site into the corpus"`
	Search SearchCmd `cmd:"" help:"Search the indexed corpus"`
	Export ExportCmd `cmd:"" help:"Export the corpus as markdown files"`
	Runs   RunsCmd   `cmd:"" help:"List import run history"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	URL         string        `arg:"" help:"Seed URL"`
	Mode        string        `short:"m" default:"entireSite" enum:"singlePage,entireSite,sitemap" help:"Import mode"`
	MaxDepth    int           `help:"Maximum link depth from the seed"`
	MaxPages    int           `help:"Maximum pages per site"`
	Delay       time.Duration `help:"Delay between requests"`
	Include     []string      `short:"i" help:"Only crawl URLs containing one of these substrings (repeatable)"`
	Exclude     []string      `short:"x" help:"Skip URLs containing any of these substrings (repeatable)"`
	Incremental bool          `help:"Skip URLs already present in the snapshot"`
	Quiet       bool          `short:"q" help:"Suppress per-page progress output"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query string `arg:"" help:"Search query"`
	Limit int    `short:"n" default:"10" help:"Maximum number of results"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Dir string `arg:"" type:"path" help:"Output directory"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	Limit int `short:"n" default:"20" help:"Maximum number of runs to list"`
}
