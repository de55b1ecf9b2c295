package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/docdex/docdex/crawl"
	docdexetree "github.com/docdex/docdex/etree"
	"github.com/docdex/docdex/fs"
	docdexgoquery "github.com/docdex/docdex/goquery"
	docdexhttp "github.com/docdex/docdex/http"
	docdexslog "github.com/docdex/docdex/slog"
	"github.com/docdex/docdex/sqlite"
	"github.com/docdex/docdex/toml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// ConfigPath overrides the config file location. Set before calling Run().
	ConfigPath string

	// SQLite database holding run history.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPath: defaultConfigPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docdex"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docdex --help' to see available commands")
	}
	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if cli.Config != "" {
		m.ConfigPath = cli.Config
	}
	cfg, err := toml.Load(m.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config %q: %w", m.ConfigPath, err)
	}

	deps.Config = cfg
	deps.Logger = newLogger(stderr, cfg.Logging)

	// Open run history database
	m.DB = sqlite.NewDB(databasePath(cfg))
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set DOCDEX_DB to use a different database path\n")
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer m.Close()

	deps.DB = m.DB
	deps.Runs = sqlite.NewRunService(m.DB)
	deps.Snapshots = docdexslog.NewLoggingSnapshotStore(
		fs.NewSnapshotStore(snapshotPath(cfg)), deps.Logger)
	deps.Corpus = crawl.NewCorpus()

	fetcher := docdexhttp.NewFetcher(fetcherOptions(cfg)...)
	defer fetcher.Close()

	deps.Importer = &crawl.Importer{
		Fetcher:   docdexslog.NewLoggingFetcher(fetcher, deps.Logger),
		Extractor: docdexgoquery.NewExtractor(),
		Links:     docdexgoquery.NewLinkResolver(),
		Sitemaps: docdexslog.NewLoggingSitemapResolver(
			docdexetree.NewSitemapResolver(fetcher), deps.Logger),
		Corpus:    deps.Corpus,
		Snapshots: deps.Snapshots,
		Runs:      deps.Runs,
		Logger:    deps.Logger,
	}

	return kongCtx.Run(deps)
}

// newLogger builds the CLI logger from the logging config section.
func newLogger(w io.Writer, cfg toml.LoggingConfig) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

func fetcherOptions(cfg *toml.Config) []docdexhttp.Option {
	var opts []docdexhttp.Option
	if cfg.UserAgent != "" {
		opts = append(opts, docdexhttp.WithUserAgent(cfg.UserAgent))
	}
	return opts
}

func defaultConfigPath() string {
	return filepath.Join(dataDir(), "config.toml")
}

func databasePath(cfg *toml.Config) string {
	if path := os.Getenv("DOCDEX_DB"); path != "" {
		return path
	}
	if cfg.DatabasePath != "" {
		return cfg.DatabasePath
	}
	return filepath.Join(dataDir(), "docdex.db")
}

func snapshotPath(cfg *toml.Config) string {
	if path := os.Getenv("DOCDEX_SNAPSHOT"); path != "" {
		return path
	}
	if cfg.SnapshotPath != "" {
		return cfg.SnapshotPath
	}
	return filepath.Join(dataDir(), "snapshot.json")
}

func dataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".docdex"
	}
	dir := filepath.Join(home, ".docdex")
	_ = os.MkdirAll(dir, 0755)
	return dir
}
