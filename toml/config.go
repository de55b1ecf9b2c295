// Package toml loads the CLI configuration file.
package toml

import (
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/docdex/docdex"
)

// Config is the on-disk CLI configuration.
type Config struct {
	SnapshotPath string        `toml:"snapshot_path"`
	DatabasePath string        `toml:"database_path"`
	UserAgent    string        `toml:"user_agent"`
	Import       ImportConfig  `toml:"import"`
	Logging      LoggingConfig `toml:"logging"`
}

// ImportConfig holds the import defaults applied when flags are not given.
// Durations are strings ("500ms", "2s") for readability in the file.
type ImportConfig struct {
	MaxDepth         int      `toml:"max_depth"`
	MaxPagesPerSite  int      `toml:"max_pages_per_site"`
	Delay            string   `toml:"delay_between_requests"`
	IncludePatterns  []string `toml:"include_patterns"`
	ExcludePatterns  []string `toml:"exclude_patterns"`
	RespectRobotsTxt bool     `toml:"respect_robots_txt"`
}

// LoggingConfig configures the CLI logger.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Load reads a config file, applying defaults for unset fields.
// A missing file returns the defaults without error.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	} else if err != nil {
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// GetDelay parses the configured request delay, falling back to the
// documented default on absence or parse failure.
func (c ImportConfig) GetDelay() time.Duration {
	d, err := time.ParseDuration(c.Delay)
	if err != nil {
		return docdex.DefaultDelayBetweenRequests
	}
	return d
}

// ImportDefaults maps the file-level import section onto a run config for
// the given mode and seed.
func (c *Config) ImportDefaults(mode docdex.Mode, seedURL string) docdex.ImportConfig {
	return docdex.ImportConfig{
		Mode:                 mode,
		SeedURL:              seedURL,
		MaxDepth:             c.Import.MaxDepth,
		MaxPagesPerSite:      c.Import.MaxPagesPerSite,
		DelayBetweenRequests: c.Import.GetDelay(),
		IncludePatterns:      c.Import.IncludePatterns,
		ExcludePatterns:      c.Import.ExcludePatterns,
		RespectRobotsTxt:     c.Import.RespectRobotsTxt,
	}
}
