package docdex

import (
	"net/url"
	"strings"
	"time"
)

// Mode selects the import strategy for a run.
type Mode string

// Import modes.
const (
	ModeSinglePage Mode = "singlePage"
	ModeEntireSite Mode = "entireSite"
	ModeSitemap    Mode = "sitemap"
)

// Documented defaults for unset ImportConfig values.
const (
	DefaultMaxDepth             = 3
	DefaultMaxPagesPerSite      = 500
	DefaultDelayBetweenRequests = 500 * time.Millisecond
)

// ImportConfig configures one import run. It is immutable for the duration
// of the run.
type ImportConfig struct {
	Mode                 Mode          `json:"mode"`
	SeedURL              string        `json:"seedUrl"`
	MaxDepth             int           `json:"maxDepth"`
	MaxPagesPerSite      int           `json:"maxPagesPerSite"`
	DelayBetweenRequests time.Duration `json:"delayBetweenRequests"`
	IncludePatterns      []string      `json:"includePatterns,omitempty"`
	ExcludePatterns      []string      `json:"excludePatterns,omitempty"`

	// RespectRobotsTxt is advisory; enforcement is an external concern.
	RespectRobotsTxt bool `json:"respectRobotsTxt"`

	// SkipIndexed pre-seeds the visited set from the last snapshot so that
	// incremental runs skip already-indexed URLs.
	SkipIndexed bool `json:"skipIndexed"`
}

// WithDefaults returns a copy of the config with documented defaults applied
// to unset values.
func (c ImportConfig) WithDefaults() ImportConfig {
	if c.Mode == "" {
		c.Mode = ModeEntireSite
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = DefaultMaxDepth
	}
	if c.MaxPagesPerSite <= 0 {
		c.MaxPagesPerSite = DefaultMaxPagesPerSite
	}
	if c.DelayBetweenRequests <= 0 {
		c.DelayBetweenRequests = DefaultDelayBetweenRequests
	}
	return c
}

// Validate returns an error if the config cannot start a run.
func (c ImportConfig) Validate() error {
	switch c.Mode {
	case ModeSinglePage, ModeEntireSite, ModeSitemap:
	default:
		return Errorf(EINVALID, "unknown import mode %q", c.Mode)
	}
	if _, err := ParseSeed(c.SeedURL); err != nil {
		return err
	}
	return nil
}

// ParseSeed parses and validates a seed URL, returning its parsed form.
// The seed must be absolute with an http or https scheme and a host.
func ParseSeed(seed string) (*url.URL, error) {
	u, err := url.Parse(seed)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid seed URL %q: %v", seed, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, Errorf(EINVALID, "invalid seed URL %q: scheme and host required", seed)
	}
	return u, nil
}

// MatchesPatterns reports whether a URL passes the include/exclude substring
// filters. With include patterns set, the URL must contain at least one of
// them; a URL containing any exclude pattern is rejected.
func (c ImportConfig) MatchesPatterns(rawURL string) bool {
	if len(c.IncludePatterns) > 0 {
		matched := false
		for _, p := range c.IncludePatterns {
			if p != "" && strings.Contains(rawURL, p) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	for _, p := range c.ExcludePatterns {
		if p != "" && strings.Contains(rawURL, p) {
			return false
		}
	}
	return true
}
