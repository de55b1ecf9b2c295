package crawl

import (
	"net/url"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/bloom"
)

// Compile-time interface verification.
var _ docdex.Frontier = (*Frontier)(nil)

// Frontier is the in-memory breadth-first crawl queue. Entries are popped in
// strict FIFO order, which yields true level order because depths are
// enqueued monotonically. Admission inserts into the visited set immediately
// so a URL can never be enqueued twice.
//
// A Frontier is owned by a single run and is not safe for concurrent use.
type Frontier struct {
	cfg      docdex.ImportConfig
	seedHost string

	queue         []docdex.FrontierEntry
	visited       map[string]struct{}
	totalEnqueued int

	// skip holds URLs indexed by a previous run. A Bloom filter is exact
	// enough here: a false positive skips a new URL on an incremental run,
	// which the next full run picks up.
	skip *bloom.Filter
}

// Option configures a Frontier.
type Option func(*Frontier)

// WithSkipList makes the frontier reject URLs present in the filter,
// supporting incremental runs that skip already-indexed pages.
func WithSkipList(filter *bloom.Filter) Option {
	return func(f *Frontier) {
		f.skip = filter
	}
}

// NewFrontier creates a frontier scoped to the seed's host with the run's
// depth, page-count, and pattern bounds.
func NewFrontier(cfg docdex.ImportConfig, seedHost string, opts ...Option) *Frontier {
	f := &Frontier{
		cfg:      cfg,
		seedHost: seedHost,
		visited:  make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Enqueue admits a URL at the given depth. A URL is admitted only if the
// page budget has room, it normalizes cleanly, its host matches the seed
// host, it passes the include/exclude filters, its depth is within bounds,
// and it has not been seen before. Returns false for rejected URLs.
func (f *Frontier) Enqueue(rawURL string, depth int, origin string) bool {
	if f.totalEnqueued >= f.cfg.MaxPagesPerSite {
		return false
	}
	if depth > f.cfg.MaxDepth {
		return false
	}

	norm, err := NormalizeURL(rawURL)
	if err != nil {
		return false
	}
	u, err := url.Parse(norm)
	if err != nil || u.Host != f.seedHost {
		return false
	}
	if !f.cfg.MatchesPatterns(norm) {
		return false
	}
	if _, ok := f.visited[norm]; ok {
		return false
	}
	if f.skip != nil && f.skip.Test(norm) {
		return false
	}

	f.visited[norm] = struct{}{}
	f.totalEnqueued++
	f.queue = append(f.queue, docdex.FrontierEntry{
		URL:    norm,
		Depth:  depth,
		Origin: origin,
	})
	return true
}

// Next pops the earliest-discovered entry at the lowest pending depth.
func (f *Frontier) Next() (docdex.FrontierEntry, bool) {
	if len(f.queue) == 0 {
		return docdex.FrontierEntry{}, false
	}
	entry := f.queue[0]
	f.queue = f.queue[1:]
	return entry, true
}

// IsExhausted reports whether the queue has drained. Admission already caps
// total entries at the page budget, so draining the queue ends the run.
func (f *Frontier) IsExhausted() bool {
	return len(f.queue) == 0
}

// Visited reports whether the URL has been fetched or enqueued this run.
func (f *Frontier) Visited(rawURL string) bool {
	norm, err := NormalizeURL(rawURL)
	if err != nil {
		return false
	}
	_, ok := f.visited[norm]
	return ok
}

// VisitedCount returns the size of the visited set.
func (f *Frontier) VisitedCount() int {
	return len(f.visited)
}

// Len returns the number of queued entries.
func (f *Frontier) Len() int {
	return len(f.queue)
}
