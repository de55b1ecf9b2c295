// Package crawl provides the documentation import engine: a breadth-first
// URL frontier, the in-memory page corpus, and the orchestrator that drives
// fetching, extraction, link discovery, and persistence for one run.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/bloom"
)

// Bloom filter sizing for incremental-run skip lists.
const (
	skipListExpectedURLs      = 10000
	skipListFalsePositiveRate = 0.01
)

// ProgressType indicates the type of progress event.
type ProgressType int

// Progress event types.
const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressEvent reports progress during an import run. Total is the
// visited-plus-queued estimate, recomputed each iteration.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Err       error
}

// ProgressFunc is a callback for reporting import progress.
type ProgressFunc func(event ProgressEvent)

// Importer orchestrates import runs. It selects one of three modes (single
// page, whole-site BFS, sitemap-driven) and coordinates fetching, extraction,
// link discovery, frontier bookkeeping, and snapshot persistence.
//
// At most one run executes at a time; a second Run call while one is in
// progress is rejected with ECONFLICT. Fetches within a run are strictly
// sequential so that pacing stays deterministic.
type Importer struct {
	Fetcher   docdex.Fetcher
	Extractor docdex.Extractor
	Links     docdex.LinkResolver
	Sitemaps  docdex.SitemapResolver
	Corpus    *Corpus

	// Snapshots, if set, persists the corpus when a run completes or is
	// canceled, and seeds incremental runs.
	Snapshots docdex.SnapshotStore

	// Runs, if set, records run history.
	Runs docdex.RunService

	// Frontiers, if set, overrides frontier construction for whole-site
	// runs. Defaults to the in-memory BFS frontier.
	Frontiers func(cfg docdex.ImportConfig, seedHost string, skip *bloom.Filter) docdex.Frontier

	// Logger, if set, records per-URL diagnostics.
	Logger *slog.Logger

	// RetryDelays overrides the fetch retry backoff. Defaults to 1s/2s/4s.
	RetryDelays []time.Duration

	mu      sync.Mutex
	running bool
	status  docdex.RunStatus
}

// Status returns the importer's current lifecycle state: RunIdle before any
// run, RunRunning while one is in flight, and the last run's terminal state
// afterwards.
func (imp *Importer) Status() docdex.RunStatus {
	imp.mu.Lock()
	defer imp.mu.Unlock()
	if imp.status == "" {
		return docdex.RunIdle
	}
	return imp.status
}

// Run executes one import run described by cfg. It returns the run record
// with final counts. Per-URL fetch and parse failures do not abort the run;
// only configuration-level errors (bad seed, no sitemap) do. On context
// cancellation the run ends with status RunCancelled, an ECANCELED error is
// returned, and pages stored before cancellation are retained.
func (imp *Importer) Run(ctx context.Context, cfg docdex.ImportConfig, progress ProgressFunc) (*docdex.Run, error) {
	cfg = cfg.WithDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seed, err := docdex.ParseSeed(cfg.SeedURL)
	if err != nil {
		return nil, err
	}

	imp.mu.Lock()
	if imp.running {
		imp.mu.Unlock()
		return nil, docdex.Errorf(docdex.ECONFLICT, "an import run is already in progress")
	}
	imp.running = true
	imp.status = docdex.RunRunning
	imp.mu.Unlock()

	run := &docdex.Run{
		ID:        uuid.NewString(),
		SeedURL:   cfg.SeedURL,
		Mode:      cfg.Mode,
		Status:    docdex.RunRunning,
		StartedAt: time.Now().UTC(),
	}
	if imp.Runs != nil {
		if err := imp.Runs.CreateRun(ctx, run); err != nil {
			imp.log("run record create failed", "err", err)
		}
	}

	skip, err := imp.loadSkipList(ctx, cfg)
	if err != nil {
		imp.log("snapshot load failed, starting fresh", "err", err)
	}

	pacer := NewPacer(cfg.DelayBetweenRequests)

	var runErr error
	switch cfg.Mode {
	case docdex.ModeSinglePage:
		runErr = imp.runSinglePage(ctx, cfg, seed, run, pacer, progress)
	case docdex.ModeEntireSite:
		runErr = imp.runEntireSite(ctx, cfg, seed, run, pacer, skip, progress)
	case docdex.ModeSitemap:
		runErr = imp.runSitemap(ctx, cfg, seed, run, pacer, skip, progress)
	}

	switch {
	case runErr == nil:
		run.Status = docdex.RunComplete
	case docdex.ErrorCode(runErr) == docdex.ECANCELED:
		run.Status = docdex.RunCancelled
	default:
		run.Status = docdex.RunFailed
	}
	run.FinishedAt = time.Now().UTC()

	// Canceled runs keep and persist their partial corpus; failed runs do
	// not overwrite the previous snapshot. The save must outlive the run's
	// context or a canceled run would lose its pages.
	if imp.Snapshots != nil && run.Status != docdex.RunFailed {
		if err := imp.saveSnapshot(context.WithoutCancel(ctx)); err != nil {
			imp.log("snapshot save failed", "err", err)
		}
	}

	imp.finishRun(ctx, run)

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: run.PagesIndexed + run.PagesFailed,
			Total:     run.PagesAttempted,
		})
	}

	imp.mu.Lock()
	imp.running = false
	imp.status = run.Status
	imp.mu.Unlock()

	return run, runErr
}

// runSinglePage fetches and stores the seed page only. A fetch or parse
// failure is terminal for this mode.
func (imp *Importer) runSinglePage(ctx context.Context, cfg docdex.ImportConfig, seed *url.URL, run *docdex.Run, pacer *Pacer, progress ProgressFunc) error {
	emit(progress, ProgressEvent{Type: ProgressStarted, Total: 1})

	if err := pacer.Wait(ctx); err != nil {
		return docdex.Errorf(docdex.ECANCELED, "import run canceled")
	}

	run.PagesAttempted++
	body, err := fetchWithRetry(ctx, imp.Fetcher, cfg.SeedURL, imp.retryDelays(), imp.Logger)
	if err != nil {
		run.PagesFailed++
		emit(progress, ProgressEvent{Type: ProgressFailed, Completed: 1, Total: 1, URL: cfg.SeedURL, Err: err})
		if ctx.Err() != nil {
			return docdex.Errorf(docdex.ECANCELED, "import run canceled")
		}
		return docdex.Errorf(docdex.EUNAVAILABLE, "fetch %s: %v", cfg.SeedURL, err)
	}

	page, err := imp.Extractor.Extract(body, cfg.SeedURL)
	if err != nil {
		run.PagesFailed++
		emit(progress, ProgressEvent{Type: ProgressFailed, Completed: 1, Total: 1, URL: cfg.SeedURL, Err: err})
		return docdex.Errorf(docdex.EINVALID, "extract %s: %v", cfg.SeedURL, err)
	}

	imp.storePage(page, 0)
	run.PagesIndexed++
	emit(progress, ProgressEvent{Type: ProgressCompleted, Completed: 1, Total: 1, URL: cfg.SeedURL})
	return nil
}

// runEntireSite drives breadth-first traversal from the seed. Per-URL
// failures are logged and counted; the failing URL stays in the visited set
// so it is not retried.
func (imp *Importer) runEntireSite(ctx context.Context, cfg docdex.ImportConfig, seed *url.URL, run *docdex.Run, pacer *Pacer, skip *bloom.Filter, progress ProgressFunc) error {
	frontier := imp.newFrontier(cfg, seed.Host, skip)
	frontier.Enqueue(cfg.SeedURL, 0, "")

	emit(progress, ProgressEvent{Type: ProgressStarted, Total: frontier.VisitedCount()})

	for !frontier.IsExhausted() {
		entry, ok := frontier.Next()
		if !ok {
			break
		}

		if ctx.Err() != nil {
			return docdex.Errorf(docdex.ECANCELED, "import run canceled")
		}
		if err := pacer.Wait(ctx); err != nil {
			return docdex.Errorf(docdex.ECANCELED, "import run canceled")
		}

		run.PagesAttempted++
		body, err := fetchWithRetry(ctx, imp.Fetcher, entry.URL, imp.retryDelays(), imp.Logger)
		if err != nil {
			if ctx.Err() != nil {
				return docdex.Errorf(docdex.ECANCELED, "import run canceled")
			}
			run.PagesFailed++
			imp.log("fetch failed", "url", entry.URL, "depth", entry.Depth, "origin", entry.Origin, "err", err)
			emit(progress, ProgressEvent{Type: ProgressFailed, Completed: run.PagesIndexed + run.PagesFailed, Total: frontier.VisitedCount(), URL: entry.URL, Err: err})
			continue
		}

		page, err := imp.Extractor.Extract(body, entry.URL)
		if err != nil {
			run.PagesFailed++
			imp.log("extract failed", "url", entry.URL, "err", err)
			emit(progress, ProgressEvent{Type: ProgressFailed, Completed: run.PagesIndexed + run.PagesFailed, Total: frontier.VisitedCount(), URL: entry.URL, Err: err})
			continue
		}

		imp.storePage(page, entry.Depth)
		run.PagesIndexed++

		if links, err := imp.Links.Links(body, entry.URL); err == nil {
			for _, link := range links {
				frontier.Enqueue(link, entry.Depth+1, entry.URL)
			}
		}

		emit(progress, ProgressEvent{Type: ProgressCompleted, Completed: run.PagesIndexed + run.PagesFailed, Total: frontier.VisitedCount(), URL: entry.URL})
	}

	return nil
}

// runSitemap resolves the sitemap URL list once and imports every entry at
// depth 0 with the same same-origin and pattern filtering as the frontier,
// but without link discovery. A missing sitemap is fatal: no fallback URL
// list exists for this mode.
func (imp *Importer) runSitemap(ctx context.Context, cfg docdex.ImportConfig, seed *url.URL, run *docdex.Run, pacer *Pacer, skip *bloom.Filter, progress ProgressFunc) error {
	discovered, err := imp.Sitemaps.Discover(ctx, cfg.SeedURL)
	if err != nil {
		if ctx.Err() != nil {
			return docdex.Errorf(docdex.ECANCELED, "import run canceled")
		}
		return err
	}

	urls := imp.filterSitemapURLs(discovered, cfg, seed.Host, skip)
	emit(progress, ProgressEvent{Type: ProgressStarted, Total: len(urls)})

	for i, pageURL := range urls {
		if ctx.Err() != nil {
			return docdex.Errorf(docdex.ECANCELED, "import run canceled")
		}
		if err := pacer.Wait(ctx); err != nil {
			return docdex.Errorf(docdex.ECANCELED, "import run canceled")
		}

		run.PagesAttempted++
		body, err := fetchWithRetry(ctx, imp.Fetcher, pageURL, imp.retryDelays(), imp.Logger)
		if err != nil {
			if ctx.Err() != nil {
				return docdex.Errorf(docdex.ECANCELED, "import run canceled")
			}
			run.PagesFailed++
			imp.log("fetch failed", "url", pageURL, "err", err)
			emit(progress, ProgressEvent{Type: ProgressFailed, Completed: i + 1, Total: len(urls), URL: pageURL, Err: err})
			continue
		}

		page, err := imp.Extractor.Extract(body, pageURL)
		if err != nil {
			run.PagesFailed++
			imp.log("extract failed", "url", pageURL, "err", err)
			emit(progress, ProgressEvent{Type: ProgressFailed, Completed: i + 1, Total: len(urls), URL: pageURL, Err: err})
			continue
		}

		imp.storePage(page, 0)
		run.PagesIndexed++
		emit(progress, ProgressEvent{Type: ProgressCompleted, Completed: i + 1, Total: len(urls), URL: pageURL})
	}

	return nil
}

// filterSitemapURLs applies same-origin, pattern, dedup, skip-list, and
// page-budget filtering to a discovered sitemap URL list, preserving order.
func (imp *Importer) filterSitemapURLs(discovered []string, cfg docdex.ImportConfig, seedHost string, skip *bloom.Filter) []string {
	seen := make(map[string]struct{}, len(discovered))
	var urls []string
	for _, raw := range discovered {
		if len(urls) >= cfg.MaxPagesPerSite {
			break
		}
		norm, err := NormalizeURL(raw)
		if err != nil {
			continue
		}
		u, err := url.Parse(norm)
		if err != nil || u.Host != seedHost {
			continue
		}
		if !cfg.MatchesPatterns(norm) {
			continue
		}
		if _, ok := seen[norm]; ok {
			continue
		}
		if skip != nil && skip.Test(norm) {
			continue
		}
		seen[norm] = struct{}{}
		urls = append(urls, norm)
	}
	return urls
}

// storePage fills crawl-time fields and adds the page to the corpus.
func (imp *Importer) storePage(page *docdex.Page, depth int) {
	page.Depth = depth
	page.CrawledAt = time.Now().UTC()
	page.ContentHash = fmt.Sprintf("%x", xxhash.Sum64String(page.Content))
	imp.Corpus.Add(page)
}

// loadSkipList seeds the corpus and builds the skip list from the last
// snapshot when the run is incremental.
func (imp *Importer) loadSkipList(ctx context.Context, cfg docdex.ImportConfig) (*bloom.Filter, error) {
	if !cfg.SkipIndexed || imp.Snapshots == nil {
		return nil, nil
	}

	snapshot, err := imp.Snapshots.Load(ctx)
	if err != nil {
		return nil, err
	}
	if snapshot == nil || len(snapshot.Pages) == 0 {
		return nil, nil
	}

	imp.Corpus.ReplaceAll(snapshot.Pages)

	filter := bloom.NewFilter(skipListExpectedURLs, skipListFalsePositiveRate)
	for _, p := range snapshot.Pages {
		norm, err := NormalizeURL(p.URL)
		if err != nil {
			continue
		}
		filter.Add(norm)
	}
	return filter, nil
}

// saveSnapshot persists the corpus and its statistics atomically.
func (imp *Importer) saveSnapshot(ctx context.Context) error {
	pages := imp.Corpus.Pages()
	return imp.Snapshots.Save(ctx, &docdex.Snapshot{
		Version:     docdex.SnapshotVersion,
		GeneratedAt: time.Now().UTC(),
		Pages:       pages,
		Statistics:  docdex.ComputeStatistics(pages),
	})
}

// finishRun writes the run's terminal state to the run history.
func (imp *Importer) finishRun(ctx context.Context, run *docdex.Run) {
	if imp.Runs == nil {
		return
	}
	// Use a background context so a canceled run still gets recorded.
	if ctx.Err() != nil {
		ctx = context.Background()
	}
	_, err := imp.Runs.UpdateRun(ctx, run.ID, docdex.RunUpdate{
		Status:         &run.Status,
		PagesAttempted: &run.PagesAttempted,
		PagesIndexed:   &run.PagesIndexed,
		PagesFailed:    &run.PagesFailed,
		FinishedAt:     &run.FinishedAt,
	})
	if err != nil {
		imp.log("run record update failed", "id", run.ID, "err", err)
	}
}

// newFrontier builds the frontier for a whole-site run, honoring the
// Frontiers override.
func (imp *Importer) newFrontier(cfg docdex.ImportConfig, seedHost string, skip *bloom.Filter) docdex.Frontier {
	if imp.Frontiers != nil {
		return imp.Frontiers(cfg, seedHost, skip)
	}
	var opts []Option
	if skip != nil {
		opts = append(opts, WithSkipList(skip))
	}
	return NewFrontier(cfg, seedHost, opts...)
}

func (imp *Importer) retryDelays() []time.Duration {
	if imp.RetryDelays != nil {
		return imp.RetryDelays
	}
	return DefaultRetryDelays()
}

func (imp *Importer) log(msg string, args ...any) {
	if imp.Logger != nil {
		imp.Logger.Info(msg, args...)
	}
}

func emit(progress ProgressFunc, event ProgressEvent) {
	if progress != nil {
		progress(event)
	}
}
