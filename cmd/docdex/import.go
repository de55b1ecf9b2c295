package main

import (
	"fmt"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/crawl"
)

// Run executes the import command. The config file's import section supplies
// defaults; flags given on the command line override them.
func (c *ImportCmd) Run(deps *Dependencies) error {
	cfg := docdex.ImportConfig{Mode: docdex.Mode(c.Mode), SeedURL: c.URL}
	if deps.Config != nil {
		cfg = deps.Config.ImportDefaults(docdex.Mode(c.Mode), c.URL)
	}
	if c.MaxDepth > 0 {
		cfg.MaxDepth = c.MaxDepth
	}
	if c.MaxPages > 0 {
		cfg.MaxPagesPerSite = c.MaxPages
	}
	if c.Delay > 0 {
		cfg.DelayBetweenRequests = c.Delay
	}
	if len(c.Include) > 0 {
		cfg.IncludePatterns = c.Include
	}
	if len(c.Exclude) > 0 {
		cfg.ExcludePatterns = c.Exclude
	}
	cfg.SkipIndexed = c.Incremental

	var progress crawl.ProgressFunc
	if !c.Quiet {
		progress = func(event crawl.ProgressEvent) {
			switch event.Type {
			case crawl.ProgressStarted:
				fmt.Fprintf(deps.Stderr, "importing %s (%s)\n", c.URL, c.Mode)
			case crawl.ProgressCompleted:
				fmt.Fprintf(deps.Stderr, "  [%d/%d] %s\n", event.Completed, event.Total, event.URL)
			case crawl.ProgressFailed:
				fmt.Fprintf(deps.Stderr, "  [%d/%d] FAILED %s: %v\n", event.Completed, event.Total, event.URL, event.Err)
			}
		}
	}

	run, err := deps.Importer.Run(deps.Ctx, cfg, progress)
	if run != nil {
		fmt.Fprintf(deps.Stdout, "%s: %d pages indexed, %d failed of %d attempted\n",
			run.Status, run.PagesIndexed, run.PagesFailed, run.PagesAttempted)
	}
	return err
}
