package main

import (
	"fmt"

	"github.com/docdex/docdex"
)

// Run executes the search command against the persisted snapshot.
func (c *SearchCmd) Run(deps *Dependencies) error {
	snapshot, err := deps.Snapshots.Load(deps.Ctx)
	if err != nil {
		return err
	}
	if snapshot == nil || len(snapshot.Pages) == 0 {
		return docdex.Errorf(docdex.ENOTFOUND, "no indexed corpus; run 'docdex import' first")
	}

	results := docdex.SearchPages(snapshot.Pages, c.Query, c.Limit)
	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "no results")
		return nil
	}

	for i, result := range results {
		summary := result.Page.Summary()
		fmt.Fprintf(deps.Stdout, "%2d. (%d) %s\n    %s\n", i+1, result.Score, summary.Title, summary.URL)
	}
	return nil
}
