package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/docdex/docdex"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	runs, err := deps.Runs.FindRuns(deps.Ctx, docdex.RunFilter{Limit: c.Limit})
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "no runs recorded")
		return nil
	}

	w := tabwriter.NewWriter(deps.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tSTATUS\tMODE\tINDEXED\tFAILED\tSEED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
			run.StartedAt.Format("2006-01-02 15:04"),
			run.Status, run.Mode, run.PagesIndexed, run.PagesFailed, run.SeedURL)
	}
	return w.Flush()
}
