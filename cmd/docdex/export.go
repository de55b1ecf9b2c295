package main

import (
	"fmt"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	snapshot, err := deps.Snapshots.Load(deps.Ctx)
	if err != nil {
		return err
	}
	if snapshot == nil || len(snapshot.Pages) == 0 {
		return docdex.Errorf(docdex.ENOTFOUND, "no indexed corpus; run 'docdex import' first")
	}

	writer := fs.NewWriter(c.Dir)
	if err := writer.WriteAll(deps.Ctx, snapshot.Pages); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "exported %d pages to %s\n", len(snapshot.Pages), c.Dir)
	return nil
}
