package docdex

import (
	"context"
	"time"
)

// RunStatus is the lifecycle state of an import run.
type RunStatus string

// Run lifecycle states. RunIdle is reported by an importer that has never
// started a run; persisted run records always carry one of the other states.
const (
	RunIdle      RunStatus = "idle"
	RunRunning   RunStatus = "running"
	RunComplete  RunStatus = "complete"
	RunFailed    RunStatus = "failed"
	RunCancelled RunStatus = "cancelled"
)

// Run records one import run: what was crawled, how it ended, and how many
// pages were indexed versus attempted.
type Run struct {
	ID             string    `json:"id"`
	SeedURL        string    `json:"seedUrl"`
	Mode           Mode      `json:"mode"`
	Status         RunStatus `json:"status"`
	PagesAttempted int       `json:"pagesAttempted"`
	PagesIndexed   int       `json:"pagesIndexed"`
	PagesFailed    int       `json:"pagesFailed"`
	StartedAt      time.Time `json:"startedAt"`
	FinishedAt     time.Time `json:"finishedAt,omitzero"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.SeedURL == "" {
		return Errorf(EINVALID, "run seed URL required")
	}
	if r.Mode == "" {
		return Errorf(EINVALID, "run mode required")
	}
	return nil
}

// RunService records and queries import run history.
type RunService interface {
	// CreateRun records a new run.
	CreateRun(ctx context.Context, run *Run) error

	// UpdateRun updates an existing run.
	// Returns ENOTFOUND if the run does not exist.
	UpdateRun(ctx context.Context, id string, upd RunUpdate) (*Run, error)

	// FindRunByID retrieves a run by ID.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs matching the filter, most recent first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)
}

// RunUpdate represents fields that can be updated on a run.
type RunUpdate struct {
	Status         *RunStatus `json:"status"`
	PagesAttempted *int       `json:"pagesAttempted"`
	PagesIndexed   *int       `json:"pagesIndexed"`
	PagesFailed    *int       `json:"pagesFailed"`
	FinishedAt     *time.Time `json:"finishedAt"`
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	ID     *string    `json:"id"`
	Status *RunStatus `json:"status"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
