package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/docdex/docdex"
)

// Compile-time interface verification.
var _ docdex.RunService = (*RunService)(nil)

// RunService implements docdex.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun records a new run. A missing ID or start time is filled in.
func (s *RunService) CreateRun(ctx context.Context, run *docdex.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}
	if run.Status == "" {
		run.Status = docdex.RunRunning
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, seed_url, mode, status, pages_attempted, pages_indexed, pages_failed, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.SeedURL, string(run.Mode), string(run.Status),
		run.PagesAttempted, run.PagesIndexed, run.PagesFailed,
		run.StartedAt.Format(time.RFC3339), formatFinishedAt(run.FinishedAt))

	return err
}

// UpdateRun updates an existing run.
func (s *RunService) UpdateRun(ctx context.Context, id string, upd docdex.RunUpdate) (*docdex.Run, error) {
	run, err := s.FindRunByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Status != nil {
		run.Status = *upd.Status
	}
	if upd.PagesAttempted != nil {
		run.PagesAttempted = *upd.PagesAttempted
	}
	if upd.PagesIndexed != nil {
		run.PagesIndexed = *upd.PagesIndexed
	}
	if upd.PagesFailed != nil {
		run.PagesFailed = *upd.PagesFailed
	}
	if upd.FinishedAt != nil {
		run.FinishedAt = *upd.FinishedAt
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE runs
		SET status = ?, pages_attempted = ?, pages_indexed = ?, pages_failed = ?, finished_at = ?
		WHERE id = ?
	`, string(run.Status), run.PagesAttempted, run.PagesIndexed, run.PagesFailed,
		formatFinishedAt(run.FinishedAt), id)
	if err != nil {
		return nil, err
	}

	return run, nil
}

// FindRunByID retrieves a run by ID.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*docdex.Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seed_url, mode, status, pages_attempted, pages_indexed, pages_failed, started_at, finished_at
		FROM runs
		WHERE id = ?
	`, id)

	run, err := scanRun(row.Scan)
	if err == sql.ErrNoRows {
		return nil, docdex.Errorf(docdex.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// FindRuns retrieves runs matching the filter, most recent first.
func (s *RunService) FindRuns(ctx context.Context, filter docdex.RunFilter) ([]*docdex.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, seed_url, mode, status, pages_attempted, pages_indexed, pages_failed, started_at, finished_at FROM runs WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, string(*filter.Status))
	}

	query.WriteString(" ORDER BY started_at DESC")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*docdex.Run
	for rows.Next() {
		run, err := scanRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// scanRun scans one row into a Run, parsing timestamp columns.
func scanRun(scan func(dest ...any) error) (*docdex.Run, error) {
	var run docdex.Run
	var mode, status, startedAt, finishedAt string

	if err := scan(&run.ID, &run.SeedURL, &mode, &status,
		&run.PagesAttempted, &run.PagesIndexed, &run.PagesFailed,
		&startedAt, &finishedAt); err != nil {
		return nil, err
	}

	run.Mode = docdex.Mode(mode)
	run.Status = docdex.RunStatus(status)

	var err error
	run.StartedAt, err = time.Parse(time.RFC3339, startedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse started_at: %w", err)
	}
	if finishedAt != "" {
		run.FinishedAt, err = time.Parse(time.RFC3339, finishedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse finished_at: %w", err)
		}
	}

	return &run, nil
}

// formatFinishedAt stores the zero time as an empty string.
func formatFinishedAt(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
