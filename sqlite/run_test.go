package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/sqlite"
)

// Story: Run History
// Every import run is recorded with its final counts; history reads newest
// first.

func mustOpenDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func newRun(seed string, started time.Time) *docdex.Run {
	return &docdex.Run{
		SeedURL:   seed,
		Mode:      docdex.ModeEntireSite,
		Status:    docdex.RunRunning,
		StartedAt: started,
	}
}

func TestRunService_CreateAndFindRun(t *testing.T) {
	t.Parallel()

	s := sqlite.NewRunService(mustOpenDB(t))
	ctx := context.Background()

	started := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	run := newRun("https://example.com/docs", started)

	require.NoError(t, s.CreateRun(ctx, run))
	assert.NotEmpty(t, run.ID, "missing ID is filled in")

	found, err := s.FindRunByID(ctx, run.ID)

	require.NoError(t, err)
	assert.Equal(t, run.ID, found.ID)
	assert.Equal(t, "https://example.com/docs", found.SeedURL)
	assert.Equal(t, docdex.ModeEntireSite, found.Mode)
	assert.Equal(t, docdex.RunRunning, found.Status)
	assert.Equal(t, started, found.StartedAt)
	assert.True(t, found.FinishedAt.IsZero(), "unfinished runs read back with a zero finish time")
}

func TestRunService_CreateRunRequiresSeedAndMode(t *testing.T) {
	t.Parallel()

	s := sqlite.NewRunService(mustOpenDB(t))

	err := s.CreateRun(context.Background(), &docdex.Run{Mode: docdex.ModeSinglePage})

	require.Error(t, err)
	assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err))
}

func TestRunService_UpdateRun(t *testing.T) {
	t.Parallel()

	s := sqlite.NewRunService(mustOpenDB(t))
	ctx := context.Background()

	run := newRun("https://example.com/docs", time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, s.CreateRun(ctx, run))

	// When the run finishes
	status := docdex.RunComplete
	attempted, indexed, failed := 10, 9, 1
	finished := time.Date(2026, 2, 1, 9, 5, 0, 0, time.UTC)
	updated, err := s.UpdateRun(ctx, run.ID, docdex.RunUpdate{
		Status:         &status,
		PagesAttempted: &attempted,
		PagesIndexed:   &indexed,
		PagesFailed:    &failed,
		FinishedAt:     &finished,
	})

	// Then the terminal state persists
	require.NoError(t, err)
	assert.Equal(t, docdex.RunComplete, updated.Status)

	found, err := s.FindRunByID(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, docdex.RunComplete, found.Status)
	assert.Equal(t, 10, found.PagesAttempted)
	assert.Equal(t, 9, found.PagesIndexed)
	assert.Equal(t, 1, found.PagesFailed)
	assert.Equal(t, finished, found.FinishedAt)
}

func TestRunService_FindRunByID_NotFound(t *testing.T) {
	t.Parallel()

	s := sqlite.NewRunService(mustOpenDB(t))

	_, err := s.FindRunByID(context.Background(), "no-such-run")

	require.Error(t, err)
	assert.Equal(t, docdex.ENOTFOUND, docdex.ErrorCode(err))
	assert.Equal(t, "run not found", docdex.ErrorMessage(err))
}

func TestRunService_UpdateRun_NotFound(t *testing.T) {
	t.Parallel()

	s := sqlite.NewRunService(mustOpenDB(t))
	status := docdex.RunComplete

	_, err := s.UpdateRun(context.Background(), "no-such-run", docdex.RunUpdate{Status: &status})

	require.Error(t, err)
	assert.Equal(t, docdex.ENOTFOUND, docdex.ErrorCode(err))
}

func TestRunService_FindRuns(t *testing.T) {
	t.Parallel()

	s := sqlite.NewRunService(mustOpenDB(t))
	ctx := context.Background()

	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	first := newRun("https://example.com/first", base)
	second := newRun("https://example.com/second", base.Add(time.Hour))
	third := newRun("https://example.com/third", base.Add(2*time.Hour))
	third.Status = docdex.RunComplete
	for _, run := range []*docdex.Run{first, second, third} {
		require.NoError(t, s.CreateRun(ctx, run))
	}

	t.Run("newest first", func(t *testing.T) {
		runs, err := s.FindRuns(ctx, docdex.RunFilter{})

		require.NoError(t, err)
		require.Len(t, runs, 3)
		assert.Equal(t, "https://example.com/third", runs[0].SeedURL)
		assert.Equal(t, "https://example.com/first", runs[2].SeedURL)
	})

	t.Run("filter by status", func(t *testing.T) {
		status := docdex.RunComplete
		runs, err := s.FindRuns(ctx, docdex.RunFilter{Status: &status})

		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, "https://example.com/third", runs[0].SeedURL)
	})

	t.Run("limit and offset", func(t *testing.T) {
		runs, err := s.FindRuns(ctx, docdex.RunFilter{Limit: 1, Offset: 1})

		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, "https://example.com/second", runs[0].SeedURL)
	})
}
