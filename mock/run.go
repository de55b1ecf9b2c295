package mock

import (
	"context"

	"github.com/docdex/docdex"
)

var _ docdex.RunService = (*RunService)(nil)

// RunService is a mock implementation of docdex.RunService.
type RunService struct {
	CreateRunFn   func(ctx context.Context, run *docdex.Run) error
	UpdateRunFn   func(ctx context.Context, id string, upd docdex.RunUpdate) (*docdex.Run, error)
	FindRunByIDFn func(ctx context.Context, id string) (*docdex.Run, error)
	FindRunsFn    func(ctx context.Context, filter docdex.RunFilter) ([]*docdex.Run, error)
}

func (s *RunService) CreateRun(ctx context.Context, run *docdex.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) UpdateRun(ctx context.Context, id string, upd docdex.RunUpdate) (*docdex.Run, error) {
	return s.UpdateRunFn(ctx, id, upd)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*docdex.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunService) FindRuns(ctx context.Context, filter docdex.RunFilter) ([]*docdex.Run, error) {
	return s.FindRunsFn(ctx, filter)
}
