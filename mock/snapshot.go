package mock

import (
	"context"

	"github.com/docdex/docdex"
)

var _ docdex.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore is a mock implementation of docdex.SnapshotStore.
type SnapshotStore struct {
	SaveFn func(ctx context.Context, snapshot *docdex.Snapshot) error
	LoadFn func(ctx context.Context) (*docdex.Snapshot, error)
}

func (s *SnapshotStore) Save(ctx context.Context, snapshot *docdex.Snapshot) error {
	return s.SaveFn(ctx, snapshot)
}

func (s *SnapshotStore) Load(ctx context.Context) (*docdex.Snapshot, error) {
	return s.LoadFn(ctx)
}
