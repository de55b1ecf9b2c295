package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/docdex/docdex"
)

// Ensure LoggingSnapshotStore implements docdex.SnapshotStore.
var _ docdex.SnapshotStore = (*LoggingSnapshotStore)(nil)

// LoggingSnapshotStore wraps a SnapshotStore with persistence logging.
type LoggingSnapshotStore struct {
	next   docdex.SnapshotStore
	logger *slog.Logger
}

// NewLoggingSnapshotStore creates a new LoggingSnapshotStore.
func NewLoggingSnapshotStore(next docdex.SnapshotStore, logger *slog.Logger) *LoggingSnapshotStore {
	return &LoggingSnapshotStore{next: next, logger: logger}
}

// Save delegates to the wrapped store and logs the operation.
func (s *LoggingSnapshotStore) Save(ctx context.Context, snapshot *docdex.Snapshot) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("snapshot save",
			"pages", len(snapshot.Pages),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Save(ctx, snapshot)
}

// Load delegates to the wrapped store and logs the operation.
func (s *LoggingSnapshotStore) Load(ctx context.Context) (snapshot *docdex.Snapshot, err error) {
	defer func(begin time.Time) {
		pages := 0
		if snapshot != nil {
			pages = len(snapshot.Pages)
		}
		s.logger.Info("snapshot load",
			"pages", pages,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Load(ctx)
}
