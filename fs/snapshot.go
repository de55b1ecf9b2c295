// Package fs provides file-based persistence: the atomic corpus snapshot
// and the markdown export writer.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/docdex/docdex"
)

// Compile-time interface verification.
var _ docdex.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore persists the corpus as a single JSON document with
// write-to-temp-then-rename semantics, so readers never observe a partial
// snapshot.
type SnapshotStore struct {
	path string
}

// NewSnapshotStore creates a store writing to the given file path.
func NewSnapshotStore(path string) *SnapshotStore {
	return &SnapshotStore{path: path}
}

// Save writes the snapshot atomically, overwriting any prior content.
func (s *SnapshotStore) Save(ctx context.Context, snapshot *docdex.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Load reads the last saved snapshot. An absent or corrupt snapshot returns
// (nil, nil); corruption is treated as absence, not a fatal error.
func (s *SnapshotStore) Load(ctx context.Context) (*docdex.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	var snapshot docdex.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, nil
	}
	return &snapshot, nil
}
