package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/fs"
)

// Story: Atomic Snapshot Persistence
// The corpus round-trips through a single JSON file; a reader never sees a
// partial document, and a missing or corrupt file reads as no snapshot.

func TestSnapshotStore_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "snapshot.json")
	store := fs.NewSnapshotStore(path)
	ctx := context.Background()

	crawled := time.Date(2026, 2, 1, 12, 30, 0, 0, time.UTC)
	snapshot := &docdex.Snapshot{
		Version:     docdex.SnapshotVersion,
		GeneratedAt: crawled,
		Pages: []*docdex.Page{
			{
				URL:     "https://example.com/docs",
				Title:   "Docs",
				Content: "hello world",
				Sections: []docdex.Section{
					{Heading: "Install", ContentBlocks: []string{"step one"}},
				},
				CodeExamples: []docdex.CodeExample{
					{Code: "go install", Language: "bash"},
				},
				Keywords:    []string{"docs", "install"},
				Domain:      "example.com",
				ContentHash: "abc123",
				CrawledAt:   crawled,
				Metadata:    map[string]string{"author": "Docs Team"},
			},
		},
		Statistics: docdex.Statistics{TotalPages: 1, TotalSizeBytes: 11, LastCrawled: crawled},
	}

	// When I save and reload
	require.NoError(t, store.Save(ctx, snapshot))
	loaded, err := store.Load(ctx)

	// Then the snapshot survives intact
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, snapshot, loaded)
}

func TestSnapshotStore_SaveOverwritesPriorSnapshot(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "snapshot.json")
	store := fs.NewSnapshotStore(path)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &docdex.Snapshot{
		Version: docdex.SnapshotVersion,
		Pages:   []*docdex.Page{{URL: "https://example.com/old"}},
	}))
	require.NoError(t, store.Save(ctx, &docdex.Snapshot{
		Version: docdex.SnapshotVersion,
		Pages:   []*docdex.Page{{URL: "https://example.com/new"}},
	}))

	loaded, err := store.Load(ctx)

	require.NoError(t, err)
	require.Len(t, loaded.Pages, 1)
	assert.Equal(t, "https://example.com/new", loaded.Pages[0].URL)
}

func TestSnapshotStore_LeavesNoTempFileBehind(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "snapshot.json")
	store := fs.NewSnapshotStore(path)

	require.NoError(t, store.Save(context.Background(), &docdex.Snapshot{Version: docdex.SnapshotVersion}))

	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestSnapshotStore_AbsentFileLoadsAsNil(t *testing.T) {
	t.Parallel()

	store := fs.NewSnapshotStore(filepath.Join(t.TempDir(), "never-written.json"))

	loaded, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestSnapshotStore_CorruptFileLoadsAsNil(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte("{ truncated"), 0644))

	loaded, err := fs.NewSnapshotStore(path).Load(context.Background())

	require.NoError(t, err, "corruption reads as absence, not failure")
	assert.Nil(t, loaded)
}

func TestSnapshotStore_CreatesParentDirectories(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "deeper", "snapshot.json")
	store := fs.NewSnapshotStore(path)

	require.NoError(t, store.Save(context.Background(), &docdex.Snapshot{Version: docdex.SnapshotVersion}))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}
