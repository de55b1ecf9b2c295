package docdex

import (
	"context"
	"time"
)

// SnapshotVersion is the current snapshot document version.
const SnapshotVersion = 1

// Statistics summarizes a persisted corpus.
type Statistics struct {
	TotalPages     int       `json:"totalPages"`
	TotalSizeBytes int       `json:"totalSizeBytes"`
	LastCrawled    time.Time `json:"lastCrawled"`
}

// Snapshot is the versioned, point-in-time serialization of the corpus.
type Snapshot struct {
	Version     int        `json:"version"`
	GeneratedAt time.Time  `json:"generatedAt"`
	Pages       []*Page    `json:"pages"`
	Statistics  Statistics `json:"statistics"`
}

// ComputeStatistics derives corpus statistics from a page list.
// TotalSizeBytes counts extracted content only; LastCrawled is the most
// recent page crawl time.
func ComputeStatistics(pages []*Page) Statistics {
	stats := Statistics{TotalPages: len(pages)}
	for _, p := range pages {
		stats.TotalSizeBytes += len(p.Content)
		if p.CrawledAt.After(stats.LastCrawled) {
			stats.LastCrawled = p.CrawledAt
		}
	}
	return stats
}

// SnapshotStore persists and reloads the corpus as a single atomic document.
type SnapshotStore interface {
	// Save overwrites any prior snapshot atomically.
	Save(ctx context.Context, snapshot *Snapshot) error

	// Load returns the last saved snapshot. An absent or corrupt snapshot
	// returns (nil, nil); corruption is not a fatal condition.
	Load(ctx context.Context) (*Snapshot, error)
}
