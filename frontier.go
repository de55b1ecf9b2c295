package docdex

// FrontierEntry is a discovered URL awaiting fetch.
type FrontierEntry struct {
	URL    string
	Depth  int    // distance from seed, 0 at the seed
	Origin string // URL the entry was discovered from, for diagnostics
}

// Frontier manages the breadth-first crawl queue and the visited set.
// Admission inserts into the visited set immediately, so a URL is consumed
// exactly once per run.
type Frontier interface {
	// Enqueue admits a URL at the given depth. Returns false if the URL
	// was already visited, is out of scope, exceeds the depth bound, or
	// the page budget is spent.
	Enqueue(url string, depth int, origin string) bool

	// Next pops the lowest-depth, earliest-discovered entry.
	// The bool result is false if the queue is empty.
	Next() (FrontierEntry, bool)

	// IsExhausted reports whether the run should stop pulling entries.
	IsExhausted() bool

	// Visited reports whether the URL has been fetched or enqueued.
	Visited(url string) bool

	// VisitedCount returns the size of the visited set.
	VisitedCount() int

	// Len returns the number of queued entries.
	Len() int
}
