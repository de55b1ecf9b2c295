package crawl

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer spaces fetches within a run. The first wait returns immediately;
// subsequent waits block until the configured delay has elapsed since the
// previous fetch was released.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer creates a pacer enforcing the given delay between requests.
// A non-positive delay disables pacing.
func NewPacer(delay time.Duration) *Pacer {
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}
	return &Pacer{limiter: rate.NewLimiter(limit, 1)}
}

// Wait blocks until the next fetch may proceed.
// Returns an error if the context is canceled before the wait completes.
func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}
