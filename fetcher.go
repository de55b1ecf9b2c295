package docdex

import "context"

// Fetcher retrieves raw page bodies from URLs. The crawling core does not
// implement HTTP itself; timeouts, user agent, and status handling belong to
// the implementation.
type Fetcher interface {
	// Fetch retrieves the body at url. The context controls timeout and
	// cancellation. Non-success responses are returned as errors.
	Fetch(ctx context.Context, url string) (body string, err error)

	// Close releases transport resources.
	Close() error
}
