package mock

import (
	"context"

	"github.com/docdex/docdex"
)

var _ docdex.SitemapResolver = (*SitemapResolver)(nil)

// SitemapResolver is a mock implementation of docdex.SitemapResolver.
type SitemapResolver struct {
	DiscoverFn func(ctx context.Context, seedURL string) ([]string, error)
}

func (s *SitemapResolver) Discover(ctx context.Context, seedURL string) ([]string, error) {
	return s.DiscoverFn(ctx, seedURL)
}
