package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/docdex/docdex"
)

// Ensure LoggingSitemapResolver implements docdex.SitemapResolver.
var _ docdex.SitemapResolver = (*LoggingSitemapResolver)(nil)

// LoggingSitemapResolver wraps a SitemapResolver with discovery logging.
type LoggingSitemapResolver struct {
	next   docdex.SitemapResolver
	logger *slog.Logger
}

// NewLoggingSitemapResolver creates a new LoggingSitemapResolver.
func NewLoggingSitemapResolver(next docdex.SitemapResolver, logger *slog.Logger) *LoggingSitemapResolver {
	return &LoggingSitemapResolver{next: next, logger: logger}
}

// Discover delegates to the wrapped resolver and logs the operation.
func (s *LoggingSitemapResolver) Discover(ctx context.Context, seedURL string) (urls []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("sitemap discovery",
			"url", seedURL,
			"count", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Discover(ctx, seedURL)
}
