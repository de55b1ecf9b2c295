package docdex

import "context"

// SitemapPaths lists the conventional sitemap locations tried in order
// during sitemap-mode discovery.
var SitemapPaths = []string{
	"/sitemap.xml",
	"/sitemap_index.xml",
	"/sitemap/sitemap.xml",
}

// SitemapResolver discovers a site's URL list from its sitemap.
type SitemapResolver interface {
	// Discover tries the conventional sitemap paths against the seed's
	// host until one parses successfully and returns its URLs in
	// document order. Returns ENOTFOUND if no sitemap is found.
	Discover(ctx context.Context, seedURL string) ([]string, error)
}
