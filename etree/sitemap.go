// Package etree provides sitemap XML parsing built on beevik/etree.
package etree

import (
	"context"
	"strings"

	"github.com/beevik/etree"

	"github.com/docdex/docdex"
)

// ParseSitemap extracts every <loc> value from a sitemap document in
// document order. Both <urlset> and <sitemapindex> documents are handled;
// nested sitemap locations are returned as-is, not fetched.
func ParseSitemap(xmlBody string) ([]string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(xmlBody); err != nil {
		return nil, docdex.Errorf(docdex.EINVALID, "failed to parse sitemap XML: %v", err)
	}
	if doc.Root() == nil {
		return nil, docdex.Errorf(docdex.EINVALID, "empty sitemap XML")
	}

	var urls []string
	for _, loc := range doc.FindElements("//loc") {
		if u := strings.TrimSpace(loc.Text()); u != "" {
			urls = append(urls, u)
		}
	}
	return urls, nil
}

// Compile-time interface verification.
var _ docdex.SitemapResolver = (*SitemapResolver)(nil)

// SitemapResolver discovers a site's URL list by probing the conventional
// sitemap paths through the configured fetcher.
type SitemapResolver struct {
	fetcher docdex.Fetcher
}

// NewSitemapResolver creates a SitemapResolver that fetches sitemap
// candidates with the given fetcher.
func NewSitemapResolver(fetcher docdex.Fetcher) *SitemapResolver {
	return &SitemapResolver{fetcher: fetcher}
}

// Discover tries each conventional sitemap path against the seed's host in
// order and returns the URLs of the first candidate that parses with at
// least one entry. Returns ENOTFOUND if none does.
func (s *SitemapResolver) Discover(ctx context.Context, seedURL string) ([]string, error) {
	seed, err := docdex.ParseSeed(seedURL)
	if err != nil {
		return nil, err
	}

	for _, path := range docdex.SitemapPaths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		candidate := seed.Scheme + "://" + seed.Host + path
		body, err := s.fetcher.Fetch(ctx, candidate)
		if err != nil {
			continue
		}

		urls, err := ParseSitemap(body)
		if err != nil || len(urls) == 0 {
			continue
		}
		return urls, nil
	}

	return nil, docdex.Errorf(docdex.ENOTFOUND, "no sitemap found for %s", seed.Host)
}
