package etree_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/etree"
	"github.com/docdex/docdex/mock"
)

// Story: Sitemap Discovery
// Conventional sitemap paths are probed in order; the first document that
// parses with at least one <loc> wins.

const urlsetXML = `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>https://example.com/docs/a</loc></url>
  <url><loc>https://example.com/docs/b</loc><lastmod>2026-01-01</lastmod></url>
  <url><loc> https://example.com/docs/c </loc></url>
</urlset>`

const sitemapIndexXML = `<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>https://example.com/sitemap-docs.xml</loc></sitemap>
  <sitemap><loc>https://example.com/sitemap-blog.xml</loc></sitemap>
</sitemapindex>`

func TestParseSitemap_URLSet(t *testing.T) {
	t.Parallel()

	urls, err := etree.ParseSitemap(urlsetXML)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://example.com/docs/a",
		"https://example.com/docs/b",
		"https://example.com/docs/c",
	}, urls, "document order, whitespace trimmed")
}

func TestParseSitemap_SitemapIndex(t *testing.T) {
	t.Parallel()

	urls, err := etree.ParseSitemap(sitemapIndexXML)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://example.com/sitemap-docs.xml",
		"https://example.com/sitemap-blog.xml",
	}, urls, "nested sitemap locations are returned, not fetched")
}

func TestParseSitemap_MalformedXML(t *testing.T) {
	t.Parallel()

	_, err := etree.ParseSitemap("<urlset><url><loc>broken")

	require.Error(t, err)
	assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err))
}

func TestSitemapResolver_ProbesPathsInOrder(t *testing.T) {
	t.Parallel()

	// Given a site serving only the second conventional path
	var probed []string
	fetcher := &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			probed = append(probed, url)
			if url == "https://example.com/sitemap_index.xml" {
				return urlsetXML, nil
			}
			return "", errors.New("404")
		},
	}

	urls, err := etree.NewSitemapResolver(fetcher).Discover(context.Background(), "https://example.com/docs/intro")

	// Then discovery stops at the first candidate that parses
	require.NoError(t, err)
	assert.Len(t, urls, 3)
	assert.Equal(t, []string{
		"https://example.com/sitemap.xml",
		"https://example.com/sitemap_index.xml",
	}, probed)
}

func TestSitemapResolver_SkipsUnparseableCandidates(t *testing.T) {
	t.Parallel()

	// Given a first candidate that fetches but does not parse
	fetcher := &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			if url == "https://example.com/sitemap.xml" {
				return "<html>not a sitemap", nil
			}
			return urlsetXML, nil
		},
	}

	urls, err := etree.NewSitemapResolver(fetcher).Discover(context.Background(), "https://example.com/")

	require.NoError(t, err)
	assert.Len(t, urls, 3)
}

func TestSitemapResolver_NoSitemapFound(t *testing.T) {
	t.Parallel()

	fetcher := &mock.Fetcher{
		FetchFn: func(context.Context, string) (string, error) {
			return "", errors.New("404")
		},
	}

	_, err := etree.NewSitemapResolver(fetcher).Discover(context.Background(), "https://example.com/")

	require.Error(t, err)
	assert.Equal(t, docdex.ENOTFOUND, docdex.ErrorCode(err))
}

func TestSitemapResolver_RejectsInvalidSeed(t *testing.T) {
	t.Parallel()

	fetcher := &mock.Fetcher{
		FetchFn: func(context.Context, string) (string, error) {
			t.Fatal("fetch should not be called")
			return "", nil
		},
	}

	_, err := etree.NewSitemapResolver(fetcher).Discover(context.Background(), "not-a-url")

	require.Error(t, err)
	assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err))
}
