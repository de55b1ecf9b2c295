package docdex_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docdex/docdex"
)

// Story: Term-Frequency Search
// Pages are ranked by raw query-token occurrence counts in title+content,
// with no length normalization and no corpus-wide weighting.

func TestTokenize_LowercasesAndDropsShortTokens(t *testing.T) {
	t.Parallel()

	// When I tokenize mixed-case text with punctuation and short words
	tokens := docdex.Tokenize("Go is FAST: go-routines, IO & the API v2!")

	// Then tokens are lower-cased alphanumeric runs of length > 2
	assert.Equal(t, []string{"fast", "routines", "the", "api"}, tokens)
}

func TestTokenize_EmptyInput(t *testing.T) {
	t.Parallel()

	assert.Empty(t, docdex.Tokenize(""))
	assert.Empty(t, docdex.Tokenize("a b c -- !!"))
}

func TestTopKeywords_OrdersByFrequencyThenFirstOccurrence(t *testing.T) {
	t.Parallel()

	// Given tokens where "beta" and "gamma" tie on count
	tokens := []string{"alpha", "beta", "gamma", "beta", "gamma", "alpha", "alpha"}

	// When I take the top keywords
	keywords := docdex.TopKeywords(tokens, 3)

	// Then frequency wins and ties keep first-occurrence order
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, keywords)
}

func TestTopKeywords_TruncatesToN(t *testing.T) {
	t.Parallel()

	keywords := docdex.TopKeywords([]string{"one", "two", "three"}, 2)
	assert.Len(t, keywords, 2)
}

func TestSearchPages_RanksByOccurrenceCount(t *testing.T) {
	t.Parallel()

	// Given two pages mentioning "accessibility" 3 and 5 times across title and content
	pages := []*docdex.Page{
		{URL: "https://example.com/a", Title: "Accessibility", Content: "accessibility " + strings.Repeat("filler ", 50) + "accessibility"},
		{URL: "https://example.com/b", Title: "Accessibility accessibility", Content: "accessibility accessibility accessibility"},
	}

	// When I search with a limit of 2
	results := docdex.SearchPages(pages, "accessibility", 2)

	// Then the 5-count page ranks first
	require.Len(t, results, 2)
	assert.Equal(t, "https://example.com/b", results[0].Page.URL)
	assert.Equal(t, 5, results[0].Score)
	assert.Equal(t, "https://example.com/a", results[1].Page.URL)
	assert.Equal(t, 3, results[1].Score)
}

func TestSearchPages_EmptyQueryReturnsNothing(t *testing.T) {
	t.Parallel()

	pages := []*docdex.Page{{URL: "https://example.com/", Content: "anything at all"}}

	assert.Empty(t, docdex.SearchPages(pages, "", 10))
	assert.Empty(t, docdex.SearchPages(pages, "a b", 10), "degenerate query tokens are dropped")
}

func TestSearchPages_ExcludesZeroScorePages(t *testing.T) {
	t.Parallel()

	pages := []*docdex.Page{
		{URL: "https://example.com/hit", Content: "frontier traversal"},
		{URL: "https://example.com/miss", Content: "completely unrelated"},
	}

	results := docdex.SearchPages(pages, "frontier", 10)

	require.Len(t, results, 1)
	assert.Equal(t, "https://example.com/hit", results[0].Page.URL)
	for _, r := range results {
		assert.Positive(t, r.Score)
	}
}

func TestSearchPages_TiesKeepCorpusOrder(t *testing.T) {
	t.Parallel()

	pages := []*docdex.Page{
		{URL: "https://example.com/1", Content: "sitemap"},
		{URL: "https://example.com/2", Content: "sitemap"},
		{URL: "https://example.com/3", Content: "sitemap"},
	}

	results := docdex.SearchPages(pages, "sitemap", 10)

	require.Len(t, results, 3)
	assert.Equal(t, "https://example.com/1", results[0].Page.URL)
	assert.Equal(t, "https://example.com/2", results[1].Page.URL)
	assert.Equal(t, "https://example.com/3", results[2].Page.URL)
}

func TestSearchPages_TruncatesToLimit(t *testing.T) {
	t.Parallel()

	pages := []*docdex.Page{
		{URL: "https://example.com/1", Content: "query query query"},
		{URL: "https://example.com/2", Content: "query query"},
		{URL: "https://example.com/3", Content: "query"},
	}

	results := docdex.SearchPages(pages, "query", 2)

	require.Len(t, results, 2)
	assert.Equal(t, 3, results[0].Score)
	assert.Equal(t, 2, results[1].Score)
}

func TestSearchPages_MultiTokenQuerySumsScores(t *testing.T) {
	t.Parallel()

	pages := []*docdex.Page{
		{URL: "https://example.com/both", Content: "crawler frontier"},
		{URL: "https://example.com/one", Content: "frontier frontier frontier"},
	}

	results := docdex.SearchPages(pages, "crawler frontier", 10)

	require.Len(t, results, 2)
	assert.Equal(t, "https://example.com/one", results[0].Page.URL, "three occurrences beat two")
	assert.Equal(t, 3, results[0].Score)
	assert.Equal(t, 2, results[1].Score)
}
