package docdex

import (
	"sort"
	"strings"
	"unicode"
)

// Tokenization constants shared by keyword extraction and query scoring.
const (
	// MinTokenLength is the shortest token length counted by the tokenizer.
	MinTokenLength = 3

	// MaxKeywords is the number of keywords derived per page.
	MaxKeywords = 30
)

// Tokenize splits text into lower-cased alphanumeric runs, dropping tokens
// shorter than MinTokenLength. Query tokenization and extraction-time keyword
// tokenization both use this function so search sees the same terms.
func Tokenize(text string) []string {
	var tokens []string
	split := func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}
	for _, tok := range strings.FieldsFunc(strings.ToLower(text), split) {
		if len(tok) >= MinTokenLength {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// TopKeywords returns the n most frequent tokens, ties broken by first
// occurrence order.
func TopKeywords(tokens []string, n int) []string {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	var order []string

	for i, tok := range tokens {
		if _, ok := counts[tok]; !ok {
			firstSeen[tok] = i
			order = append(order, tok)
		}
		counts[tok]++
	}

	sort.SliceStable(order, func(a, b int) bool {
		if counts[order[a]] != counts[order[b]] {
			return counts[order[a]] > counts[order[b]]
		}
		return firstSeen[order[a]] < firstSeen[order[b]]
	})

	if len(order) > n {
		order = order[:n]
	}
	return order
}

// SearchResult pairs a page with its query score.
type SearchResult struct {
	Page  *Page `json:"page"`
	Score int   `json:"score"`
}

// SearchPages scores pages against a query and returns matches ordered by
// descending score, truncated to limit.
//
// The score is the sum, over query tokens, of that token's occurrence count
// in the page's title plus content. This is plain term frequency: no length
// normalization and no corpus-wide weighting. Zero-score pages are excluded
// and ties keep the original corpus order. An empty or degenerate query
// returns no results.
func SearchPages(pages []*Page, query string, limit int) []SearchResult {
	terms := Tokenize(query)
	if len(terms) == 0 || limit <= 0 {
		return nil
	}

	var results []SearchResult
	for _, page := range pages {
		haystack := Tokenize(page.Title + " " + page.Content)
		counts := make(map[string]int, len(haystack))
		for _, tok := range haystack {
			counts[tok]++
		}

		score := 0
		for _, term := range terms {
			score += counts[term]
		}
		if score > 0 {
			results = append(results, SearchResult{Page: page, Score: score})
		}
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}
