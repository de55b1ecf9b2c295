package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/docdex/docdex"
)

// Compile-time interface verification.
var _ docdex.LinkResolver = (*LinkResolver)(nil)

// LinkResolver finds same-origin links in HTML pages.
type LinkResolver struct{}

// NewLinkResolver creates a new LinkResolver.
func NewLinkResolver() *LinkResolver {
	return &LinkResolver{}
}

// Links finds every href in rawBody, resolves relative references against
// baseURL, and returns absolute same-origin URLs in document order.
// Fragments are stripped and duplicates removed; malformed and non-HTTP
// references (mailto:, javascript:, tel:) are dropped.
func (r *LinkResolver) Links(rawBody string, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, docdex.Errorf(docdex.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawBody))
	if err != nil {
		return nil, docdex.Errorf(docdex.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]struct{})
	var links []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" || isNonHTTPLink(href) {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref)
		resolved.Fragment = ""

		if resolved.Host != base.Host {
			return
		}
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}

		u := resolved.String()
		if _, ok := seen[u]; ok {
			return
		}
		seen[u] = struct{}{}
		links = append(links, u)
	})

	return links, nil
}

// isNonHTTPLink reports whether the href is a scheme that can never yield a
// crawlable page, or a bare fragment.
func isNonHTTPLink(href string) bool {
	lower := strings.ToLower(href)
	return strings.HasPrefix(lower, "javascript:") ||
		strings.HasPrefix(lower, "mailto:") ||
		strings.HasPrefix(lower, "tel:") ||
		strings.HasPrefix(lower, "data:") ||
		strings.HasPrefix(href, "#")
}
