package goquery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/goquery"
)

// Story: Link Discovery
// Every href resolves against the page URL; only absolute same-origin http(s)
// links survive, fragment-free and deduplicated, in document order.

func TestLinkResolver_ResolvesRelativeReferences(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<a href="guide">relative</a>
		<a href="/api/v1">rooted</a>
		<a href="../faq">parent</a>
		<a href="https://example.com/absolute">absolute</a>
	</body></html>`

	links, err := goquery.NewLinkResolver().Links(html, "https://example.com/docs/intro")

	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://example.com/docs/guide",
		"https://example.com/api/v1",
		"https://example.com/faq",
		"https://example.com/absolute",
	}, links)
}

func TestLinkResolver_KeepsOnlySameOrigin(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<a href="https://example.com/internal">in</a>
		<a href="https://other.com/external">out</a>
		<a href="https://sub.example.com/page">subdomain</a>
	</body></html>`

	links, err := goquery.NewLinkResolver().Links(html, "https://example.com/")

	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/internal"}, links)
}

func TestLinkResolver_StripsFragmentsAndDeduplicates(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<a href="/page#install">one</a>
		<a href="/page#usage">two</a>
		<a href="/page">three</a>
	</body></html>`

	links, err := goquery.NewLinkResolver().Links(html, "https://example.com/")

	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/page"}, links)
}

func TestLinkResolver_DropsNonHTTPSchemes(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<a href="javascript:void(0)">js</a>
		<a href="mailto:docs@example.com">mail</a>
		<a href="tel:+15551234">phone</a>
		<a href="data:text/plain,hi">data</a>
		<a href="#top">fragment only</a>
		<a href="ftp://example.com/file">ftp</a>
		<a href="/real">real</a>
	</body></html>`

	links, err := goquery.NewLinkResolver().Links(html, "https://example.com/")

	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/real"}, links)
}

func TestLinkResolver_EmptyPage(t *testing.T) {
	t.Parallel()

	links, err := goquery.NewLinkResolver().Links(`<html><body><p>no links</p></body></html>`, "https://example.com/")

	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestLinkResolver_RejectsInvalidBaseURL(t *testing.T) {
	t.Parallel()

	_, err := goquery.NewLinkResolver().Links(`<html></html>`, "://bad")

	require.Error(t, err)
	assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err))
}
