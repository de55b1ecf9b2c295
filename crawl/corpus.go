package crawl

import (
	"sync"

	"github.com/docdex/docdex"
)

// Corpus is the in-memory collection of extracted pages. A run appends to it
// while searches read from it concurrently; readers observe a prefix of the
// final corpus, which is the documented consistency model.
type Corpus struct {
	mu    sync.RWMutex
	pages []*docdex.Page
	byURL map[string]int
}

// NewCorpus creates an empty corpus.
func NewCorpus() *Corpus {
	return &Corpus{byURL: make(map[string]int)}
}

// Add stores a page. Re-adding a URL replaces the page wholesale in its
// original position; there is no partial merge.
func (c *Corpus) Add(page *docdex.Page) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i, ok := c.byURL[page.URL]; ok {
		c.pages[i] = page
		return
	}
	c.byURL[page.URL] = len(c.pages)
	c.pages = append(c.pages, page)
}

// ReplaceAll resets the corpus to the given pages, preserving their order.
// Used to seed the corpus from a loaded snapshot.
func (c *Corpus) ReplaceAll(pages []*docdex.Page) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pages = make([]*docdex.Page, 0, len(pages))
	c.byURL = make(map[string]int, len(pages))
	for _, p := range pages {
		if _, ok := c.byURL[p.URL]; ok {
			continue
		}
		c.byURL[p.URL] = len(c.pages)
		c.pages = append(c.pages, p)
	}
}

// Pages returns a copy of the page list in corpus order.
func (c *Corpus) Pages() []*docdex.Page {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*docdex.Page, len(c.pages))
	copy(out, c.pages)
	return out
}

// URLs returns the stored page URLs in corpus order.
func (c *Corpus) URLs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	urls := make([]string, len(c.pages))
	for i, p := range c.pages {
		urls[i] = p.URL
	}
	return urls
}

// Len returns the number of stored pages.
func (c *Corpus) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.pages)
}

// Search scores the corpus against the query and returns up to limit results
// ordered by descending term frequency.
func (c *Corpus) Search(query string, limit int) []docdex.SearchResult {
	return docdex.SearchPages(c.Pages(), query, limit)
}
