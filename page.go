package docdex

import "time"

// Page represents an extracted documentation page. A page is identified by
// its URL and is immutable once stored; re-crawling the same URL replaces
// the page wholesale.
type Page struct {
	URL          string            `json:"url"`
	Title        string            `json:"title"`
	Content      string            `json:"content"`
	Sections     []Section         `json:"sections,omitempty"`
	CodeExamples []CodeExample     `json:"codeExamples,omitempty"`
	Keywords     []string          `json:"keywords,omitempty"`
	Domain       string            `json:"domain"`
	Depth        int               `json:"depth"`
	ContentHash  string            `json:"contentHash,omitempty"`
	CrawledAt    time.Time         `json:"crawledAt"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// Section represents a heading and the content blocks that follow it,
// up to the next heading of equal or higher level.
type Section struct {
	Heading       string   `json:"heading"`
	ContentBlocks []string `json:"contentBlocks,omitempty"`
}

// CodeExample represents a code block found on a page.
type CodeExample struct {
	Title    string `json:"title,omitempty"`
	Code     string `json:"code"`
	Language string `json:"language"`
}

// Validate returns an error if the page contains invalid fields.
func (p *Page) Validate() error {
	if p.URL == "" {
		return Errorf(EINVALID, "page URL required")
	}
	if p.Domain == "" {
		return Errorf(EINVALID, "page domain required")
	}
	return nil
}

// ExcerptLength is the maximum content excerpt length in a PageSummary.
const ExcerptLength = 200

// PageSummary is the reduced page representation returned to search consumers.
type PageSummary struct {
	URL      string   `json:"url"`
	Title    string   `json:"title"`
	Keywords []string `json:"keywords,omitempty"`
	Excerpt  string   `json:"excerpt,omitempty"`
}

// Summary returns the page's search-facing summary.
func (p *Page) Summary() PageSummary {
	excerpt := p.Content
	if len(excerpt) > ExcerptLength {
		excerpt = excerpt[:ExcerptLength]
	}
	return PageSummary{
		URL:      p.URL,
		Title:    p.Title,
		Keywords: p.Keywords,
		Excerpt:  excerpt,
	}
}

// Extractor extracts a structured Page from a raw page body.
// Implementations must be deterministic and side-effect free; the orchestrator
// fills in crawl-time fields (Depth, CrawledAt, ContentHash) afterwards.
type Extractor interface {
	// Extract parses rawBody and returns the structured page.
	// Returns EINVALID if the body cannot be decoded as text.
	Extract(rawBody string, sourceURL string) (*Page, error)
}
