// Package goquery provides HTML parsing implementations of the content
// extractor and link resolver, built on PuerkitoBio/goquery.
package goquery

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/docdex/docdex"
)

// MaxCodeExamples caps the number of code blocks extracted per page to
// bound memory.
const MaxCodeExamples = 10

// headingSelector matches the headings that open sections.
const headingSelector = "h2, h3, h4"

// Compile-time interface verification.
var _ docdex.Extractor = (*Extractor)(nil)

// Extractor extracts structured page content from raw HTML. Extraction is
// deterministic and side-effect free; the same body always yields the same
// page. Script and style content never reaches the output, and HTML entities
// are decoded by the parser.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses rawBody and returns the structured page: title, collapsed
// plain text, heading sections, code examples, and derived keywords.
// Returns EINVALID if the body cannot be decoded as text.
func (e *Extractor) Extract(rawBody string, sourceURL string) (*docdex.Page, error) {
	if !utf8.ValidString(rawBody) {
		return nil, docdex.Errorf(docdex.EINVALID, "page body is not valid text: %s", sourceURL)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawBody))
	if err != nil {
		return nil, docdex.Errorf(docdex.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find("script, style, noscript").Remove()

	page := &docdex.Page{
		URL:          sourceURL,
		Title:        extractTitle(doc),
		Content:      collapseWhitespace(doc.Find("body").Text()),
		Sections:     extractSections(doc),
		CodeExamples: extractCodeExamples(doc),
		Domain:       hostOf(sourceURL),
		Metadata:     extractMetadata(doc),
	}
	page.Keywords = docdex.TopKeywords(docdex.Tokenize(page.Title+" "+page.Content), docdex.MaxKeywords)

	return page, nil
}

// extractTitle returns the first <title>, falling back to the first <h1>,
// then to "Untitled".
func extractTitle(doc *goquery.Document) string {
	if title := collapseWhitespace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	if h1 := collapseWhitespace(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	return "Untitled"
}

// extractSections returns one section per h2/h3/h4 in document order. A
// section's content blocks are the sibling elements up to the next heading
// of equal or higher level, so an h2 section spans its subordinate h3/h4
// subsections. Subordinate headings open their own sections and are not
// repeated as blocks.
func extractSections(doc *goquery.Document) []docdex.Section {
	var sections []docdex.Section

	doc.Find(headingSelector).Each(func(_ int, heading *goquery.Selection) {
		section := docdex.Section{
			Heading: collapseWhitespace(heading.Text()),
		}
		heading.NextUntil(sectionEndSelector(goquery.NodeName(heading))).Each(func(_ int, block *goquery.Selection) {
			if isHeading(goquery.NodeName(block)) {
				return
			}
			if text := collapseWhitespace(block.Text()); text != "" {
				section.ContentBlocks = append(section.ContentBlocks, text)
			}
		})
		sections = append(sections, section)
	})

	return sections
}

// sectionEndSelector matches the headings that close a section opened by the
// given heading: those of equal or higher level.
func sectionEndSelector(heading string) string {
	switch heading {
	case "h2":
		return "h1, h2"
	case "h3":
		return "h1, h2, h3"
	default:
		return "h1, h2, h3, h4"
	}
}

func isHeading(name string) bool {
	switch name {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

// extractCodeExamples returns the contents of <pre> and <code> blocks in
// document order, capped at MaxCodeExamples. Code nested inside <pre> is not
// double-counted. Each example carries the nearest preceding section heading
// as its title and the inferred language, defaulting to "plaintext".
func extractCodeExamples(doc *goquery.Document) []docdex.CodeExample {
	var examples []docdex.CodeExample

	doc.Find("pre, code").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if goquery.NodeName(sel) == "code" && sel.ParentsFiltered("pre").Length() > 0 {
			return true
		}

		code := strings.TrimRight(strings.TrimLeft(sel.Text(), "\n"), " \n\t")
		if code == "" {
			return true
		}

		examples = append(examples, docdex.CodeExample{
			Title:    collapseWhitespace(sel.PrevAllFiltered(headingSelector).First().Text()),
			Code:     code,
			Language: inferLanguage(sel),
		})
		return len(examples) < MaxCodeExamples
	})

	return examples
}

// inferLanguage looks for a language hint on the element, a nested <code>
// child, or a data-lang attribute. Class hints follow the common
// "language-x" / "lang-x" convention.
func inferLanguage(sel *goquery.Selection) string {
	candidates := []*goquery.Selection{sel, sel.ChildrenFiltered("code").First()}
	for _, c := range candidates {
		if c.Length() == 0 {
			continue
		}
		if lang, ok := c.Attr("data-lang"); ok && lang != "" {
			return lang
		}
		if class, ok := c.Attr("class"); ok {
			for _, name := range strings.Fields(class) {
				if lang, found := strings.CutPrefix(name, "language-"); found && lang != "" {
					return lang
				}
				if lang, found := strings.CutPrefix(name, "lang-"); found && lang != "" {
					return lang
				}
			}
		}
	}
	return "plaintext"
}

// extractMetadata collects free-form page metadata from meta tags.
func extractMetadata(doc *goquery.Document) map[string]string {
	meta := make(map[string]string)
	for _, name := range []string{"author", "description", "keywords", "last-modified"} {
		if content, ok := doc.Find(`meta[name="` + name + `"]`).First().Attr("content"); ok && content != "" {
			meta[name] = content
		}
	}
	if len(meta) == 0 {
		return nil
	}
	return meta
}

// collapseWhitespace trims and collapses all whitespace runs to single
// spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
