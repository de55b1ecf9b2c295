package fs

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/docdex/docdex"
)

// exportConcurrency bounds parallel file writes during export.
const exportConcurrency = 8

// URLToPath converts a page URL to a relative markdown file path.
// Example: https://example.com/docs/api/users → docs/api/users.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	path := u.Path

	// Root or trailing slash → index.md
	if path == "" || path == "/" {
		return "index.md", nil
	}

	path = strings.TrimPrefix(path, "/")

	if strings.HasSuffix(path, "/") {
		return path + "index.md", nil
	}

	return path + ".md", nil
}

// FormatPage renders a page as markdown: YAML frontmatter, the title as a
// top-level heading, each section with its heading and blocks, then code
// examples as fenced blocks. The collapsed plain-text content is a search
// artifact and is not exported.
func FormatPage(page *docdex.Page) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(page.URL)
	b.WriteString("\ntitle: ")
	b.WriteString(page.Title)
	b.WriteString("\ncrawled: ")
	b.WriteString(page.CrawledAt.Format("2006-01-02"))
	b.WriteString("\n---\n\n# ")
	b.WriteString(page.Title)
	b.WriteString("\n")

	for _, section := range page.Sections {
		b.WriteString("\n## ")
		b.WriteString(section.Heading)
		b.WriteString("\n")
		for _, block := range section.ContentBlocks {
			b.WriteString("\n")
			b.WriteString(block)
			b.WriteString("\n")
		}
	}

	for _, example := range page.CodeExamples {
		b.WriteString("\n```")
		b.WriteString(example.Language)
		b.WriteString("\n")
		b.WriteString(example.Code)
		b.WriteString("\n```\n")
	}

	return b.String()
}

// Writer exports pages as markdown files under a base directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WritePage writes one page to disk as a markdown file.
func (w *Writer) WritePage(ctx context.Context, page *docdex.Page) error {
	if err := page.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	relPath, err := URLToPath(page.URL)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(w.baseDir, relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	return os.WriteFile(fullPath, []byte(FormatPage(page)), 0644)
}

// WriteAll exports every page, writing files concurrently. The first error
// cancels the remaining writes.
func (w *Writer) WriteAll(ctx context.Context, pages []*docdex.Page) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(exportConcurrency)

	for _, page := range pages {
		g.Go(func() error {
			return w.WritePage(gctx, page)
		})
	}

	return g.Wait()
}
