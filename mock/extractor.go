package mock

import "github.com/docdex/docdex"

var _ docdex.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of docdex.Extractor.
type Extractor struct {
	ExtractFn func(rawBody string, sourceURL string) (*docdex.Page, error)
}

func (e *Extractor) Extract(rawBody string, sourceURL string) (*docdex.Page, error) {
	return e.ExtractFn(rawBody, sourceURL)
}

var _ docdex.LinkResolver = (*LinkResolver)(nil)

// LinkResolver is a mock implementation of docdex.LinkResolver.
type LinkResolver struct {
	LinksFn func(rawBody string, baseURL string) ([]string, error)
}

func (r *LinkResolver) Links(rawBody string, baseURL string) ([]string, error) {
	return r.LinksFn(rawBody, baseURL)
}
