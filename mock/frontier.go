package mock

import "github.com/docdex/docdex"

var _ docdex.Frontier = (*Frontier)(nil)

// Frontier is a mock implementation of docdex.Frontier.
type Frontier struct {
	EnqueueFn      func(url string, depth int, origin string) bool
	NextFn         func() (docdex.FrontierEntry, bool)
	IsExhaustedFn  func() bool
	VisitedFn      func(url string) bool
	VisitedCountFn func() int
	LenFn          func() int
}

func (f *Frontier) Enqueue(url string, depth int, origin string) bool {
	return f.EnqueueFn(url, depth, origin)
}

func (f *Frontier) Next() (docdex.FrontierEntry, bool) {
	return f.NextFn()
}

func (f *Frontier) IsExhausted() bool {
	return f.IsExhaustedFn()
}

func (f *Frontier) Visited(url string) bool {
	return f.VisitedFn(url)
}

func (f *Frontier) VisitedCount() int {
	return f.VisitedCountFn()
}

func (f *Frontier) Len() int {
	return f.LenFn()
}
