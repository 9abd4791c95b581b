package mock

import "github.com/fwojciec/libdoc"

var _ libdoc.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of libdoc.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*libdoc.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*libdoc.ExtractResult, error) {
	return e.ExtractFn(html)
}
