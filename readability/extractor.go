// Package readability implements an HTML Extractor using go-readability,
// an alternative to the default trafilatura extractor for article-like pages.
package readability

import (
	"strings"

	"github.com/fwojciec/libdoc"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements libdoc.Extractor at compile time.
var _ libdoc.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the article title and content of rawHTML.
func (e *Extractor) Extract(rawHTML string) (*libdoc.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, libdoc.Errorf(libdoc.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, libdoc.Errorf(libdoc.EINVALID, "readability: %v", err)
	}

	return &libdoc.ExtractResult{
		Title:       strings.TrimSpace(article.Title),
		ContentHTML: article.Content,
	}, nil
}
