package libdoc

// ExtractResult holds the main content of an HTML document.
type ExtractResult struct {
	// Title is the document title taken from page metadata, if any.
	Title string

	// ContentHTML is the main content with navigation, sidebars and
	// footers removed.
	ContentHTML string
}

// Extractor strips boilerplate from HTML documentation pages.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}
