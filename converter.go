package libdoc

// Converter converts HTML to markdown so HTML sources can be indexed
// alongside markdown ones.
type Converter interface {
	// Convert transforms HTML content, usually an Extractor's output, into
	// markdown.
	Convert(html string) (string, error)
}
