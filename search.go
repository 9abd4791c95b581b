package libdoc

import "context"

// DefaultSearchLimit is the number of results returned when no limit is set.
const DefaultSearchLimit = 10

// SearchService provides ranked full-text search over documents.
type SearchService interface {
	// Search returns documents matching any term of query, most relevant
	// first. No matches is an empty slice, not an error.
	Search(ctx context.Context, query string, opts SearchOptions) ([]SearchResult, error)
}

// SearchOptions configures search behavior.
type SearchOptions struct {
	// Restrict results to a single library.
	Library string `json:"library,omitempty"`

	// Maximum number of results to return.
	Limit int `json:"limit,omitempty"`
}

// SearchResult represents a search match.
type SearchResult struct {
	ID      int64  `json:"id"`
	Library string `json:"library"`
	Path    string `json:"path"`
	Title   string `json:"title"`
	URL     string `json:"url,omitempty"`
	Snippet string `json:"snippet"`

	// Rank is a cost: lower values are better matches.
	Rank float64 `json:"rank"`
}
