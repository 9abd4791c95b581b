package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/libdoc"
)

// Compile-time interface verification.
var _ libdoc.SearchService = (*SearchService)(nil)

// SearchConfig controls ranking and snippet generation.
type SearchConfig struct {
	// BM25 column weights. Title matches dominate body matches.
	TitleWeight   float64
	ContentWeight float64
	PathWeight    float64

	// Markers inserted around matched terms in snippets.
	HighlightStart string
	HighlightEnd   string
	Ellipsis       string

	// Maximum snippet length in tokens, between 1 and 64.
	SnippetTokens int
}

// DefaultSearchConfig returns the default ranking and snippet settings.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		TitleWeight:    10.0,
		ContentWeight:  1.0,
		PathWeight:     5.0,
		HighlightStart: ">>>",
		HighlightEnd:   "<<<",
		Ellipsis:       "...",
		SnippetTokens:  64,
	}
}

// SearchService implements libdoc.SearchService using the FTS5 index.
type SearchService struct {
	db     *DB
	config SearchConfig
}

// NewSearchService creates a new SearchService with DefaultSearchConfig.
func NewSearchService(db *DB) *SearchService {
	return NewSearchServiceWithConfig(db, DefaultSearchConfig())
}

// NewSearchServiceWithConfig creates a new SearchService with the given config.
func NewSearchServiceWithConfig(db *DB, config SearchConfig) *SearchService {
	config.SnippetTokens = max(1, min(config.SnippetTokens, 64))
	return &SearchService{db: db, config: config}
}

// Search returns documents matching any term of query ordered by BM25 cost.
func (s *SearchService) Search(ctx context.Context, query string, opts libdoc.SearchOptions) ([]libdoc.SearchResult, error) {
	expr := BuildQuery(query)
	if IsEmptyQuery(expr) {
		return []libdoc.SearchResult{}, nil
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = libdoc.DefaultSearchLimit
	}

	c := s.config

	var sql strings.Builder
	sql.WriteString(`
		SELECT d.id, l.name, d.path, d.title, d.url,
			snippet(documents_fts, 1, ?, ?, ?, ?) AS snippet,
			bm25(documents_fts, ?, ?, ?) AS cost
		FROM documents_fts
		JOIN documents d ON documents_fts.rowid = d.id
		JOIN libraries l ON d.library_id = l.id
		WHERE documents_fts MATCH ?`)
	args := []any{
		c.HighlightStart, c.HighlightEnd, c.Ellipsis, c.SnippetTokens,
		c.TitleWeight, c.ContentWeight, c.PathWeight,
		expr,
	}

	if opts.Library != "" {
		sql.WriteString(" AND l.name = ?")
		args = append(args, opts.Library)
	}

	sql.WriteString(" ORDER BY cost LIMIT ?")
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, sql.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", expr, err)
	}
	defer rows.Close()

	results := []libdoc.SearchResult{}
	for rows.Next() {
		var r libdoc.SearchResult
		if err := rows.Scan(&r.ID, &r.Library, &r.Path, &r.Title, &r.URL, &r.Snippet, &r.Rank); err != nil {
			return nil, err
		}
		results = append(results, r)
	}

	return results, rows.Err()
}
