package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/libdoc"
)

// Compile-time interface verification.
var _ libdoc.DocumentService = (*DocumentService)(nil)

// DocumentService implements libdoc.DocumentService using SQLite.
type DocumentService struct {
	db *DB
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db}
}

// hashContent computes the xxHash of content as a hex string.
func hashContent(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// UpsertDocument replaces the document stored at doc's library and path.
// The old row and its index entry are deleted, the new row and index entry
// inserted, and the library's document count refreshed in one transaction.
func (s *DocumentService) UpsertDocument(ctx context.Context, doc *libdoc.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC().Truncate(time.Second)
	hash := hashContent(doc.Content)
	var id int64

	err := s.db.withTx(ctx, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, "SELECT 1 FROM libraries WHERE id = ?", doc.LibraryID).Scan(&exists)
		if isNoRows(err) {
			return libdoc.Errorf(libdoc.EINVALID, "library %d does not exist", doc.LibraryID)
		}
		if err != nil {
			return err
		}

		if err := deleteDocumentAt(ctx, tx, doc.LibraryID, doc.Path); err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, `
			INSERT INTO documents (library_id, path, url, title, content, content_hash, indexed_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, doc.LibraryID, doc.Path, doc.URL, doc.Title, doc.Content, hash, formatTime(now))
		if err != nil {
			return fmt.Errorf("insert document: %w", err)
		}
		if id, err = result.LastInsertId(); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO documents_fts (rowid, title, content, path)
			VALUES (?, ?, ?, ?)
		`, id, doc.Title, doc.Content, doc.Path); err != nil {
			return fmt.Errorf("insert index entry: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE libraries
			SET doc_count = (SELECT COUNT(*) FROM documents WHERE library_id = ?),
				indexed_at = ?
			WHERE id = ?
		`, doc.LibraryID, formatTime(now), doc.LibraryID); err != nil {
			return fmt.Errorf("update library: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	doc.ID = id
	doc.ContentHash = hash
	doc.IndexedAt = now
	return nil
}

// deleteDocumentAt removes the document at (libraryID, path) and its index
// entry, if present.
func deleteDocumentAt(ctx context.Context, tx *sql.Tx, libraryID int64, path string) error {
	var id int64
	err := tx.QueryRowContext(ctx,
		"SELECT id FROM documents WHERE library_id = ? AND path = ?", libraryID, path,
	).Scan(&id)
	if isNoRows(err) {
		return nil
	}
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM documents_fts WHERE rowid = ?", id); err != nil {
		return fmt.Errorf("delete index entry: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// PruneDocuments removes the stored documents of source file path that are
// not listed in keep, together with their index entries.
func (s *DocumentService) PruneDocuments(ctx context.Context, libraryID int64, path string, keep []string) (int, error) {
	if path == "" {
		return 0, libdoc.Errorf(libdoc.EINVALID, "document path required")
	}

	kept := make(map[string]bool, len(keep))
	for _, p := range keep {
		kept[p] = true
	}
	prefix := path + libdoc.SectionSeparator

	var removed int
	err := s.db.withTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, `
			SELECT path FROM documents
			WHERE library_id = ? AND (path = ? OR substr(path, 1, length(?)) = ?)
		`, libraryID, path, prefix, prefix)
		if err != nil {
			return err
		}

		var stale []string
		for rows.Next() {
			var p string
			if err := rows.Scan(&p); err != nil {
				rows.Close()
				return err
			}
			if !kept[p] {
				stale = append(stale, p)
			}
		}
		if err := rows.Close(); err != nil {
			return err
		}
		if err := rows.Err(); err != nil {
			return err
		}
		if len(stale) == 0 {
			return nil
		}

		for _, p := range stale {
			if err := deleteDocumentAt(ctx, tx, libraryID, p); err != nil {
				return err
			}
		}
		removed = len(stale)

		if _, err := tx.ExecContext(ctx, `
			UPDATE libraries
			SET doc_count = (SELECT COUNT(*) FROM documents WHERE library_id = ?)
			WHERE id = ?
		`, libraryID, libraryID); err != nil {
			return fmt.Errorf("update library: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

const selectDocument = `
	SELECT d.id, d.library_id, l.name, d.path, d.url, d.title, d.content, d.content_hash, d.indexed_at
	FROM documents d
	JOIN libraries l ON d.library_id = l.id
`

// FindDocumentByID retrieves a document by ID within a library.
func (s *DocumentService) FindDocumentByID(ctx context.Context, library string, id int64) (*libdoc.Document, error) {
	return s.findDocument(ctx, selectDocument+"WHERE d.id = ? AND l.name = ?", id, library)
}

// FindDocumentByPath retrieves a document by its exact path within a library.
func (s *DocumentService) FindDocumentByPath(ctx context.Context, library, path string) (*libdoc.Document, error) {
	return s.findDocument(ctx, selectDocument+"WHERE d.path = ? AND l.name = ?", path, library)
}

// FindDocumentByTitle retrieves a document by title, ignoring case. If
// several documents share the title, the oldest one is returned.
func (s *DocumentService) FindDocumentByTitle(ctx context.Context, library, title string) (*libdoc.Document, error) {
	return s.findDocument(ctx,
		selectDocument+"WHERE LOWER(d.title) = LOWER(?) AND l.name = ? ORDER BY d.id LIMIT 1", title, library)
}

func (s *DocumentService) findDocument(ctx context.Context, query string, args ...any) (*libdoc.Document, error) {
	var doc libdoc.Document
	var indexedAt string

	err := s.db.QueryRowContext(ctx, query, args...).Scan(&doc.ID, &doc.LibraryID, &doc.Library,
		&doc.Path, &doc.URL, &doc.Title, &doc.Content, &doc.ContentHash, &indexedAt)
	if isNoRows(err) {
		return nil, libdoc.Errorf(libdoc.ENOTFOUND, "document not found")
	}
	if err != nil {
		return nil, err
	}

	doc.IndexedAt, err = parseRFC3339(indexedAt, "indexed_at")
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListDocuments returns the documents of a library ordered by path.
func (s *DocumentService) ListDocuments(ctx context.Context, library string) ([]*libdoc.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT d.id, d.library_id, l.name, d.path, d.url, d.title, d.content_hash, d.indexed_at
		FROM documents d
		JOIN libraries l ON d.library_id = l.id
		WHERE l.name = ?
		ORDER BY d.path
	`, library)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := []*libdoc.Document{}
	for rows.Next() {
		var doc libdoc.Document
		var indexedAt string

		if err := rows.Scan(&doc.ID, &doc.LibraryID, &doc.Library, &doc.Path, &doc.URL,
			&doc.Title, &doc.ContentHash, &indexedAt); err != nil {
			return nil, err
		}

		doc.IndexedAt, err = parseRFC3339(indexedAt, "indexed_at")
		if err != nil {
			return nil, err
		}

		docs = append(docs, &doc)
	}

	return docs, rows.Err()
}

// CheckIndex compares the documents table with the full-text index.
func (s *DocumentService) CheckIndex(ctx context.Context) (*libdoc.IndexReport, error) {
	var report libdoc.IndexReport

	queries := []struct {
		dst   *int
		query string
	}{
		{&report.Documents, "SELECT COUNT(*) FROM documents"},
		{&report.IndexEntries, "SELECT COUNT(*) FROM documents_fts"},
		{&report.Orphans, "SELECT COUNT(*) FROM documents_fts WHERE rowid NOT IN (SELECT id FROM documents)"},
		{&report.Missing, "SELECT COUNT(*) FROM documents WHERE id NOT IN (SELECT rowid FROM documents_fts)"},
	}
	for _, q := range queries {
		if err := s.db.QueryRowContext(ctx, q.query).Scan(q.dst); err != nil {
			return nil, fmt.Errorf("check index: %w", err)
		}
	}

	return &report, nil
}
