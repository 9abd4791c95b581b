package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fwojciec/libdoc"
)

// Compile-time interface verification.
var _ libdoc.LibraryService = (*LibraryService)(nil)

// LibraryService implements libdoc.LibraryService using SQLite.
type LibraryService struct {
	db *DB
}

// NewLibraryService creates a new LibraryService.
func NewLibraryService(db *DB) *LibraryService {
	return &LibraryService{db: db}
}

// GetOrCreateLibrary returns the ID of the named library, creating it first
// if needed.
func (s *LibraryService) GetOrCreateLibrary(ctx context.Context, name string) (int64, error) {
	if err := libdoc.ValidateLibraryName(name); err != nil {
		return 0, err
	}

	var id int64
	err := s.db.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO libraries (name, indexed_at, doc_count)
			VALUES (?, ?, 0)
		`, name, formatTime(time.Now())); err != nil {
			return fmt.Errorf("insert library: %w", err)
		}
		return tx.QueryRowContext(ctx, "SELECT id FROM libraries WHERE name = ?", name).Scan(&id)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// FindLibraryByName retrieves a library by name.
func (s *LibraryService) FindLibraryByName(ctx context.Context, name string) (*libdoc.Library, error) {
	var lib libdoc.Library
	var indexedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, indexed_at, doc_count
		FROM libraries
		WHERE name = ?
	`, name).Scan(&lib.ID, &lib.Name, &indexedAt, &lib.DocCount)

	if isNoRows(err) {
		return nil, libdoc.Errorf(libdoc.ENOTFOUND, "library %q not found", name)
	}
	if err != nil {
		return nil, err
	}

	lib.IndexedAt, err = parseRFC3339(indexedAt, "indexed_at")
	if err != nil {
		return nil, err
	}
	return &lib, nil
}

// ListLibraries returns all libraries ordered by name.
func (s *LibraryService) ListLibraries(ctx context.Context) ([]*libdoc.Library, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, indexed_at, doc_count
		FROM libraries
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	libs := []*libdoc.Library{}
	for rows.Next() {
		var lib libdoc.Library
		var indexedAt string

		if err := rows.Scan(&lib.ID, &lib.Name, &indexedAt, &lib.DocCount); err != nil {
			return nil, err
		}

		lib.IndexedAt, err = parseRFC3339(indexedAt, "indexed_at")
		if err != nil {
			return nil, err
		}

		libs = append(libs, &lib)
	}

	return libs, rows.Err()
}

// DeleteLibrary removes the library, its documents and their index entries
// in one transaction.
func (s *LibraryService) DeleteLibrary(ctx context.Context, name string) (bool, error) {
	deleted := false

	err := s.db.withTx(ctx, func(tx *sql.Tx) error {
		var id int64
		err := tx.QueryRowContext(ctx, "SELECT id FROM libraries WHERE name = ?", name).Scan(&id)
		if isNoRows(err) {
			return nil
		}
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `
			DELETE FROM documents_fts
			WHERE rowid IN (SELECT id FROM documents WHERE library_id = ?)
		`, id); err != nil {
			return fmt.Errorf("delete index entries: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM documents WHERE library_id = ?", id); err != nil {
			return fmt.Errorf("delete documents: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM libraries WHERE id = ?", id); err != nil {
			return fmt.Errorf("delete library: %w", err)
		}

		deleted = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}
