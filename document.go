package libdoc

import (
	"context"
	"strings"
	"time"
)

// Document represents an indexed unit of documentation. Large source files
// are stored as several documents, one per section.
type Document struct {
	ID          int64     `json:"id"`
	LibraryID   int64     `json:"libraryId"`
	Library     string    `json:"library,omitempty"`
	Path        string    `json:"path"`
	URL         string    `json:"url,omitempty"`
	Title       string    `json:"title,omitempty"`
	Content     string    `json:"content,omitempty"`
	ContentHash string    `json:"contentHash,omitempty"`
	IndexedAt   time.Time `json:"indexedAt"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.LibraryID == 0 {
		return Errorf(EINVALID, "document library ID required")
	}
	if d.Path == "" {
		return Errorf(EINVALID, "document path required")
	}
	if strings.TrimSpace(d.Content) == "" {
		return Errorf(EINVALID, "document content required")
	}
	return nil
}

// DocumentLookup finds single documents within a library.
// Every method returns ENOTFOUND when no document matches.
type DocumentLookup interface {
	// FindDocumentByID retrieves a document by ID, scoped to a library.
	FindDocumentByID(ctx context.Context, library string, id int64) (*Document, error)

	// FindDocumentByPath retrieves a document by exact, case-sensitive path.
	FindDocumentByPath(ctx context.Context, library, path string) (*Document, error)

	// FindDocumentByTitle retrieves a document by case-insensitive title.
	FindDocumentByTitle(ctx context.Context, library, title string) (*Document, error)
}

// DocumentService represents a service for managing documents.
type DocumentService interface {
	DocumentLookup

	// UpsertDocument replaces any document at the same library and path
	// with doc. The document and its index entry are written atomically.
	// Sets ID, ContentHash and IndexedAt on success.
	UpsertDocument(ctx context.Context, doc *Document) error

	// PruneDocuments removes the documents stored for source file path,
	// that is the document at path and its sections at path##<section>,
	// except those whose path is in keep. Rows and index entries are
	// removed in one transaction. Returns the number of removed documents.
	PruneDocuments(ctx context.Context, libraryID int64, path string, keep []string) (int, error)

	// ListDocuments returns the documents of a library ordered by path.
	// Content is not populated. Returns an empty slice for unknown libraries.
	ListDocuments(ctx context.Context, library string) ([]*Document, error)

	// CheckIndex compares the document table with the full-text index.
	CheckIndex(ctx context.Context) (*IndexReport, error)
}

// IndexReport describes the consistency of the full-text index.
type IndexReport struct {
	Documents    int `json:"documents"`
	IndexEntries int `json:"indexEntries"`
	// Orphans are index entries without a document.
	Orphans int `json:"orphans"`
	// Missing are documents without an index entry.
	Missing int `json:"missing"`
}

// Consistent reports whether every document has exactly one index entry
// and no index entry refers to a removed document.
func (r *IndexReport) Consistent() bool {
	return r.Orphans == 0 && r.Missing == 0 && r.Documents == r.IndexEntries
}
