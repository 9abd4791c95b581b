package libdoc

import (
	"context"
	"strings"
	"time"
)

// Library is a named collection of indexed documents.
type Library struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	IndexedAt time.Time `json:"indexedAt"`
	DocCount  int       `json:"docCount"`
}

// ValidateLibraryName returns an error if name cannot identify a library.
func ValidateLibraryName(name string) error {
	if strings.TrimSpace(name) == "" {
		return Errorf(EINVALID, "library name required")
	}
	return nil
}

// LibraryService represents a service for managing libraries.
type LibraryService interface {
	// GetOrCreateLibrary returns the ID of the named library, creating it
	// if it does not exist. Concurrent callers converge on a single row.
	GetOrCreateLibrary(ctx context.Context, name string) (int64, error)

	// FindLibraryByName retrieves a library by name.
	// Returns ENOTFOUND if library does not exist.
	FindLibraryByName(ctx context.Context, name string) (*Library, error)

	// ListLibraries returns all libraries ordered by name.
	ListLibraries(ctx context.Context) ([]*Library, error)

	// DeleteLibrary removes a library with all of its documents and index
	// entries. Returns false if the library does not exist.
	DeleteLibrary(ctx context.Context, name string) (bool, error)
}
