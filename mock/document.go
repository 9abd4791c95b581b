package mock

import (
	"context"

	"github.com/fwojciec/libdoc"
)

var _ libdoc.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of libdoc.DocumentService.
type DocumentService struct {
	UpsertDocumentFn      func(ctx context.Context, doc *libdoc.Document) error
	FindDocumentByIDFn    func(ctx context.Context, library string, id int64) (*libdoc.Document, error)
	FindDocumentByPathFn  func(ctx context.Context, library, path string) (*libdoc.Document, error)
	FindDocumentByTitleFn func(ctx context.Context, library, title string) (*libdoc.Document, error)
	PruneDocumentsFn      func(ctx context.Context, libraryID int64, path string, keep []string) (int, error)
	ListDocumentsFn       func(ctx context.Context, library string) ([]*libdoc.Document, error)
	CheckIndexFn          func(ctx context.Context) (*libdoc.IndexReport, error)
}

func (s *DocumentService) UpsertDocument(ctx context.Context, doc *libdoc.Document) error {
	return s.UpsertDocumentFn(ctx, doc)
}

func (s *DocumentService) FindDocumentByID(ctx context.Context, library string, id int64) (*libdoc.Document, error) {
	return s.FindDocumentByIDFn(ctx, library, id)
}

func (s *DocumentService) FindDocumentByPath(ctx context.Context, library, path string) (*libdoc.Document, error) {
	return s.FindDocumentByPathFn(ctx, library, path)
}

func (s *DocumentService) FindDocumentByTitle(ctx context.Context, library, title string) (*libdoc.Document, error) {
	return s.FindDocumentByTitleFn(ctx, library, title)
}

func (s *DocumentService) PruneDocuments(ctx context.Context, libraryID int64, path string, keep []string) (int, error) {
	return s.PruneDocumentsFn(ctx, libraryID, path, keep)
}

func (s *DocumentService) ListDocuments(ctx context.Context, library string) ([]*libdoc.Document, error) {
	return s.ListDocumentsFn(ctx, library)
}

func (s *DocumentService) CheckIndex(ctx context.Context) (*libdoc.IndexReport, error) {
	return s.CheckIndexFn(ctx)
}
