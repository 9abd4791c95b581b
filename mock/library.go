package mock

import (
	"context"

	"github.com/fwojciec/libdoc"
)

var _ libdoc.LibraryService = (*LibraryService)(nil)

// LibraryService is a mock implementation of libdoc.LibraryService.
type LibraryService struct {
	GetOrCreateLibraryFn func(ctx context.Context, name string) (int64, error)
	FindLibraryByNameFn  func(ctx context.Context, name string) (*libdoc.Library, error)
	ListLibrariesFn      func(ctx context.Context) ([]*libdoc.Library, error)
	DeleteLibraryFn      func(ctx context.Context, name string) (bool, error)
}

func (s *LibraryService) GetOrCreateLibrary(ctx context.Context, name string) (int64, error) {
	return s.GetOrCreateLibraryFn(ctx, name)
}

func (s *LibraryService) FindLibraryByName(ctx context.Context, name string) (*libdoc.Library, error) {
	return s.FindLibraryByNameFn(ctx, name)
}

func (s *LibraryService) ListLibraries(ctx context.Context) ([]*libdoc.Library, error) {
	return s.ListLibrariesFn(ctx)
}

func (s *LibraryService) DeleteLibrary(ctx context.Context, name string) (bool, error) {
	return s.DeleteLibraryFn(ctx, name)
}
