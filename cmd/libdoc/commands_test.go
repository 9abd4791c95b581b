package main_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/fwojciec/libdoc"
	main "github.com/fwojciec/libdoc/cmd/libdoc"
	"github.com/fwojciec/libdoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDeps() (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdin:  &bytes.Buffer{},
		Stdout: stdout,
		Stderr: stderr,
		Logger: slog.New(slog.DiscardHandler),
	}, stdout, stderr
}

func TestSearchCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("passes library and limit to the search service", func(t *testing.T) {
		t.Parallel()

		var gotQuery string
		var gotOpts libdoc.SearchOptions

		deps, stdout, _ := newDeps()
		deps.Libraries = &mock.LibraryService{
			FindLibraryByNameFn: func(_ context.Context, name string) (*libdoc.Library, error) {
				return &libdoc.Library{Name: name}, nil
			},
		}
		deps.Search = &mock.SearchService{
			SearchFn: func(_ context.Context, query string, opts libdoc.SearchOptions) ([]libdoc.SearchResult, error) {
				gotQuery, gotOpts = query, opts
				return []libdoc.SearchResult{
					{ID: 7, Library: "react", Path: "auth.md", Snippet: "refresh   >>>tokens<<<\nexpire"},
				}, nil
			},
		}

		cmd := &main.SearchCmd{Query: "tokens", Library: "react", Limit: 3}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, "tokens", gotQuery)
		assert.Equal(t, libdoc.SearchOptions{Library: "react", Limit: 3}, gotOpts)
		assert.Contains(t, stdout.String(), "1. [react] auth.md (ID 7)")
		assert.Contains(t, stdout.String(), "tokens")
		assert.NotContains(t, stdout.String(), ">>>")
		assert.NotContains(t, stdout.String(), "\nexpire")
	})

	t.Run("unknown library lists none when nothing is indexed", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()
		deps.Libraries = &mock.LibraryService{
			FindLibraryByNameFn: func(_ context.Context, _ string) (*libdoc.Library, error) {
				return nil, libdoc.Errorf(libdoc.ENOTFOUND, "library not found")
			},
			ListLibrariesFn: func(_ context.Context) ([]*libdoc.Library, error) {
				return []*libdoc.Library{}, nil
			},
		}

		cmd := &main.SearchCmd{Query: "x", Library: "react"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, libdoc.ENOTFOUND, libdoc.ErrorCode(err))
		assert.Contains(t, stderr.String(), "No libraries indexed yet")
	})

	t.Run("unknown library in JSON mode writes an error object", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Libraries = &mock.LibraryService{
			FindLibraryByNameFn: func(_ context.Context, _ string) (*libdoc.Library, error) {
				return nil, libdoc.Errorf(libdoc.ENOTFOUND, "library not found")
			},
			ListLibrariesFn: func(_ context.Context) ([]*libdoc.Library, error) {
				return []*libdoc.Library{{Name: "vue"}}, nil
			},
		}

		cmd := &main.SearchCmd{Query: "x", Library: "react", JSON: true}
		require.Error(t, cmd.Run(deps))

		assert.JSONEq(t, `{"error":"library \"react\" not found","available":["vue"]}`, stdout.String())
	})

	t.Run("returns search errors", func(t *testing.T) {
		t.Parallel()

		dbErr := errors.New("database is locked")
		deps, _, stderr := newDeps()
		deps.Search = &mock.SearchService{
			SearchFn: func(_ context.Context, _ string, _ libdoc.SearchOptions) ([]libdoc.SearchResult, error) {
				return nil, dbErr
			},
		}

		cmd := &main.SearchCmd{Query: "x"}
		err := cmd.Run(deps)

		assert.Equal(t, dbErr, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}

func TestListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("shows helpful message when no libraries exist", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Libraries = &mock.LibraryService{
			ListLibrariesFn: func(_ context.Context) ([]*libdoc.Library, error) {
				return []*libdoc.Library{}, nil
			},
		}

		require.NoError(t, (&main.ListCmd{}).Run(deps))
		assert.Contains(t, stdout.String(), "No libraries indexed yet")
	})

	t.Run("fails when the index is inconsistent", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := newDeps()
		deps.Libraries = &mock.LibraryService{
			ListLibrariesFn: func(_ context.Context) ([]*libdoc.Library, error) {
				return []*libdoc.Library{{Name: "react", DocCount: 2, IndexedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}}, nil
			},
		}
		deps.Documents = &mock.DocumentService{
			CheckIndexFn: func(_ context.Context) (*libdoc.IndexReport, error) {
				return &libdoc.IndexReport{Documents: 2, IndexEntries: 3, Orphans: 1}, nil
			},
		}

		err := (&main.ListCmd{Check: true}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, libdoc.EINTERNAL, libdoc.ErrorCode(err))
		assert.Contains(t, stdout.String(), "react: 2 docs (indexed: 2026-01-02 03:04:05)")
		assert.Contains(t, stdout.String(), "1 orphaned")
		assert.Contains(t, stderr.String(), "out of sync")
	})

	t.Run("returns error when listing fails", func(t *testing.T) {
		t.Parallel()

		dbErr := errors.New("database connection failed")
		deps, _, stderr := newDeps()
		deps.Libraries = &mock.LibraryService{
			ListLibrariesFn: func(_ context.Context) ([]*libdoc.Library, error) {
				return nil, dbErr
			},
		}

		err := (&main.ListCmd{}).Run(deps)

		assert.Equal(t, dbErr, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}

func TestReadCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("resolves numeric identifiers as IDs", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Documents = &mock.DocumentService{
			FindDocumentByIDFn: func(_ context.Context, library string, id int64) (*libdoc.Document, error) {
				return &libdoc.Document{ID: id, Library: library, Path: "intro.md", Content: "Hello."}, nil
			},
		}

		require.NoError(t, (&main.ReadCmd{Library: "react", Identifier: "12"}).Run(deps))

		assert.Contains(t, stdout.String(), "# intro.md\n")
		assert.Contains(t, stdout.String(), "ID: 12 | Path: intro.md")
	})

	t.Run("returns storage errors", func(t *testing.T) {
		t.Parallel()

		dbErr := errors.New("disk I/O error")
		deps, _, stderr := newDeps()
		deps.Documents = &mock.DocumentService{
			FindDocumentByPathFn: func(_ context.Context, _, _ string) (*libdoc.Document, error) {
				return nil, dbErr
			},
		}

		err := (&main.ReadCmd{Library: "react", Identifier: "intro.md"}).Run(deps)

		assert.Equal(t, dbErr, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}

func TestDeleteCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("requires --force flag", func(t *testing.T) {
		t.Parallel()

		called := false
		deps, _, stderr := newDeps()
		deps.Libraries = &mock.LibraryService{
			DeleteLibraryFn: func(_ context.Context, _ string) (bool, error) {
				called = true
				return true, nil
			},
		}

		err := (&main.DeleteCmd{Library: "react"}).Run(deps)

		require.Error(t, err)
		assert.False(t, called)
		assert.Contains(t, stderr.String(), "--force")
	})
}

func TestServeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("requires services", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()

		err := (&main.ServeCmd{}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}
