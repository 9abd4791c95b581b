package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/libdoc"
	"github.com/fwojciec/libdoc/mock"
	libslog "github.com/fwojciec/libdoc/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func debugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingDocumentService_UpsertDocument(t *testing.T) {
	t.Parallel()

	t.Run("logs path, id and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.DocumentService{
			UpsertDocumentFn: func(_ context.Context, doc *libdoc.Document) error {
				doc.ID = 42
				return nil
			},
		}

		svc := libslog.NewLoggingDocumentService(inner, debugLogger(&buf))
		err := svc.UpsertDocument(context.Background(), &libdoc.Document{LibraryID: 1, Path: "a.md", Content: "abc"})

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "upsert document")
		assert.Contains(t, output, "path=a.md")
		assert.Contains(t, output, "id=42")
		assert.Contains(t, output, "bytes=3")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.DocumentService{
			UpsertDocumentFn: func(_ context.Context, _ *libdoc.Document) error {
				return errors.New("disk full")
			},
		}

		svc := libslog.NewLoggingDocumentService(inner, debugLogger(&buf))
		err := svc.UpsertDocument(context.Background(), &libdoc.Document{Path: "a.md"})

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"disk full\"")
	})

	t.Run("is silent at info level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.DocumentService{
			UpsertDocumentFn: func(_ context.Context, _ *libdoc.Document) error { return nil },
		}

		svc := libslog.NewLoggingDocumentService(inner, slog.New(slog.NewTextHandler(&buf, nil)))
		require.NoError(t, svc.UpsertDocument(context.Background(), &libdoc.Document{Path: "a.md"}))

		assert.Empty(t, buf.String())
	})
}

func TestLoggingDocumentService_FindDocument(t *testing.T) {
	t.Parallel()

	t.Run("logs not found without error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.DocumentService{
			FindDocumentByPathFn: func(_ context.Context, _, _ string) (*libdoc.Document, error) {
				return nil, libdoc.Errorf(libdoc.ENOTFOUND, "document not found")
			},
		}

		svc := libslog.NewLoggingDocumentService(inner, debugLogger(&buf))
		_, err := svc.FindDocumentByPath(context.Background(), "react", "a.md")

		assert.Equal(t, libdoc.ENOTFOUND, libdoc.ErrorCode(err))
		output := buf.String()
		assert.Contains(t, output, "find document by path")
		assert.Contains(t, output, "found=false")
		assert.Contains(t, output, "err=<nil>")
	})

	t.Run("logs found document by id", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.DocumentService{
			FindDocumentByIDFn: func(_ context.Context, _ string, id int64) (*libdoc.Document, error) {
				return &libdoc.Document{ID: id}, nil
			},
		}

		svc := libslog.NewLoggingDocumentService(inner, debugLogger(&buf))
		doc, err := svc.FindDocumentByID(context.Background(), "react", 7)

		require.NoError(t, err)
		assert.Equal(t, int64(7), doc.ID)
		assert.Contains(t, buf.String(), "key=7")
		assert.Contains(t, buf.String(), "found=true")
	})
}

func TestLoggingDocumentService_CheckIndex(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	inner := &mock.DocumentService{
		CheckIndexFn: func(_ context.Context) (*libdoc.IndexReport, error) {
			return &libdoc.IndexReport{Documents: 3, IndexEntries: 3}, nil
		},
	}

	svc := libslog.NewLoggingDocumentService(inner, debugLogger(&buf))
	report, err := svc.CheckIndex(context.Background())

	require.NoError(t, err)
	assert.True(t, report.Consistent())
	assert.Contains(t, buf.String(), "documents=3")
	assert.Contains(t, buf.String(), "orphans=0")
}

func TestLoggingDocumentService_PruneDocuments(t *testing.T) {
	t.Parallel()

	t.Run("logs path and removed count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.DocumentService{
			PruneDocumentsFn: func(_ context.Context, _ int64, _ string, _ []string) (int, error) {
				return 2, nil
			},
		}

		svc := libslog.NewLoggingDocumentService(inner, debugLogger(&buf))
		removed, err := svc.PruneDocuments(context.Background(), 1, "g.md", []string{"g.md"})

		require.NoError(t, err)
		assert.Equal(t, 2, removed)
		output := buf.String()
		assert.Contains(t, output, "prune documents")
		assert.Contains(t, output, "path=g.md")
		assert.Contains(t, output, "removed=2")
	})
}
