// Package slog provides logging decorators for libdoc services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/libdoc"
)

// Ensure LoggingDocumentService implements libdoc.DocumentService.
var _ libdoc.DocumentService = (*LoggingDocumentService)(nil)

// LoggingDocumentService wraps a DocumentService with debug logging of
// writes and lookups.
type LoggingDocumentService struct {
	next   libdoc.DocumentService
	logger *slog.Logger
}

// NewLoggingDocumentService creates a new LoggingDocumentService.
func NewLoggingDocumentService(next libdoc.DocumentService, logger *slog.Logger) *LoggingDocumentService {
	return &LoggingDocumentService{next: next, logger: logger}
}

// UpsertDocument delegates to the wrapped service and logs the operation.
func (s *LoggingDocumentService) UpsertDocument(ctx context.Context, doc *libdoc.Document) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("upsert document",
			"library_id", doc.LibraryID,
			"path", doc.Path,
			"id", doc.ID,
			"bytes", len(doc.Content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.UpsertDocument(ctx, doc)
}

// FindDocumentByID delegates to the wrapped service and logs the operation.
func (s *LoggingDocumentService) FindDocumentByID(ctx context.Context, library string, id int64) (doc *libdoc.Document, err error) {
	defer func(begin time.Time) {
		s.logLookup("find document by id", library, id, begin, err)
	}(time.Now())
	return s.next.FindDocumentByID(ctx, library, id)
}

// FindDocumentByPath delegates to the wrapped service and logs the operation.
func (s *LoggingDocumentService) FindDocumentByPath(ctx context.Context, library, path string) (doc *libdoc.Document, err error) {
	defer func(begin time.Time) {
		s.logLookup("find document by path", library, path, begin, err)
	}(time.Now())
	return s.next.FindDocumentByPath(ctx, library, path)
}

// FindDocumentByTitle delegates to the wrapped service and logs the operation.
func (s *LoggingDocumentService) FindDocumentByTitle(ctx context.Context, library, title string) (doc *libdoc.Document, err error) {
	defer func(begin time.Time) {
		s.logLookup("find document by title", library, title, begin, err)
	}(time.Now())
	return s.next.FindDocumentByTitle(ctx, library, title)
}

// PruneDocuments delegates to the wrapped service and logs the operation.
func (s *LoggingDocumentService) PruneDocuments(ctx context.Context, libraryID int64, path string, keep []string) (removed int, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("prune documents",
			"library_id", libraryID,
			"path", path,
			"kept", len(keep),
			"removed", removed,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.PruneDocuments(ctx, libraryID, path, keep)
}

// ListDocuments delegates to the wrapped service and logs the operation.
func (s *LoggingDocumentService) ListDocuments(ctx context.Context, library string) (docs []*libdoc.Document, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("list documents",
			"library", library,
			"count", len(docs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ListDocuments(ctx, library)
}

// CheckIndex delegates to the wrapped service and logs the report.
func (s *LoggingDocumentService) CheckIndex(ctx context.Context) (report *libdoc.IndexReport, err error) {
	defer func(begin time.Time) {
		attrs := []any{"duration", time.Since(begin), "err", err}
		if report != nil {
			attrs = append(attrs,
				"documents", report.Documents,
				"index_entries", report.IndexEntries,
				"orphans", report.Orphans,
				"missing", report.Missing,
			)
		}
		s.logger.Debug("check index", attrs...)
	}(time.Now())
	return s.next.CheckIndex(ctx)
}

// logLookup logs a lookup. A not-found outcome is not logged as an error.
func (s *LoggingDocumentService) logLookup(msg, library string, key any, begin time.Time, err error) {
	found := err == nil
	if libdoc.ErrorCode(err) == libdoc.ENOTFOUND {
		err = nil
	}
	s.logger.Debug(msg,
		"library", library,
		"key", key,
		"found", found,
		"duration", time.Since(begin),
		"err", err,
	)
}
