package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/libdoc"
)

// Ensure LoggingLibraryService implements libdoc.LibraryService.
var _ libdoc.LibraryService = (*LoggingLibraryService)(nil)

// LoggingLibraryService wraps a LibraryService with logging. Deletions are
// logged at info level, everything else at debug level.
type LoggingLibraryService struct {
	next   libdoc.LibraryService
	logger *slog.Logger
}

// NewLoggingLibraryService creates a new LoggingLibraryService.
func NewLoggingLibraryService(next libdoc.LibraryService, logger *slog.Logger) *LoggingLibraryService {
	return &LoggingLibraryService{next: next, logger: logger}
}

// GetOrCreateLibrary delegates to the wrapped service and logs the operation.
func (s *LoggingLibraryService) GetOrCreateLibrary(ctx context.Context, name string) (id int64, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("get or create library",
			"library", name,
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.GetOrCreateLibrary(ctx, name)
}

// FindLibraryByName delegates to the wrapped service and logs the operation.
func (s *LoggingLibraryService) FindLibraryByName(ctx context.Context, name string) (lib *libdoc.Library, err error) {
	defer func(begin time.Time) {
		found := err == nil
		logErr := err
		if libdoc.ErrorCode(err) == libdoc.ENOTFOUND {
			logErr = nil
		}
		s.logger.Debug("find library",
			"library", name,
			"found", found,
			"duration", time.Since(begin),
			"err", logErr,
		)
	}(time.Now())
	return s.next.FindLibraryByName(ctx, name)
}

// ListLibraries delegates to the wrapped service and logs the operation.
func (s *LoggingLibraryService) ListLibraries(ctx context.Context) (libs []*libdoc.Library, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("list libraries",
			"count", len(libs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ListLibraries(ctx)
}

// DeleteLibrary delegates to the wrapped service and logs the operation.
func (s *LoggingLibraryService) DeleteLibrary(ctx context.Context, name string) (deleted bool, err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete library",
			"library", name,
			"deleted", deleted,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteLibrary(ctx, name)
}
