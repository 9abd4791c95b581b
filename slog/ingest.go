package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/libdoc/ingest"
	"golang.org/x/time/rate"
)

// IngestProgress returns a progress callback that logs ingest events.
// Start, failure and finish events are always logged; per-file completions
// are logged at most once per interval.
func IngestProgress(logger *slog.Logger, interval time.Duration) ingest.ProgressFunc {
	sometimes := &rate.Sometimes{Interval: interval}

	return func(e ingest.ProgressEvent) {
		switch e.Type {
		case ingest.ProgressStarted:
			logger.Info("ingest started", "run", e.RunID, "total", e.Total)
		case ingest.ProgressFailed:
			logger.Warn("ingest file failed",
				"run", e.RunID,
				"path", e.Path,
				"err", e.Error,
			)
		case ingest.ProgressFinished:
			logger.Info("ingest finished",
				"run", e.RunID,
				"completed", e.Completed,
				"total", e.Total,
			)
		default:
			sometimes.Do(func() {
				logger.Info("ingest progress",
					"run", e.RunID,
					"completed", e.Completed,
					"total", e.Total,
					"path", e.Path,
					"event", e.Type.String(),
				)
			})
		}
	}
}
