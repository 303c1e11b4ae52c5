// Package slog provides logging decorators for pipeline services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/xenith-ms/xlpipe"
)

// Ensure LoggingRepository implements xlpipe.Repository.
var _ xlpipe.Repository = (*LoggingRepository)(nil)

// LoggingRepository wraps a Repository with logging.
type LoggingRepository struct {
	next   xlpipe.Repository
	logger *slog.Logger
}

// NewLoggingRepository creates a new LoggingRepository.
func NewLoggingRepository(next xlpipe.Repository, logger *slog.Logger) *LoggingRepository {
	return &LoggingRepository{next: next, logger: logger}
}

// FileList delegates to the wrapped repository and logs the operation.
func (r *LoggingRepository) FileList(ctx context.Context, pxid string) (files []xlpipe.RemoteFile, err error) {
	defer func(begin time.Time) {
		r.logger.Info("file list",
			"pxid", pxid,
			"count", len(files),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.FileList(ctx, pxid)
}

// Download delegates to the wrapped repository and logs the operation.
func (r *LoggingRepository) Download(ctx context.Context, file xlpipe.RemoteFile, dest string) (err error) {
	defer func(begin time.Time) {
		r.logger.Info("download",
			"name", file.Name,
			"dest", dest,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Download(ctx, file, dest)
}
