package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/xenith-ms/xlpipe"
)

// Ensure LoggingEngine implements xlpipe.SearchEngine.
var _ xlpipe.SearchEngine = (*LoggingEngine)(nil)

// LoggingEngine wraps a SearchEngine with logging.
type LoggingEngine struct {
	next   xlpipe.SearchEngine
	logger *slog.Logger
}

// NewLoggingEngine creates a new LoggingEngine.
func NewLoggingEngine(next xlpipe.SearchEngine, logger *slog.Logger) *LoggingEngine {
	return &LoggingEngine{next: next, logger: logger}
}

// Version delegates to the wrapped engine.
func (e *LoggingEngine) Version() string {
	return e.next.Version()
}

// Search delegates to the wrapped engine and logs the operation.
func (e *LoggingEngine) Search(ctx context.Context, req xlpipe.SearchRequest) (result *xlpipe.SearchResult, err error) {
	defer func(begin time.Time) {
		var outputs int
		if result != nil {
			outputs = len(result.Outputs)
		}
		e.logger.Info("search",
			"engine", e.next.Version(),
			"spectra", len(req.MzMLFiles),
			"outputs", outputs,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Search(ctx, req)
}
