package mock

import (
	"context"

	"github.com/xenith-ms/xlpipe"
)

var _ xlpipe.SearchEngine = (*SearchEngine)(nil)

// SearchEngine is a mock implementation of xlpipe.SearchEngine.
type SearchEngine struct {
	VersionFn func() string
	SearchFn  func(ctx context.Context, req xlpipe.SearchRequest) (*xlpipe.SearchResult, error)
}

func (e *SearchEngine) Version() string {
	return e.VersionFn()
}

func (e *SearchEngine) Search(ctx context.Context, req xlpipe.SearchRequest) (*xlpipe.SearchResult, error) {
	return e.SearchFn(ctx, req)
}
