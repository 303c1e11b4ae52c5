package mock

import (
	"context"

	"github.com/xenith-ms/xlpipe"
)

var _ xlpipe.ParamDetector = (*ParamDetector)(nil)

// ParamDetector is a mock implementation of xlpipe.ParamDetector.
type ParamDetector struct {
	DetectFn func(ctx context.Context, mzmlFiles []string, fileroot, outDir string) (*xlpipe.SearchParams, error)
}

func (d *ParamDetector) Detect(ctx context.Context, mzmlFiles []string, fileroot, outDir string) (*xlpipe.SearchParams, error) {
	return d.DetectFn(ctx, mzmlFiles, fileroot, outDir)
}
