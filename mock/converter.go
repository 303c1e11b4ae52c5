package mock

import (
	"context"

	"github.com/xenith-ms/xlpipe"
)

var _ xlpipe.Converter = (*Converter)(nil)

// Converter is a mock implementation of xlpipe.Converter.
type Converter struct {
	ConvertFn func(ctx context.Context, rawFile, outDir string) (string, error)
}

func (c *Converter) Convert(ctx context.Context, rawFile, outDir string) (string, error) {
	return c.ConvertFn(ctx, rawFile, outDir)
}
