package mock

import (
	"context"

	"github.com/xenith-ms/xlpipe"
)

var _ xlpipe.DecoyGenerator = (*DecoyGenerator)(nil)

// DecoyGenerator is a mock implementation of xlpipe.DecoyGenerator.
type DecoyGenerator struct {
	MakeDecoysFn func(ctx context.Context, fasta, out string, enzyme xlpipe.Enzyme, seed int) error
}

func (g *DecoyGenerator) MakeDecoys(ctx context.Context, fasta, out string, enzyme xlpipe.Enzyme, seed int) error {
	return g.MakeDecoysFn(ctx, fasta, out, enzyme, seed)
}
