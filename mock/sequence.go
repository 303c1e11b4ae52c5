package mock

import (
	"context"

	"github.com/xenith-ms/xlpipe"
)

var _ xlpipe.SequenceSource = (*SequenceSource)(nil)

// SequenceSource is a mock implementation of xlpipe.SequenceSource.
type SequenceSource struct {
	ProteinsFn func(ctx context.Context, accessions []string, dest string) error
	ProteomeFn func(ctx context.Context, proteomeID, domain, dest string) error
}

func (s *SequenceSource) Proteins(ctx context.Context, accessions []string, dest string) error {
	return s.ProteinsFn(ctx, accessions, dest)
}

func (s *SequenceSource) Proteome(ctx context.Context, proteomeID, domain, dest string) error {
	return s.ProteomeFn(ctx, proteomeID, domain, dest)
}
