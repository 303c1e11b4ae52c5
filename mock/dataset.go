package mock

import (
	"context"

	"github.com/xenith-ms/xlpipe"
)

var _ xlpipe.DatasetService = (*DatasetService)(nil)

// DatasetService is a mock implementation of xlpipe.DatasetService.
type DatasetService struct {
	CreateDatasetFn     func(ctx context.Context, dataset *xlpipe.Dataset) error
	FindDatasetByPXIDFn func(ctx context.Context, pxid string) (*xlpipe.Dataset, error)
	FindDatasetsFn      func(ctx context.Context, filter xlpipe.DatasetFilter) ([]*xlpipe.Dataset, error)
	UpdateDatasetFn     func(ctx context.Context, pxid string, upd xlpipe.DatasetUpdate) (*xlpipe.Dataset, error)
	DeleteDatasetFn     func(ctx context.Context, pxid string) error
}

func (s *DatasetService) CreateDataset(ctx context.Context, dataset *xlpipe.Dataset) error {
	return s.CreateDatasetFn(ctx, dataset)
}

func (s *DatasetService) FindDatasetByPXID(ctx context.Context, pxid string) (*xlpipe.Dataset, error) {
	return s.FindDatasetByPXIDFn(ctx, pxid)
}

func (s *DatasetService) FindDatasets(ctx context.Context, filter xlpipe.DatasetFilter) ([]*xlpipe.Dataset, error) {
	return s.FindDatasetsFn(ctx, filter)
}

func (s *DatasetService) UpdateDataset(ctx context.Context, pxid string, upd xlpipe.DatasetUpdate) (*xlpipe.Dataset, error) {
	return s.UpdateDatasetFn(ctx, pxid, upd)
}

func (s *DatasetService) DeleteDataset(ctx context.Context, pxid string) error {
	return s.DeleteDatasetFn(ctx, pxid)
}
