package mock

import (
	"context"

	"github.com/xenith-ms/xlpipe"
)

var _ xlpipe.FileService = (*FileService)(nil)

// FileService is a mock implementation of xlpipe.FileService.
type FileService struct {
	CreateFileFn           func(ctx context.Context, file *xlpipe.DataFile) error
	FindFilesFn            func(ctx context.Context, filter xlpipe.FileFilter) ([]*xlpipe.DataFile, error)
	DeleteFilesByDatasetFn func(ctx context.Context, datasetID string) error
}

func (s *FileService) CreateFile(ctx context.Context, file *xlpipe.DataFile) error {
	return s.CreateFileFn(ctx, file)
}

func (s *FileService) FindFiles(ctx context.Context, filter xlpipe.FileFilter) ([]*xlpipe.DataFile, error) {
	return s.FindFilesFn(ctx, filter)
}

func (s *FileService) DeleteFilesByDataset(ctx context.Context, datasetID string) error {
	return s.DeleteFilesByDatasetFn(ctx, datasetID)
}
