package mock

import (
	"context"

	"github.com/xenith-ms/xlpipe"
)

var _ xlpipe.Repository = (*Repository)(nil)

// Repository is a mock implementation of xlpipe.Repository.
type Repository struct {
	FileListFn func(ctx context.Context, pxid string) ([]xlpipe.RemoteFile, error)
	DownloadFn func(ctx context.Context, file xlpipe.RemoteFile, dest string) error
}

func (r *Repository) FileList(ctx context.Context, pxid string) ([]xlpipe.RemoteFile, error) {
	return r.FileListFn(ctx, pxid)
}

func (r *Repository) Download(ctx context.Context, file xlpipe.RemoteFile, dest string) error {
	return r.DownloadFn(ctx, file, dest)
}
