package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xenith-ms/xlpipe"
)

// Compile-time interface verification.
var _ xlpipe.FileService = (*FileService)(nil)

// FileService implements xlpipe.FileService using SQLite.
type FileService struct {
	db *DB
}

// NewFileService creates a new FileService.
func NewFileService(db *DB) *FileService {
	return &FileService{db: db}
}

// CreateFile records a file in the manifest. An existing record with
// the same dataset, kind, and name is replaced, so re-running a
// pipeline stage refreshes the manifest instead of duplicating it.
func (s *FileService) CreateFile(ctx context.Context, file *xlpipe.DataFile) error {
	if err := file.Validate(); err != nil {
		return err
	}

	file.ID = uuid.New().String()
	file.FetchedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO files (id, dataset_id, name, kind, path, size, hash, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(dataset_id, kind, name) DO UPDATE SET
			path = excluded.path,
			size = excluded.size,
			hash = excluded.hash,
			fetched_at = excluded.fetched_at
	`, file.ID, file.DatasetID, file.Name, file.Kind, file.Path, file.Size, file.Hash,
		file.FetchedAt.Format(time.RFC3339))

	return err
}

// FindFiles retrieves manifest entries matching the filter.
func (s *FileService) FindFiles(ctx context.Context, filter xlpipe.FileFilter) ([]*xlpipe.DataFile, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, dataset_id, name, kind, path, size, hash, fetched_at FROM files WHERE 1=1")

	if filter.DatasetID != nil {
		query.WriteString(" AND dataset_id = ?")
		args = append(args, *filter.DatasetID)
	}
	if filter.Kind != nil {
		query.WriteString(" AND kind = ?")
		args = append(args, *filter.Kind)
	}
	if filter.Name != nil {
		query.WriteString(" AND name = ?")
		args = append(args, *filter.Name)
	}

	query.WriteString(" ORDER BY kind, name")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []*xlpipe.DataFile
	for rows.Next() {
		var file xlpipe.DataFile
		var fetchedAt string

		if err := rows.Scan(&file.ID, &file.DatasetID, &file.Name, &file.Kind,
			&file.Path, &file.Size, &file.Hash, &fetchedAt); err != nil {
			return nil, err
		}

		if file.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
			return nil, err
		}

		files = append(files, &file)
	}

	return files, rows.Err()
}

// DeleteFilesByDataset removes all manifest entries for a dataset.
func (s *FileService) DeleteFilesByDataset(ctx context.Context, datasetID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM files WHERE dataset_id = ?`, datasetID)
	return err
}
