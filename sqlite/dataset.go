package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xenith-ms/xlpipe"
)

// Compile-time interface verification.
var _ xlpipe.DatasetService = (*DatasetService)(nil)

// DatasetService implements xlpipe.DatasetService using SQLite.
type DatasetService struct {
	db *DB
}

// NewDatasetService creates a new DatasetService.
func NewDatasetService(db *DB) *DatasetService {
	return &DatasetService{db: db}
}

// CreateDataset creates a new dataset.
func (s *DatasetService) CreateDataset(ctx context.Context, dataset *xlpipe.Dataset) error {
	if err := dataset.Validate(); err != nil {
		return err
	}

	if _, err := s.FindDatasetByPXID(ctx, dataset.PXID); err == nil {
		return xlpipe.Errorf(xlpipe.ECONFLICT, "dataset %s already exists", dataset.PXID)
	} else if xlpipe.ErrorCode(err) != xlpipe.ENOTFOUND {
		return err
	}

	dataset.ID = uuid.New().String()
	now := time.Now().UTC()
	dataset.CreatedAt = now
	dataset.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO datasets (id, pxid, split, raw_files, fasta, fasta_type, mods, enzymes,
			precursor_tol, fragment_bin_width, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, dataset.ID, dataset.PXID, dataset.Split, joinList(dataset.RawFiles), joinList(dataset.Fasta),
		dataset.FastaType, joinList(dataset.Mods), joinList(dataset.Enzymes),
		dataset.PrecursorTol, dataset.FragmentBinWidth,
		dataset.CreatedAt.Format(time.RFC3339), dataset.UpdatedAt.Format(time.RFC3339))

	return err
}

const datasetColumns = `id, pxid, split, raw_files, fasta, fasta_type, mods, enzymes,
	precursor_tol, fragment_bin_width, created_at, updated_at`

// scanDataset scans one dataset row from a row scanner.
func scanDataset(scan func(dest ...any) error) (*xlpipe.Dataset, error) {
	var dataset xlpipe.Dataset
	var rawFiles, fasta, mods, enzymes string
	var precursorTol, fragmentBinWidth sql.NullFloat64
	var createdAt, updatedAt string

	if err := scan(&dataset.ID, &dataset.PXID, &dataset.Split, &rawFiles, &fasta,
		&dataset.FastaType, &mods, &enzymes, &precursorTol, &fragmentBinWidth,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}

	dataset.RawFiles = splitList(rawFiles)
	dataset.Fasta = splitList(fasta)
	dataset.Mods = splitList(mods)
	dataset.Enzymes = splitList(enzymes)

	if precursorTol.Valid {
		dataset.PrecursorTol = &precursorTol.Float64
	}
	if fragmentBinWidth.Valid {
		dataset.FragmentBinWidth = &fragmentBinWidth.Float64
	}

	var err error
	if dataset.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if dataset.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &dataset, nil
}

// FindDatasetByPXID retrieves a dataset by its ProteomeXchange ID.
func (s *DatasetService) FindDatasetByPXID(ctx context.Context, pxid string) (*xlpipe.Dataset, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+datasetColumns+`
		FROM datasets
		WHERE pxid = ?
	`, pxid)

	dataset, err := scanDataset(row.Scan)
	if err == sql.ErrNoRows {
		return nil, xlpipe.Errorf(xlpipe.ENOTFOUND, "dataset %s not found", pxid)
	}
	if err != nil {
		return nil, err
	}

	return dataset, nil
}

// FindDatasets retrieves datasets matching the filter.
func (s *DatasetService) FindDatasets(ctx context.Context, filter xlpipe.DatasetFilter) ([]*xlpipe.Dataset, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + datasetColumns + " FROM datasets WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.PXID != nil {
		query.WriteString(" AND pxid = ?")
		args = append(args, *filter.PXID)
	}
	if filter.Split != nil {
		query.WriteString(" AND split = ?")
		args = append(args, *filter.Split)
	}

	query.WriteString(" ORDER BY split, pxid")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var datasets []*xlpipe.Dataset
	for rows.Next() {
		dataset, err := scanDataset(rows.Scan)
		if err != nil {
			return nil, err
		}
		datasets = append(datasets, dataset)
	}

	return datasets, rows.Err()
}

// UpdateDataset updates an existing dataset.
func (s *DatasetService) UpdateDataset(ctx context.Context, pxid string, upd xlpipe.DatasetUpdate) (*xlpipe.Dataset, error) {
	dataset, err := s.FindDatasetByPXID(ctx, pxid)
	if err != nil {
		return nil, err
	}

	if upd.PrecursorTol != nil {
		dataset.PrecursorTol = upd.PrecursorTol
	}
	if upd.FragmentBinWidth != nil {
		dataset.FragmentBinWidth = upd.FragmentBinWidth
	}

	dataset.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE datasets
		SET precursor_tol = ?, fragment_bin_width = ?, updated_at = ?
		WHERE pxid = ?
	`, dataset.PrecursorTol, dataset.FragmentBinWidth,
		dataset.UpdatedAt.Format(time.RFC3339), pxid)
	if err != nil {
		return nil, err
	}

	return dataset, nil
}

// DeleteDataset permanently removes a dataset. Associated manifest
// entries are removed by the ON DELETE CASCADE constraint.
func (s *DatasetService) DeleteDataset(ctx context.Context, pxid string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM datasets WHERE pxid = ?`, pxid)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return xlpipe.Errorf(xlpipe.ENOTFOUND, "dataset %s not found", pxid)
	}

	return nil
}
