package xlpipe

import (
	"context"
	"time"
)

// File kinds tracked in the per-dataset manifest.
const (
	FileKindRaw    = "raw"
	FileKindMzML   = "mzml"
	FileKindFasta  = "fasta"
	FileKindParams = "params"
	FileKindResult = "result"
)

// DataFile represents one file in a dataset's manifest: a downloaded
// raw file, a converted mzML, the target-decoy FASTA, a param-medic
// output, or a search result.
type DataFile struct {
	ID        string    `json:"id"`
	DatasetID string    `json:"datasetId"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	Path      string    `json:"path"`
	Size      int64     `json:"size"`
	Hash      string    `json:"hash"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// Validate returns an error if the file contains invalid fields.
func (f *DataFile) Validate() error {
	if f.DatasetID == "" {
		return Errorf(EINVALID, "file dataset ID required")
	}
	if f.Name == "" {
		return Errorf(EINVALID, "file name required")
	}
	switch f.Kind {
	case FileKindRaw, FileKindMzML, FileKindFasta, FileKindParams, FileKindResult:
	default:
		return Errorf(EINVALID, "unknown file kind %q", f.Kind)
	}
	return nil
}

// FileService represents a service for managing the file manifest.
type FileService interface {
	// CreateFile records a file in the manifest, replacing any prior
	// record with the same dataset, kind, and name.
	CreateFile(ctx context.Context, file *DataFile) error

	// FindFiles retrieves manifest entries matching the filter.
	FindFiles(ctx context.Context, filter FileFilter) ([]*DataFile, error)

	// DeleteFilesByDataset removes all manifest entries for a dataset.
	DeleteFilesByDataset(ctx context.Context, datasetID string) error
}

// FileFilter represents a filter for FindFiles.
type FileFilter struct {
	DatasetID *string `json:"datasetId"`
	Kind      *string `json:"kind"`
	Name      *string `json:"name"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
