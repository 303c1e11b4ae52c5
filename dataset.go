package xlpipe

import (
	"context"
	"strings"
	"time"
)

// Dataset splits. Every dataset belongs to exactly one split; together
// the splits form the data xenith models are trained and evaluated on.
const (
	SplitTraining   = "training"
	SplitValidation = "validation"
	SplitTest       = "test"
)

// Splits lists the valid dataset splits in pipeline order.
func Splits() []string {
	return []string{SplitTraining, SplitValidation, SplitTest}
}

// FASTA acquisition modes. FastaTypeFasta names a file published in the
// dataset's repository, FastaTypeProteins lists UniProt accessions to
// retrieve, and FastaTypeProteome names a UniProt reference proteome.
const (
	FastaTypeFasta    = "fasta"
	FastaTypeProteins = "proteins"
	FastaTypeProteome = "proteome"
)

// Dataset represents a single ProteomeXchange dataset used to train or
// evaluate xenith models. All raw files in a dataset share the same
// search configuration (FASTA, cross-linkers, enzymes).
type Dataset struct {
	ID   string `json:"id"`
	PXID string `json:"pxid"`

	// Split assigns the dataset to training, validation, or test.
	Split string `json:"split"`

	// RawFiles are the raw mass-spectrometry files (.raw, .RAW) to
	// download from the repository.
	RawFiles []string `json:"rawFiles"`

	// Fasta is interpreted according to FastaType: a single repository
	// file name, a list of UniProt accessions, or a single UniProt
	// reference proteome identifier.
	Fasta     []string `json:"fasta"`
	FastaType string   `json:"fastaType"`

	// Mods are the variable modifications to consider, including the
	// cross-linking reagent. Names must exist in the cross-linker
	// registry. Defaults to BS3.
	Mods []string `json:"mods"`

	// Enzymes used for digestion. Names must exist in the enzyme
	// registry. Defaults to Trypsin.
	Enzymes []string `json:"enzymes"`

	// PrecursorTol and FragmentBinWidth are the search tolerances
	// detected by param-medic. Nil until detection has run.
	PrecursorTol     *float64 `json:"precursorTol"`
	FragmentBinWidth *float64 `json:"fragmentBinWidth"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate returns an error if the dataset contains invalid fields.
func (d *Dataset) Validate() error {
	if d.PXID == "" {
		return Errorf(EINVALID, "dataset PXID required")
	}
	if !strings.HasPrefix(d.PXID, "PXD") {
		return Errorf(EINVALID, "dataset PXID %q must start with PXD", d.PXID)
	}
	switch d.Split {
	case SplitTraining, SplitValidation, SplitTest:
	default:
		return Errorf(EINVALID, "unknown split %q for %s", d.Split, d.PXID)
	}
	if len(d.RawFiles) == 0 {
		return Errorf(EINVALID, "dataset %s requires at least one raw file", d.PXID)
	}
	if len(d.Fasta) == 0 {
		return Errorf(EINVALID, "dataset %s requires a FASTA source", d.PXID)
	}
	switch d.FastaType {
	case FastaTypeFasta, FastaTypeProteome:
		if len(d.Fasta) != 1 {
			return Errorf(EINVALID, "dataset %s fasta type %q takes exactly one entry", d.PXID, d.FastaType)
		}
	case FastaTypeProteins:
	default:
		return Errorf(EINVALID, "unknown fasta type %q for %s", d.FastaType, d.PXID)
	}
	return nil
}

// ApplyDefaults fills in the default modification and enzyme lists for
// datasets that do not specify them.
func (d *Dataset) ApplyDefaults() {
	if d.FastaType == "" {
		d.FastaType = FastaTypeFasta
	}
	if len(d.Mods) == 0 {
		d.Mods = []string{"BS3"}
	}
	if len(d.Enzymes) == 0 {
		d.Enzymes = []string{"Trypsin"}
	}
}

// HasParams reports whether search tolerances have been detected.
func (d *Dataset) HasParams() bool {
	return d.PrecursorTol != nil && d.FragmentBinWidth != nil
}

// DatasetService represents a service for managing datasets.
type DatasetService interface {
	// CreateDataset creates a new dataset.
	// Returns ECONFLICT if a dataset with the same PXID exists.
	CreateDataset(ctx context.Context, dataset *Dataset) error

	// FindDatasetByPXID retrieves a dataset by its ProteomeXchange ID.
	// Returns ENOTFOUND if the dataset does not exist.
	FindDatasetByPXID(ctx context.Context, pxid string) (*Dataset, error)

	// FindDatasets retrieves datasets matching the filter.
	FindDatasets(ctx context.Context, filter DatasetFilter) ([]*Dataset, error)

	// UpdateDataset updates an existing dataset.
	// Returns ENOTFOUND if the dataset does not exist.
	UpdateDataset(ctx context.Context, pxid string, upd DatasetUpdate) (*Dataset, error)

	// DeleteDataset permanently removes a dataset and its file manifest.
	// Returns ENOTFOUND if the dataset does not exist.
	DeleteDataset(ctx context.Context, pxid string) error
}

// DatasetFilter represents a filter for FindDatasets.
type DatasetFilter struct {
	ID    *string `json:"id"`
	PXID  *string `json:"pxid"`
	Split *string `json:"split"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// DatasetUpdate represents fields that can be updated on a dataset.
type DatasetUpdate struct {
	PrecursorTol     *float64 `json:"precursorTol"`
	FragmentBinWidth *float64 `json:"fragmentBinWidth"`
}
