// Package fs manages the on-disk data layout for the pipeline.
// All files for a dataset live under <root>/<split>/<pxid>/.
package fs

import (
	"os"
	"path/filepath"
	"strings"
)

// Layout maps datasets to their directories and files under a data
// root directory.
type Layout struct {
	Root string
}

// NewLayout creates a Layout rooted at the given directory.
func NewLayout(root string) *Layout {
	return &Layout{Root: root}
}

// DatasetDir returns the directory holding all files for a dataset.
func (l *Layout) DatasetDir(split, pxid string) string {
	return filepath.Join(l.Root, split, pxid)
}

// EnsureDatasetDir creates the dataset directory if needed and
// returns it.
func (l *Layout) EnsureDatasetDir(split, pxid string) (string, error) {
	dir := l.DatasetDir(split, pxid)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// FastaPath returns the path of the dataset's target-decoy database.
func (l *Layout) FastaPath(split, pxid string) string {
	return filepath.Join(l.DatasetDir(split, pxid), pxid+".fasta")
}

// RawPath returns the download path for a raw file.
func (l *Layout) RawPath(split, pxid, rawFile string) string {
	return filepath.Join(l.DatasetDir(split, pxid), rawFile)
}

// MzMLName returns the converted file name for a raw file:
// <base>.mzML.gz, with the .raw extension matched case-insensitively.
func MzMLName(rawFile string) string {
	base := rawFile
	if ext := filepath.Ext(rawFile); strings.EqualFold(ext, ".raw") {
		base = strings.TrimSuffix(rawFile, ext)
	}
	return base + ".mzML.gz"
}

// MzMLPath returns the path of the converted mzML for a raw file.
func (l *Layout) MzMLPath(split, pxid, rawFile string) string {
	return filepath.Join(l.DatasetDir(split, pxid), MzMLName(rawFile))
}

// ParamMedicDir returns the directory param-medic output is written to.
func (l *Layout) ParamMedicDir(split, pxid string) string {
	return filepath.Join(l.DatasetDir(split, pxid), "pm-out")
}

// ResultsDir returns the directory search results for one engine
// version are written to.
func (l *Layout) ResultsDir(split, pxid, version string) string {
	return filepath.Join(l.DatasetDir(split, pxid), "kojak-"+version)
}
