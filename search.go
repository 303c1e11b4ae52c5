package xlpipe

import "context"

// SearchParams are the dataset-specific tolerances a search engine
// needs, as detected by param-medic.
type SearchParams struct {
	// PrecursorTolPPM is the precursor ion tolerance in ppm.
	PrecursorTolPPM float64

	// FragmentBinWidth is the fragment bin width in m/z.
	FragmentBinWidth float64
}

// SearchRequest describes one dataset search: the spectra to search,
// the database to search against, and the configuration to use.
type SearchRequest struct {
	FastaFile string
	MzMLFiles []string
	Params    SearchParams
	Mods      []string
	Enzymes   []string

	// OutputDir receives the engine's result files.
	OutputDir string
}

// Validate returns an error if the request is missing a prerequisite.
func (r *SearchRequest) Validate() error {
	if r.FastaFile == "" {
		return Errorf(EINVALID, "search requires a FASTA file")
	}
	if len(r.MzMLFiles) == 0 {
		return Errorf(EINVALID, "search requires at least one mzML file")
	}
	if r.Params.PrecursorTolPPM == 0 || r.Params.FragmentBinWidth == 0 {
		return Errorf(EINVALID, "search requires detected tolerances; run params first")
	}
	return nil
}

// SearchOutput is the pair of result files produced for one input
// mzML file: the tab-delimited file xenith consumes and the Percolator
// PIN file.
type SearchOutput struct {
	MzMLFile   string
	XenithFile string
	PinFile    string
}

// SearchResult holds the outcome of one engine run over a dataset.
type SearchResult struct {
	Version string
	Outputs []SearchOutput
}

// SearchEngine runs a peptide-spectrum-match search over a dataset.
// Implementations wrap external search binaries; the engine version is
// part of the result so multiple versions can be compared downstream.
type SearchEngine interface {
	// Version identifies the engine build (e.g. "2.0.0-dev").
	Version() string

	// Search runs the engine. The context controls cancellation of the
	// underlying process.
	Search(ctx context.Context, req SearchRequest) (*SearchResult, error)
}

// ParamDetector determines search tolerances from mzML files.
type ParamDetector interface {
	// Detect runs tolerance detection over the given mzML files,
	// writing tool output under outDir with the given file root.
	Detect(ctx context.Context, mzmlFiles []string, fileroot, outDir string) (*SearchParams, error)
}
