package xlpipe

import "context"

// RemoteFile is a file advertised by a ProteomeXchange dataset.
type RemoteFile struct {
	// Name is the file name as listed in the dataset announcement.
	Name string

	// URL is the download location.
	URL string
}

// Repository lists and retrieves files from a ProteomeXchange
// repository (PRIDE for all current datasets).
type Repository interface {
	// FileList returns the files announced for a dataset.
	// Returns ENOTFOUND if the PXID is unknown to the repository.
	FileList(ctx context.Context, pxid string) ([]RemoteFile, error)

	// Download retrieves a remote file to the destination path.
	Download(ctx context.Context, file RemoteFile, dest string) error
}

// SequenceSource retrieves protein sequences from UniProt.
type SequenceSource interface {
	// Proteins downloads the sequences for a list of UniProt
	// accessions into a single FASTA file at dest.
	Proteins(ctx context.Context, accessions []string, dest string) error

	// Proteome downloads the UniProt reference proteome for the given
	// proteome identifier (e.g. "UP000002311_559292") to dest,
	// decompressed. Domain is one of "Archaea", "Bacteria",
	// "Eukaryota", or "Viruses".
	Proteome(ctx context.Context, proteomeID, domain, dest string) error
}

// DecoyGenerator builds a concatenated target-decoy database from a
// target FASTA.
type DecoyGenerator interface {
	// MakeDecoys shuffles peptides from the target fasta under the
	// given enzyme's cut rule and writes targets followed by decoys to
	// out. The seed fixes the shuffle for reproducibility.
	MakeDecoys(ctx context.Context, fasta, out string, enzyme Enzyme, seed int) error
}

// Converter converts raw mass-spectrometry files to gzipped mzML.
type Converter interface {
	// Convert writes <base>.mzML.gz for rawFile under outDir and
	// returns its path.
	Convert(ctx context.Context, rawFile, outDir string) (string, error)
}
