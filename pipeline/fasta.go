package pipeline

import (
	"archive/zip"
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/xenith-ms/xlpipe"
	"github.com/xenith-ms/xlpipe/fs"
)

// uniprotDomain is the reference proteome domain for proteome-type
// datasets. All current proteome datasets are yeast.
const uniprotDomain = "Eukaryota"

// UniProt hosts, for per-host rate limiting of sequence downloads.
const (
	uniprotAPIHost = "rest.uniprot.org"
	uniprotFTPHost = "ftp.uniprot.org"
)

// tsr1Archive is the zip PXD004074 publishes its database inside of.
const tsr1Archive = "Rappsilber_Cook_CLMS_Tsr1_fasta.zip"

// ppargFasta is the GST-tagged PPARgamma ligand-binding domain
// construct searched in PXD010222. The repository publishes no usable
// database for this dataset, so the sequence is written directly.
const ppargFasta = `>wef|PV4545|PPARg-LBD_human GST-tagged PPARgamma LBD
MAPILGYWKIKGLVQPTRLLLEYLEEKYEEHLYERDEGDKWRNKKFELGLEFPNLPYYIDGD
VKLTQSMAIIRYIADKHNMLGGCPKERAEISMLEGAVDIRYGVSRIAYSKDFETLKVDFLSK
LPEMLKMFEDRLCHKTYLNGDHVTHPDFMLYDALDVVLYMDPMCLDAFPKLVCFKKRIEAIP
QIDKYLKSSKYIALWPLQGWQATFGGGDHPPKSDLVPRHNQTSLYKKAGTMQLNPESADLRA
LAKHLYDSYIKSFPLTKAKARAILTGKTTDKSPFVIYDMNSLMMGEDKIKFKHITPLQEQSK
EVAIRIFQGCQFRSVEAVQEITEYAKSIPGFVNLDLNDQVTLLKYGVHEIIYTMLASLMNKD
GVLISEGQGFMTREFLKSLRKPFGDFMEPKFEFAVKFNALELDDSDLAIFIAVIILSGDRPG
LLNVKPIEDIQDNLLQALELQLKLNHPESSQLFAKLLQKMTDLRQIVTEHVQLLQVIKKTET
DMSLHPLLQEIYKDL
`

// assembleFasta produces the target FASTA for a dataset in the
// dataset directory and returns its path. The target is the input to
// decoy generation, not the final database.
func (p *Pipeline) assembleFasta(ctx context.Context, d *xlpipe.Dataset, dir string, list listFunc) (string, error) {
	switch d.FastaType {
	case xlpipe.FastaTypeProteins:
		dest := filepath.Join(dir, "uniprot.fasta")
		err := DownloadWithRetryDelays(ctx, func(ctx context.Context) error {
			if p.Limiter != nil {
				if err := p.Limiter.Wait(ctx, uniprotAPIHost); err != nil {
					return err
				}
			}
			return p.Sequences.Proteins(ctx, d.Fasta, dest)
		}, p.RetryDelays)
		if err != nil {
			return "", err
		}
		return dest, nil

	case xlpipe.FastaTypeProteome:
		dest := filepath.Join(dir, d.Fasta[0]+".fasta")
		err := DownloadWithRetryDelays(ctx, func(ctx context.Context) error {
			if p.Limiter != nil {
				if err := p.Limiter.Wait(ctx, uniprotFTPHost); err != nil {
					return err
				}
			}
			return p.Sequences.Proteome(ctx, d.Fasta[0], uniprotDomain, dest)
		}, p.RetryDelays)
		if err != nil {
			return "", err
		}
		return dest, nil
	}

	// Repository-published databases, with two odd cases.
	switch d.PXID {
	case "PXD010222":
		dest := filepath.Join(dir, d.Fasta[0])
		if err := writeStaged(dest, ppargFasta); err != nil {
			return "", err
		}
		return dest, nil

	case "PXD004074":
		archive := filepath.Join(dir, tsr1Archive)
		if err := p.downloadAnnounced(ctx, list, tsr1Archive, archive); err != nil {
			return "", err
		}
		return extractFasta(archive, dir, d.Fasta[0])
	}

	dest := filepath.Join(dir, d.Fasta[0])
	if err := p.downloadAnnounced(ctx, list, d.Fasta[0], dest); err != nil {
		return "", err
	}
	return dest, nil
}

// writeStaged writes content to dest with atomic semantics.
func writeStaged(dest, content string) error {
	stage, err := fs.NewStage(dest)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(stage, content); err != nil {
		_ = stage.Abort()
		return err
	}
	return stage.Commit()
}

// extractFasta extracts the named member of a zip archive into dir
// and returns its path. Archive paths are flattened; only the base
// name is matched.
func extractFasta(archive, dir, name string) (string, error) {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return "", xlpipe.Errorf(xlpipe.EINTERNAL, "opening archive %s: %v", filepath.Base(archive), err)
	}
	defer r.Close()

	for _, f := range r.File {
		if !strings.EqualFold(filepath.Base(f.Name), name) {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return "", err
		}

		dest := filepath.Join(dir, name)
		stage, err := fs.NewStage(dest)
		if err != nil {
			rc.Close()
			return "", err
		}
		_, err = io.Copy(stage, rc)
		rc.Close()
		if err != nil {
			_ = stage.Abort()
			return "", err
		}
		if err := stage.Commit(); err != nil {
			return "", err
		}
		return dest, nil
	}

	return "", xlpipe.Errorf(xlpipe.ENOTFOUND, "%s not found in %s", name, filepath.Base(archive))
}
