// Package pipeline orchestrates the xenith training-data pipeline.
// It coordinates dataset downloads, raw file conversion, search
// parameter detection, and database searches, recording every
// produced file in the manifest.
package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/xenith-ms/xlpipe"
	"github.com/xenith-ms/xlpipe/fs"
	"golang.org/x/sync/errgroup"
)

// Pipeline wires the services a dataset passes through on its way
// from a ProteomeXchange identifier to search results.
type Pipeline struct {
	Datasets  xlpipe.DatasetService
	Files     xlpipe.FileService
	Repo      xlpipe.Repository
	Sequences xlpipe.SequenceSource
	Decoys    xlpipe.DecoyGenerator
	Detector  xlpipe.ParamDetector
	Converter xlpipe.Converter
	Engines   []xlpipe.SearchEngine

	Layout  *fs.Layout
	Limiter *HostLimiter

	// Concurrency bounds how many datasets Run processes at once.
	Concurrency int

	// RetryDelays configures download backoff. Nil means
	// DefaultRetryDelays; tests pass short delays.
	RetryDelays []time.Duration

	// DecoySeed fixes the decoy shuffle so databases are reproducible
	// across runs. Zero means seed 1.
	DecoySeed int
}

// ProgressEvent reports progress during a split-wide run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	PXID      string
	Step      string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting run progress.
type ProgressFunc func(event ProgressEvent)

// FetchResult holds the outcome of a fetch operation.
type FetchResult struct {
	Downloaded int
	Skipped    int
}

// Fetch downloads a dataset's raw files and assembles its target-decoy
// database. Files already present in the manifest with a matching size
// on disk are skipped unless force is set.
func (p *Pipeline) Fetch(ctx context.Context, pxid string, force bool) (*FetchResult, error) {
	d, err := p.Datasets.FindDatasetByPXID(ctx, pxid)
	if err != nil {
		return nil, err
	}

	dir, err := p.Layout.EnsureDatasetDir(d.Split, d.PXID)
	if err != nil {
		return nil, err
	}

	// The announcement is requested lazily, once something actually
	// needs downloading; a fully fetched dataset works offline.
	var remote []xlpipe.RemoteFile
	var listed bool
	list := func(ctx context.Context) ([]xlpipe.RemoteFile, error) {
		if listed {
			return remote, nil
		}
		err := DownloadWithRetryDelays(ctx, func(ctx context.Context) error {
			var err error
			remote, err = p.Repo.FileList(ctx, d.PXID)
			return err
		}, p.RetryDelays)
		if err != nil {
			return nil, err
		}
		listed = true
		return remote, nil
	}

	result := &FetchResult{}
	for _, name := range d.RawFiles {
		dest := p.Layout.RawPath(d.Split, d.PXID, name)
		if !force && p.present(ctx, d.ID, xlpipe.FileKindRaw, name, dest) {
			result.Skipped++
			continue
		}
		if err := p.downloadAnnounced(ctx, list, name, dest); err != nil {
			return nil, err
		}
		if err := p.recordFile(ctx, d.ID, xlpipe.FileKindRaw, name, dest); err != nil {
			return nil, err
		}
		result.Downloaded++
	}

	database := p.Layout.FastaPath(d.Split, d.PXID)
	fastaName := d.PXID + ".fasta"
	if !force && p.present(ctx, d.ID, xlpipe.FileKindFasta, fastaName, database) {
		result.Skipped++
		return result, nil
	}

	target, err := p.assembleFasta(ctx, d, dir, list)
	if err != nil {
		return nil, err
	}

	enzymes, err := xlpipe.LookupEnzymes(d.Enzymes)
	if err != nil {
		return nil, err
	}
	seed := p.DecoySeed
	if seed == 0 {
		seed = 1
	}
	if err := p.Decoys.MakeDecoys(ctx, target, database, enzymes[0], seed); err != nil {
		return nil, err
	}
	if err := p.recordFile(ctx, d.ID, xlpipe.FileKindFasta, fastaName, database); err != nil {
		return nil, err
	}
	result.Downloaded++

	return result, nil
}

// Convert converts the dataset's fetched raw files to gzipped mzML.
// Already converted files are skipped.
func (p *Pipeline) Convert(ctx context.Context, pxid string) error {
	d, err := p.Datasets.FindDatasetByPXID(ctx, pxid)
	if err != nil {
		return err
	}

	dir := p.Layout.DatasetDir(d.Split, d.PXID)
	for _, name := range d.RawFiles {
		raw := p.Layout.RawPath(d.Split, d.PXID, name)
		if _, err := os.Stat(raw); err != nil {
			return xlpipe.Errorf(xlpipe.EINVALID, "raw file %s for %s not fetched; run fetch first", name, d.PXID)
		}

		mzml := p.Layout.MzMLPath(d.Split, d.PXID, name)
		if _, err := os.Stat(mzml); err == nil {
			continue
		}

		out, err := p.Converter.Convert(ctx, raw, dir)
		if err != nil {
			return err
		}
		if err := p.recordFile(ctx, d.ID, xlpipe.FileKindMzML, fs.MzMLName(name), out); err != nil {
			return err
		}
	}

	return nil
}

// DetectParams runs tolerance detection over the dataset's mzML files
// and stores the detected tolerances on the dataset.
func (p *Pipeline) DetectParams(ctx context.Context, pxid string) (*xlpipe.SearchParams, error) {
	d, err := p.Datasets.FindDatasetByPXID(ctx, pxid)
	if err != nil {
		return nil, err
	}

	mzmls, err := p.mzmlFiles(d)
	if err != nil {
		return nil, err
	}

	outDir := p.Layout.ParamMedicDir(d.Split, d.PXID)
	params, err := p.Detector.Detect(ctx, mzmls, d.PXID, outDir)
	if err != nil {
		return nil, err
	}

	if _, err := p.Datasets.UpdateDataset(ctx, d.PXID, xlpipe.DatasetUpdate{
		PrecursorTol:     &params.PrecursorTolPPM,
		FragmentBinWidth: &params.FragmentBinWidth,
	}); err != nil {
		return nil, err
	}

	pmName := d.PXID + ".param-medic.txt"
	pmFile := filepath.Join(outDir, pmName)
	if _, err := os.Stat(pmFile); err == nil {
		if err := p.recordFile(ctx, d.ID, xlpipe.FileKindParams, pmName, pmFile); err != nil {
			return nil, err
		}
	}

	return params, nil
}

// Search runs the dataset through the configured search engines and
// records the result files. An empty version runs every engine; a
// non-empty version runs only the matching one.
func (p *Pipeline) Search(ctx context.Context, pxid, version string) ([]*xlpipe.SearchResult, error) {
	d, err := p.Datasets.FindDatasetByPXID(ctx, pxid)
	if err != nil {
		return nil, err
	}

	database := p.Layout.FastaPath(d.Split, d.PXID)
	if _, err := os.Stat(database); err != nil {
		return nil, xlpipe.Errorf(xlpipe.EINVALID, "no database for %s; run fetch first", d.PXID)
	}
	mzmls, err := p.mzmlFiles(d)
	if err != nil {
		return nil, err
	}
	if !d.HasParams() {
		return nil, xlpipe.Errorf(xlpipe.EINVALID, "no tolerances for %s; run params first", d.PXID)
	}

	engines, err := p.selectEngines(version)
	if err != nil {
		return nil, err
	}

	var results []*xlpipe.SearchResult
	for _, engine := range engines {
		req := xlpipe.SearchRequest{
			FastaFile: database,
			MzMLFiles: mzmls,
			Params: xlpipe.SearchParams{
				PrecursorTolPPM:  *d.PrecursorTol,
				FragmentBinWidth: *d.FragmentBinWidth,
			},
			Mods:      d.Mods,
			Enzymes:   d.Enzymes,
			OutputDir: p.Layout.ResultsDir(d.Split, d.PXID, engine.Version()),
		}

		res, err := engine.Search(ctx, req)
		if err != nil {
			return nil, err
		}

		for _, out := range res.Outputs {
			for _, f := range []string{out.XenithFile, out.PinFile} {
				if _, err := os.Stat(f); err != nil {
					continue
				}
				if err := p.recordFile(ctx, d.ID, xlpipe.FileKindResult, filepath.Base(f), f); err != nil {
					return nil, err
				}
			}
		}

		results = append(results, res)
	}

	return results, nil
}

// RunResult holds the outcome of a split-wide run.
type RunResult struct {
	Succeeded int
	Failed    int
}

// runOutcome holds the outcome of processing a single dataset.
type runOutcome struct {
	pxid string
	step string
	err  error
}

// Run executes fetch, convert, params, and search for every dataset in
// a split, processing datasets concurrently. The progress callback, if
// provided, receives events as datasets complete.
func (p *Pipeline) Run(ctx context.Context, split string, progress ProgressFunc) (*RunResult, error) {
	datasets, err := p.Datasets.FindDatasets(ctx, xlpipe.DatasetFilter{Split: &split})
	if err != nil {
		return nil, err
	}
	if len(datasets) == 0 {
		return &RunResult{}, nil
	}

	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = 2
	}

	total := len(datasets)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	outcomeCh := make(chan runOutcome, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, d := range datasets {
			d := d
			g.Go(func() error {
				step, err := p.runDataset(gctx, d.PXID)
				outcomeCh <- runOutcome{pxid: d.PXID, step: step, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(outcomeCh)
	}()

	result := &RunResult{}
	var completed int
	for outcome := range outcomeCh {
		completed++
		if outcome.err != nil {
			result.Failed++
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: completed,
					Total:     total,
					PXID:      outcome.pxid,
					Step:      outcome.step,
					Error:     outcome.err,
				})
			}
			continue
		}
		result.Succeeded++
		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: completed,
				Total:     total,
				PXID:      outcome.pxid,
			})
		}
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return result, nil
}

// runDataset runs the full pipeline for one dataset, returning the
// step that failed along with the error.
func (p *Pipeline) runDataset(ctx context.Context, pxid string) (string, error) {
	if _, err := p.Fetch(ctx, pxid, false); err != nil {
		return "fetch", err
	}
	if err := p.Convert(ctx, pxid); err != nil {
		return "convert", err
	}
	if _, err := p.DetectParams(ctx, pxid); err != nil {
		return "params", err
	}
	if _, err := p.Search(ctx, pxid, ""); err != nil {
		return "search", err
	}
	return "", nil
}

// selectEngines resolves the engine list for a search. An empty
// version means all configured engines.
func (p *Pipeline) selectEngines(version string) ([]xlpipe.SearchEngine, error) {
	if len(p.Engines) == 0 {
		return nil, xlpipe.Errorf(xlpipe.EINVALID, "no search engines configured")
	}
	if version == "" {
		return p.Engines, nil
	}
	for _, engine := range p.Engines {
		if engine.Version() == version {
			return []xlpipe.SearchEngine{engine}, nil
		}
	}
	return nil, xlpipe.Errorf(xlpipe.EINVALID, "unknown engine version %q", version)
}

// mzmlFiles returns the expected mzML paths for a dataset, verifying
// every file is present on disk.
func (p *Pipeline) mzmlFiles(d *xlpipe.Dataset) ([]string, error) {
	mzmls := make([]string, 0, len(d.RawFiles))
	for _, name := range d.RawFiles {
		mzml := p.Layout.MzMLPath(d.Split, d.PXID, name)
		if _, err := os.Stat(mzml); err != nil {
			return nil, xlpipe.Errorf(xlpipe.EINVALID, "no mzML for %s in %s; run convert first", name, d.PXID)
		}
		mzmls = append(mzmls, mzml)
	}
	return mzmls, nil
}

// listFunc returns a dataset's announced files, fetching the
// announcement on first use.
type listFunc func(ctx context.Context) ([]xlpipe.RemoteFile, error)

// downloadAnnounced downloads one announced file, rate-limited by host
// and retried with backoff.
func (p *Pipeline) downloadAnnounced(ctx context.Context, list listFunc, name, dest string) error {
	remote, err := list(ctx)
	if err != nil {
		return err
	}

	var file *xlpipe.RemoteFile
	for i := range remote {
		if remote[i].Name == name {
			file = &remote[i]
			break
		}
	}
	if file == nil {
		return xlpipe.Errorf(xlpipe.ENOTFOUND, "file %s not announced for dataset", name)
	}

	return DownloadWithRetryDelays(ctx, func(ctx context.Context) error {
		if p.Limiter != nil {
			if err := p.Limiter.WaitURL(ctx, file.URL); err != nil {
				return err
			}
		}
		return p.Repo.Download(ctx, *file, dest)
	}, p.RetryDelays)
}

// present reports whether a file is already in the manifest and on
// disk with a matching size.
func (p *Pipeline) present(ctx context.Context, datasetID, kind, name, path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	files, err := p.Files.FindFiles(ctx, xlpipe.FileFilter{
		DatasetID: &datasetID,
		Kind:      &kind,
		Name:      &name,
	})
	if err != nil || len(files) == 0 {
		return false
	}
	return files[0].Size == info.Size()
}

// recordFile hashes a produced file and records it in the manifest.
func (p *Pipeline) recordFile(ctx context.Context, datasetID, kind, name, path string) error {
	hash, size, err := fs.HashFile(path)
	if err != nil {
		return err
	}
	return p.Files.CreateFile(ctx, &xlpipe.DataFile{
		DatasetID: datasetID,
		Name:      name,
		Kind:      kind,
		Path:      path,
		Size:      size,
		Hash:      hash,
	})
}
