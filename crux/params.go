package crux

import (
	"context"
	"encoding/csv"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xenith-ms/xlpipe"
)

// param-medic knobs. Cross-linked samples have sparse peak pairs, so
// the peak thresholds are looser than crux defaults.
const (
	pmCharges      = "0,2,3,4,5,6,7,8,9"
	pmTopFragPeaks = "60"
	pmMinPeakPairs = "140"
)

// Detect runs crux param-medic over the given mzML files and parses
// the predicted precursor tolerance and fragment bin width from its
// tab-delimited output.
func (c *Crux) Detect(ctx context.Context, mzmlFiles []string, fileroot, outDir string) (*xlpipe.SearchParams, error) {
	if len(mzmlFiles) == 0 {
		return nil, xlpipe.Errorf(xlpipe.EINVALID, "param-medic requires at least one mzML file")
	}

	args := []string{"param-medic",
		"--pm-charges", pmCharges,
		"--fileroot", fileroot,
		"--output-dir", outDir,
		"--pm-top-n-frag-peaks", pmTopFragPeaks,
		"--pm-min-peak-pairs", pmMinPeakPairs,
		"--overwrite", "T",
	}
	args = append(args, mzmlFiles...)

	cmd := exec.CommandContext(ctx, c.Bin, args...)
	if err := c.runCommand(cmd); err != nil {
		return nil, err
	}

	return ParseParamMedic(filepath.Join(outDir, fileroot+".param-medic.txt"))
}

// ParseParamMedic reads a param-medic output file. The file is
// tab-delimited with one header row; the predictions are taken from
// the first data row.
func ParseParamMedic(path string) (*xlpipe.SearchParams, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, xlpipe.Errorf(xlpipe.EINTERNAL, "parsing param-medic output %s: %v", path, err)
	}
	if len(rows) < 2 {
		return nil, xlpipe.Errorf(xlpipe.EINTERNAL, "param-medic output %s has no predictions", path)
	}

	precursorCol, fragmentCol := -1, -1
	for i, name := range rows[0] {
		switch strings.TrimSpace(name) {
		case "precursor_prediction_ppm":
			precursorCol = i
		case "fragment_prediction_th":
			fragmentCol = i
		}
	}
	if precursorCol < 0 || fragmentCol < 0 {
		return nil, xlpipe.Errorf(xlpipe.EINTERNAL, "param-medic output %s is missing prediction columns", path)
	}

	data := rows[1]
	if len(data) <= precursorCol || len(data) <= fragmentCol {
		return nil, xlpipe.Errorf(xlpipe.EINTERNAL, "param-medic output %s has a short data row", path)
	}

	// param-medic reports NaN when it cannot find enough peak pairs.
	precursor, err := strconv.ParseFloat(strings.TrimSpace(data[precursorCol]), 64)
	if err != nil || math.IsNaN(precursor) {
		return nil, xlpipe.Errorf(xlpipe.EINTERNAL, "param-medic produced no precursor prediction: %q", data[precursorCol])
	}
	fragment, err := strconv.ParseFloat(strings.TrimSpace(data[fragmentCol]), 64)
	if err != nil || math.IsNaN(fragment) {
		return nil, xlpipe.Errorf(xlpipe.EINTERNAL, "param-medic produced no fragment prediction: %q", data[fragmentCol])
	}

	return &xlpipe.SearchParams{
		PrecursorTolPPM:  precursor,
		FragmentBinWidth: fragment,
	}, nil
}
