package main

import (
	"fmt"
	"strings"

	"github.com/xenith-ms/xlpipe"
)

// Run executes the status command.
func (c *StatusCmd) Run(deps *Dependencies) error {
	d, err := deps.Datasets.FindDatasetByPXID(deps.Ctx, c.PXID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", xlpipe.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%s (%s)\n", d.PXID, d.Split)
	fmt.Fprintf(deps.Stdout, "  mods:    %s\n", strings.Join(d.Mods, ", "))
	fmt.Fprintf(deps.Stdout, "  enzymes: %s\n", strings.Join(d.Enzymes, ", "))
	if d.HasParams() {
		fmt.Fprintf(deps.Stdout, "  params:  %.4f ppm, %.4f bin\n", *d.PrecursorTol, *d.FragmentBinWidth)
	} else {
		fmt.Fprintf(deps.Stdout, "  params:  not detected\n")
	}

	files, err := deps.Files.FindFiles(deps.Ctx, xlpipe.FileFilter{DatasetID: &d.ID})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", xlpipe.ErrorMessage(err))
		return err
	}

	counts := make(map[string]int)
	for _, f := range files {
		counts[f.Kind]++
	}

	fmt.Fprintf(deps.Stdout, "  files:   %d raw, %d mzML, %d fasta, %d result (of %d raw expected)\n",
		counts[xlpipe.FileKindRaw], counts[xlpipe.FileKindMzML],
		counts[xlpipe.FileKindFasta], counts[xlpipe.FileKindResult], len(d.RawFiles))

	for _, f := range files {
		fmt.Fprintf(deps.Stdout, "    %-7s %-40s %10d  %s\n", f.Kind, f.Name, f.Size, f.Hash)
	}

	return nil
}
