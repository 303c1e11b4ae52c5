package main

import (
	"fmt"

	"github.com/xenith-ms/xlpipe"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	var filter xlpipe.DatasetFilter
	if c.Split != "" {
		filter.Split = &c.Split
	}

	datasets, err := deps.Datasets.FindDatasets(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", xlpipe.ErrorMessage(err))
		return err
	}

	if len(datasets) == 0 {
		fmt.Fprintln(deps.Stdout, "No datasets found. Use 'xlpipe import' to load a registry.")
		return nil
	}

	for _, d := range datasets {
		params := "pending"
		if d.HasParams() {
			params = fmt.Sprintf("%.2fppm/%.3f", *d.PrecursorTol, *d.FragmentBinWidth)
		}
		fmt.Fprintf(deps.Stdout, "%-12s %-12s %2d raw  %s\n", d.PXID, d.Split, len(d.RawFiles), params)
	}

	return nil
}
