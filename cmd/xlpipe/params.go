package main

import (
	"fmt"

	"github.com/xenith-ms/xlpipe"
)

// Run executes the params command.
func (c *ParamsCmd) Run(deps *Dependencies) error {
	params, err := deps.Pipeline.DetectParams(deps.Ctx, c.PXID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", xlpipe.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Detected for %s: precursor %.4f ppm, fragment bin %.4f\n",
		c.PXID, params.PrecursorTolPPM, params.FragmentBinWidth)
	return nil
}
