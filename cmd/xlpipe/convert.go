package main

import (
	"fmt"

	"github.com/xenith-ms/xlpipe"
)

// Run executes the convert command.
func (c *ConvertCmd) Run(deps *Dependencies) error {
	if err := deps.Pipeline.Convert(deps.Ctx, c.PXID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", xlpipe.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Converted %s\n", c.PXID)
	return nil
}
