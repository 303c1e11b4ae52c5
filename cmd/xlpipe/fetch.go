package main

import (
	"fmt"

	"github.com/xenith-ms/xlpipe"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	result, err := deps.Pipeline.Fetch(deps.Ctx, c.PXID, c.Force)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", xlpipe.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Fetched %s: %d downloaded, %d skipped\n", c.PXID, result.Downloaded, result.Skipped)
	return nil
}
