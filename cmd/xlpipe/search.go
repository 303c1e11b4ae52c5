package main

import (
	"fmt"

	"github.com/xenith-ms/xlpipe"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	results, err := deps.Pipeline.Search(deps.Ctx, c.PXID, c.Engine)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", xlpipe.ErrorMessage(err))
		return err
	}

	for _, result := range results {
		fmt.Fprintf(deps.Stdout, "Searched %s with Kojak %s (%d result pairs)\n",
			c.PXID, result.Version, len(result.Outputs))
	}
	return nil
}
