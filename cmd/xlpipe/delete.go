package main

import (
	"fmt"

	"github.com/xenith-ms/xlpipe"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return xlpipe.Errorf(xlpipe.EINVALID, "use --force to confirm deletion")
	}

	d, err := deps.Datasets.FindDatasetByPXID(deps.Ctx, c.PXID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", xlpipe.ErrorMessage(err))
		return err
	}

	if err := deps.Files.DeleteFilesByDataset(deps.Ctx, d.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", xlpipe.ErrorMessage(err))
		return err
	}

	if err := deps.Datasets.DeleteDataset(deps.Ctx, d.PXID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", xlpipe.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted dataset %s\n", d.PXID)
	return nil
}
