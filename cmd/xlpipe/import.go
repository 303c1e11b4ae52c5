package main

import (
	"fmt"

	"github.com/xenith-ms/xlpipe"
	"github.com/xenith-ms/xlpipe/yaml"
)

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	datasets, err := yaml.LoadDatasets(c.Path)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", xlpipe.ErrorMessage(err))
		return err
	}

	var imported, replaced int
	for _, d := range datasets {
		err := deps.Datasets.CreateDataset(deps.Ctx, d)
		if err == nil {
			imported++
			continue
		}
		if xlpipe.ErrorCode(err) != xlpipe.ECONFLICT {
			fmt.Fprintf(deps.Stderr, "error: %s\n", xlpipe.ErrorMessage(err))
			return err
		}
		if !c.Replace {
			fmt.Fprintf(deps.Stderr, "error: dataset %s already imported; use --replace to overwrite\n", d.PXID)
			return err
		}
		if err := deps.Datasets.DeleteDataset(deps.Ctx, d.PXID); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", xlpipe.ErrorMessage(err))
			return err
		}
		if err := deps.Datasets.CreateDataset(deps.Ctx, d); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", xlpipe.ErrorMessage(err))
			return err
		}
		replaced++
	}

	fmt.Fprintf(deps.Stdout, "Imported %d datasets (%d replaced)\n", imported+replaced, replaced)
	return nil
}
