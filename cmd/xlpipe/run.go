package main

import (
	"fmt"

	"github.com/xenith-ms/xlpipe"
	"github.com/xenith-ms/xlpipe/pipeline"
)

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	switch c.Split {
	case xlpipe.SplitTraining, xlpipe.SplitValidation, xlpipe.SplitTest:
	default:
		fmt.Fprintf(deps.Stderr, "error: unknown split %q\n", c.Split)
		return xlpipe.Errorf(xlpipe.EINVALID, "unknown split %q", c.Split)
	}

	if c.Concurrency > 0 {
		deps.Pipeline.Concurrency = c.Concurrency
	}

	progress := func(event pipeline.ProgressEvent) {
		switch event.Type {
		case pipeline.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Processing %d datasets in %s\n", event.Total, c.Split)
		case pipeline.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s done\n", event.Completed, event.Total, event.PXID)
		case pipeline.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  [%d/%d] %s failed at %s: %v\n",
				event.Completed, event.Total, event.PXID, event.Step, event.Error)
		}
	}

	result, err := deps.Pipeline.Run(deps.Ctx, c.Split, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", xlpipe.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Split %s: %d succeeded, %d failed\n", c.Split, result.Succeeded, result.Failed)
	if result.Failed > 0 {
		return xlpipe.Errorf(xlpipe.EINTERNAL, "%d datasets failed", result.Failed)
	}
	return nil
}
