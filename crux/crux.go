// Package crux wraps the crux mass-spectrometry toolkit binary for
// target-decoy database generation and search parameter detection.
// The toolkit itself is an external collaborator; only its
// command-line surface is modeled here.
package crux

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/xenith-ms/xlpipe"
	"github.com/xenith-ms/xlpipe/fs"
)

// decoyFile is the name crux generate-peptides gives its shuffled
// protein output inside the output directory.
const decoyFile = "generate-peptides.proteins.decoy.txt"

// RunFunc executes a prepared command. Tests substitute a fake that
// writes the output files the real binary would produce.
type RunFunc func(cmd *exec.Cmd) error

// Compile-time interface verification.
var (
	_ xlpipe.DecoyGenerator = (*Crux)(nil)
	_ xlpipe.ParamDetector  = (*Crux)(nil)
)

// Crux invokes the crux binary.
type Crux struct {
	// Bin is the path to the crux binary.
	Bin string

	// Run executes the prepared command. Defaults to (*exec.Cmd).Run.
	Run RunFunc
}

// New creates a Crux wrapper for the given binary path.
func New(bin string) *Crux {
	return &Crux{
		Bin: bin,
		Run: func(cmd *exec.Cmd) error { return cmd.Run() },
	}
}

// MakeDecoys creates a concatenated target-decoy database from a
// target FASTA. Decoys are shuffled peptides generated under the
// enzyme's cut rule with a fixed seed, so the database is reproducible.
func (c *Crux) MakeDecoys(ctx context.Context, fasta, out string, enzyme xlpipe.Enzyme, seed int) error {
	tmpdir, err := os.MkdirTemp("", "crux-decoys-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpdir)

	enz := fmt.Sprintf("[%s]|[%s]", enzyme.CutAfter, enzyme.CutBefore)
	cmd := exec.CommandContext(ctx, c.Bin, "generate-peptides",
		"--output-dir", tmpdir,
		"--custom-enzyme", enz,
		"--seed", strconv.Itoa(seed),
		"--overwrite", "T",
		fasta)

	if err := c.runCommand(cmd); err != nil {
		return err
	}

	decoys := filepath.Join(tmpdir, decoyFile)
	return concatenate(out, fasta, decoys)
}

// concatenate writes the target and decoy FASTA files to out, staged
// so a failed run never leaves a truncated database.
func concatenate(out string, inputs ...string) error {
	stage, err := fs.NewStage(out)
	if err != nil {
		return err
	}

	for _, input := range inputs {
		f, err := os.Open(input)
		if err != nil {
			_ = stage.Abort()
			return err
		}
		_, err = io.Copy(stage, f)
		f.Close()
		if err != nil {
			_ = stage.Abort()
			return err
		}
	}

	return stage.Commit()
}

// runCommand runs a command, converting a non-zero exit into an
// EINTERNAL error carrying the tail of stderr.
func (c *Crux) runCommand(cmd *exec.Cmd) error {
	var stderr tailBuffer
	cmd.Stderr = &stderr

	if err := c.Run(cmd); err != nil {
		return xlpipe.Errorf(xlpipe.EINTERNAL, "crux %s: %v: %s", cmd.Args[1], err, stderr.String())
	}
	return nil
}

// tailBuffer keeps the last chunk of written output. Tool stderr can
// be long; only the end is useful in an error message.
type tailBuffer struct {
	buf []byte
}

const tailSize = 512

func (b *tailBuffer) Write(p []byte) (int, error) {
	b.buf = append(b.buf, p...)
	if len(b.buf) > tailSize {
		b.buf = b.buf[len(b.buf)-tailSize:]
	}
	return len(p), nil
}

func (b *tailBuffer) String() string {
	return string(b.buf)
}
