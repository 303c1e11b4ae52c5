// Package thermo wraps the ThermoRawFileParser binary for converting
// Thermo .raw acquisition files into gzipped mzML. The parser itself
// is an external collaborator; only its command-line surface is
// modeled here.
package thermo

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/xenith-ms/xlpipe"
	"github.com/xenith-ms/xlpipe/fs"
)

// RunFunc executes a prepared command. Tests substitute a fake that
// writes the output file the real binary would produce.
type RunFunc func(cmd *exec.Cmd) error

var _ xlpipe.Converter = (*Converter)(nil)

// Converter invokes ThermoRawFileParser.
type Converter struct {
	// Bin is the path to the ThermoRawFileParser binary.
	Bin string

	// Run executes the prepared command. Defaults to (*exec.Cmd).Run.
	Run RunFunc
}

// NewConverter creates a Converter for the given binary path.
func NewConverter(bin string) *Converter {
	return &Converter{
		Bin: bin,
		Run: func(cmd *exec.Cmd) error { return cmd.Run() },
	}
}

// Convert converts a .raw file to gzipped mzML under outDir and
// returns the path of the produced file. The parser names its output
// after the input file, so the expected name is derived the same way
// and verified after the run.
func (c *Converter) Convert(ctx context.Context, rawFile, outDir string) (string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", err
	}

	cmd := exec.CommandContext(ctx, c.Bin,
		"-i="+rawFile,
		"-o="+outDir,
		"-f=2", // indexed mzML
		"-g",   // gzip
	)

	var stderr tailBuffer
	cmd.Stderr = &stderr
	if err := c.Run(cmd); err != nil {
		return "", xlpipe.Errorf(xlpipe.EINTERNAL, "thermorawfileparser %s: %v: %s", filepath.Base(rawFile), err, stderr.String())
	}

	out := filepath.Join(outDir, fs.MzMLName(filepath.Base(rawFile)))
	if _, err := os.Stat(out); err != nil {
		return "", xlpipe.Errorf(xlpipe.EINTERNAL, "thermorawfileparser produced no output for %s", filepath.Base(rawFile))
	}
	return out, nil
}

// tailBuffer keeps the last chunk of written output.
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
