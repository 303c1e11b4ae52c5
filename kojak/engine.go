// Package kojak wraps the Kojak cross-link search engine. Two engine
// builds are supported (2.0.0-dev and 1.6.1); each is configured from
// a version-specific parameter template with the dataset's database,
// tolerances, cross-linkers, and enzymes filled in. Kojak itself is an
// external collaborator; only its configuration file format and
// command line are modeled here.
package kojak

import (
	"context"
	"embed"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xenith-ms/xlpipe"
)

//go:embed templates/*.conf
var templates embed.FS

// Supported engine versions.
const (
	Version2 = "2.0.0-dev"
	Version1 = "1.6.1"
)

// RunFunc executes a prepared command. Tests substitute a fake that
// writes the result files the real binary would produce.
type RunFunc func(cmd *exec.Cmd) error

// Ensure Engine implements xlpipe.SearchEngine at compile time.
var _ xlpipe.SearchEngine = (*Engine)(nil)

// Engine invokes one Kojak build.
type Engine struct {
	version  string
	bin      string
	template string

	// Run executes the prepared command. Defaults to (*exec.Cmd).Run.
	Run RunFunc
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithTemplate overrides the embedded parameter template with a file
// on disk.
func WithTemplate(path string) EngineOption {
	return func(e *Engine) {
		e.template = path
	}
}

// NewEngine creates an Engine for the given version and binary path.
// Returns EINVALID for versions without a parameter template.
func NewEngine(version, bin string, opts ...EngineOption) (*Engine, error) {
	switch version {
	case Version2, Version1:
	default:
		return nil, xlpipe.Errorf(xlpipe.EINVALID, "unsupported Kojak version %q", version)
	}

	e := &Engine{
		version: version,
		bin:     bin,
		Run:     func(cmd *exec.Cmd) error { return cmd.Run() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Version identifies the engine build.
func (e *Engine) Version() string {
	return e.version
}

// Configure renders the parameter file for a search request: the
// template with database and tolerances substituted, followed by
// cross_link/mono_link lines for each reagent and an enzyme line for
// each enzyme.
func (e *Engine) Configure(req xlpipe.SearchRequest) (string, error) {
	linkers, err := xlpipe.LookupCrossLinkers(req.Mods)
	if err != nil {
		return "", err
	}
	enzymes, err := xlpipe.LookupEnzymes(req.Enzymes)
	if err != nil {
		return "", err
	}

	var raw []byte
	if e.template != "" {
		raw, err = os.ReadFile(e.template)
	} else {
		raw, err = templates.ReadFile("templates/kojak_" + e.version + ".conf")
	}
	if err != nil {
		return "", err
	}

	conf := string(raw)
	conf = strings.ReplaceAll(conf, "$database$", req.FastaFile)
	conf = strings.ReplaceAll(conf, "$pretol$", formatFloat(req.Params.PrecursorTolPPM))
	conf = strings.ReplaceAll(conf, "$fragbin$", formatFloat(req.Params.FragmentBinWidth))

	var b strings.Builder
	b.WriteString(conf)
	b.WriteString("\n")
	for _, linker := range linkers {
		fmt.Fprintf(&b, "cross_link = %s %s %s %s\n",
			linker.Sites, linker.Sites, formatFloat(linker.Mass), linker.Name)
		for _, mono := range linker.MonoMasses {
			fmt.Fprintf(&b, "mono_link = %s %s\n", linker.Sites, formatFloat(mono))
		}
	}
	b.WriteString("\n")
	for _, enzyme := range enzymes {
		fmt.Fprintf(&b, "enzyme = %s %s\n", cutRule(enzyme), enzyme.Name)
	}

	return b.String(), nil
}

// cutRule renders an enzyme's cut rule in Kojak notation:
// [cut-after]|[cut-before], with an empty side left blank.
func cutRule(enzyme xlpipe.Enzyme) string {
	var b strings.Builder
	if enzyme.CutAfter != "" {
		b.WriteString("[" + enzyme.CutAfter + "]")
	}
	b.WriteString("|")
	if enzyme.CutBefore != "" {
		b.WriteString("[" + enzyme.CutBefore + "]")
	}
	return b.String()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Search runs the engine over every mzML file in the request. The
// rendered parameter file is written to the output directory and
// passed to the binary together with each input file; result files
// are produced next to the parameter file.
func (e *Engine) Search(ctx context.Context, req xlpipe.SearchRequest) (*xlpipe.SearchResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	conf, err := e.Configure(req)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(req.OutputDir, 0755); err != nil {
		return nil, err
	}
	confFile := filepath.Join(req.OutputDir, "kojak.conf")
	if err := os.WriteFile(confFile, []byte(conf), 0644); err != nil {
		return nil, err
	}

	result := &xlpipe.SearchResult{Version: e.version}
	for _, mzml := range req.MzMLFiles {
		cmd := exec.CommandContext(ctx, e.bin, confFile, mzml)
		cmd.Dir = req.OutputDir

		var stderr strings.Builder
		cmd.Stderr = &stderr
		if err := e.Run(cmd); err != nil {
			return nil, xlpipe.Errorf(xlpipe.EINTERNAL, "kojak %s on %s: %v: %s",
				e.version, filepath.Base(mzml), err, tail(stderr.String()))
		}

		base := resultBase(mzml)
		result.Outputs = append(result.Outputs, xlpipe.SearchOutput{
			MzMLFile:   mzml,
			XenithFile: filepath.Join(req.OutputDir, base+".kojak.txt"),
			PinFile:    filepath.Join(req.OutputDir, base+".pin"),
		})
	}

	return result, nil
}

// resultBase strips the .mzML.gz (or .mzML) suffix from an input file
// name; Kojak names its outputs after that base.
func resultBase(mzml string) string {
	base := filepath.Base(mzml)
	base = strings.TrimSuffix(base, ".gz")
	base = strings.TrimSuffix(base, ".mzML")
	return base
}

func tail(s string) string {
	const max = 512
	if len(s) > max {
		return s[len(s)-max:]
	}
	return s
}

// DefaultEngines builds the engine set the pipeline searches with:
// 2.0.0-dev first, then 1.6.1 for comparison against xenith's
// published models.
func DefaultEngines(bin2, bin1 string) ([]xlpipe.SearchEngine, error) {
	e2, err := NewEngine(Version2, bin2)
	if err != nil {
		return nil, err
	}
	e1, err := NewEngine(Version1, bin1)
	if err != nil {
		return nil, err
	}
	return []xlpipe.SearchEngine{e2, e1}, nil
}
