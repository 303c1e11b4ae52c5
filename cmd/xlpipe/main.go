package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/xenith-ms/xlpipe"
	"github.com/xenith-ms/xlpipe/crux"
	"github.com/xenith-ms/xlpipe/fs"
	xlhttp "github.com/xenith-ms/xlpipe/http"
	"github.com/xenith-ms/xlpipe/kojak"
	"github.com/xenith-ms/xlpipe/pipeline"
	xlslog "github.com/xenith-ms/xlpipe/slog"
	"github.com/xenith-ms/xlpipe/sqlite"
	"github.com/xenith-ms/xlpipe/thermo"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	DatasetService xlpipe.DatasetService
	FileService    xlpipe.FileService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("xlpipe"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'xlpipe --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set XLPIPE_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.DatasetService = sqlite.NewDatasetService(m.DB)
	m.FileService = sqlite.NewFileService(m.DB)

	logger := slog.New(slog.NewTextHandler(stderr, nil))

	engines, err := kojak.DefaultEngines(cli.Kojak2Bin, cli.Kojak1Bin)
	if err != nil {
		return err
	}
	logged := make([]xlpipe.SearchEngine, len(engines))
	for i, engine := range engines {
		logged[i] = xlslog.NewLoggingEngine(engine, logger)
	}

	cruxTool := crux.New(cli.CruxBin)

	deps.DB = m.DB
	deps.Datasets = m.DatasetService
	deps.Files = m.FileService
	deps.Layout = fs.NewLayout(cli.Data)
	deps.Pipeline = &pipeline.Pipeline{
		Datasets:  m.DatasetService,
		Files:     m.FileService,
		Repo:      xlslog.NewLoggingRepository(xlhttp.NewPrideClient(http.DefaultClient), logger),
		Sequences: xlhttp.NewUniProtClient(http.DefaultClient),
		Decoys:    cruxTool,
		Detector:  cruxTool,
		Converter: thermo.NewConverter(cli.RawParser),
		Engines:   logged,
		Layout:    deps.Layout,
		Limiter:   pipeline.NewHostLimiter(1.0),
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("XLPIPE_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "xlpipe.db"
	}
	dir := filepath.Join(home, ".xlpipe")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "xlpipe.db")
}
