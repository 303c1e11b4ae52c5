package main

import (
	"context"
	"io"

	"github.com/xenith-ms/xlpipe"
	"github.com/xenith-ms/xlpipe/fs"
	"github.com/xenith-ms/xlpipe/pipeline"
	"github.com/xenith-ms/xlpipe/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	DB       *sqlite.DB
	Datasets xlpipe.DatasetService
	Files    xlpipe.FileService
	Layout   *fs.Layout
	Pipeline *pipeline.Pipeline
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Data      string `env:"DATAPATH" default:"./data" help:"Data root directory"`
	CruxBin   string `env:"CRUX" default:"crux" help:"Path to the crux binary"`
	Kojak2Bin string `env:"KOJAK2" default:"kojak" help:"Path to the Kojak 2.0.0-dev binary"`
	Kojak1Bin string `env:"KOJAK1" default:"kojak1" help:"Path to the Kojak 1.6.1 binary"`
	RawParser string `env:"RAWPARSER" default:"ThermoRawFileParser" help:"Path to the ThermoRawFileParser binary"`

	Import  ImportCmd  `cmd:"" help:"Import a dataset registry"`
	List    ListCmd    `cmd:"" help:"List registered datasets"`
	Status  StatusCmd  `cmd:"" help:"Show a dataset and its files"`
	Fetch   FetchCmd   `cmd:"" help:"Download raw files and build the search database"`
	Convert ConvertCmd `cmd:"" help:"Convert raw files to mzML"`
	Params  ParamsCmd  `cmd:"" help:"Detect search tolerances with param-medic"`
	Search  SearchCmd  `cmd:"" help:"Search a dataset with Kojak"`
	Run     RunCmd     `cmd:"" help:"Run the full pipeline for a split"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a dataset and its file manifest"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	Path    string `arg:"" help:"Registry YAML file"`
	Replace bool   `help:"Replace datasets that already exist"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Split string `short:"s" help:"Limit to one split (training, validation, test)"`
}

// StatusCmd is the "status" subcommand.
type StatusCmd struct {
	PXID string `arg:"" help:"ProteomeXchange identifier"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	PXID  string `arg:"" help:"ProteomeXchange identifier"`
	Force bool   `short:"f" help:"Refetch files already present"`
}

// ConvertCmd is the "convert" subcommand.
type ConvertCmd struct {
	PXID string `arg:"" help:"ProteomeXchange identifier"`
}

// ParamsCmd is the "params" subcommand.
type ParamsCmd struct {
	PXID string `arg:"" help:"ProteomeXchange identifier"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	PXID   string `arg:"" help:"ProteomeXchange identifier"`
	Engine string `help:"Engine version to run (default: all)"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Split       string `required:"" help:"Split to process (training, validation, test)"`
	Concurrency int    `short:"c" default:"2" help:"Concurrent dataset limit"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	PXID  string `arg:"" help:"ProteomeXchange identifier"`
	Force bool   `help:"Confirm deletion"`
}
