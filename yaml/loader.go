// Package yaml loads dataset registry files. A registry file maps each
// split to its datasets, keyed by ProteomeXchange identifier.
package yaml

import (
	"fmt"
	"os"
	"sort"

	"github.com/xenith-ms/xlpipe"
	"gopkg.in/yaml.v3"
)

// registry mirrors the on-disk layout of a datasets file.
type registry struct {
	Training   map[string]entry `yaml:"training"`
	Validation map[string]entry `yaml:"validation"`
	Test       map[string]entry `yaml:"test"`
}

// entry is one dataset definition. Fasta accepts either a single
// scalar (a repository file name or proteome ID) or a sequence of
// UniProt accessions.
type entry struct {
	RawFiles  []string   `yaml:"raw_files"`
	Fasta     stringList `yaml:"fasta"`
	FastaType string     `yaml:"fasta_type"`
	Mods      []string   `yaml:"mods"`
	Enzymes   []string   `yaml:"enzymes"`
}

// stringList unmarshals from either a YAML scalar or a sequence.
type stringList []string

func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		*l = []string{s}
		return nil
	case yaml.SequenceNode:
		var s []string
		if err := value.Decode(&s); err != nil {
			return err
		}
		*l = s
		return nil
	default:
		return fmt.Errorf("fasta must be a string or a list of strings (line %d)", value.Line)
	}
}

// LoadDatasets reads a registry file and returns validated datasets
// with defaults applied. Datasets are returned in split order, sorted
// by PXID within each split.
func LoadDatasets(path string) ([]*xlpipe.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseDatasets(data)
}

// ParseDatasets parses registry file contents.
func ParseDatasets(data []byte) ([]*xlpipe.Dataset, error) {
	var reg registry
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return nil, xlpipe.Errorf(xlpipe.EINVALID, "parsing datasets file: %v", err)
	}

	var datasets []*xlpipe.Dataset
	for _, split := range []struct {
		name    string
		entries map[string]entry
	}{
		{xlpipe.SplitTraining, reg.Training},
		{xlpipe.SplitValidation, reg.Validation},
		{xlpipe.SplitTest, reg.Test},
	} {
		pxids := make([]string, 0, len(split.entries))
		for pxid := range split.entries {
			pxids = append(pxids, pxid)
		}
		sort.Strings(pxids)

		for _, pxid := range pxids {
			e := split.entries[pxid]
			d := &xlpipe.Dataset{
				PXID:      pxid,
				Split:     split.name,
				RawFiles:  e.RawFiles,
				Fasta:     e.Fasta,
				FastaType: e.FastaType,
				Mods:      e.Mods,
				Enzymes:   e.Enzymes,
			}
			d.ApplyDefaults()
			if err := d.Validate(); err != nil {
				return nil, err
			}
			datasets = append(datasets, d)
		}
	}

	return datasets, nil
}
