package xlpipe

// CrossLinker describes a cross-linking reagent as a variable
// modification: the sites it bridges, the cross-link mass shift, and
// the mono-link (dead-end) mass shifts.
type CrossLinker struct {
	Name string

	// Sites is the residue specification for both ends of the linker
	// in Kojak site notation (e.g. "nK" for protein N-terminus or
	// lysine).
	Sites string

	// Mass is the cross-link mass shift in Da.
	Mass float64

	// MonoMasses are the mono-link mass shifts in Da (hydrolyzed and
	// aminolyzed forms).
	MonoMasses []float64
}

// Enzyme describes a proteolytic enzyme by its cut rule. CutAfter
// lists residues the enzyme cleaves after; CutBefore lists residues it
// cleaves before. Suppression is not supported.
type Enzyme struct {
	Name      string
	CutAfter  string
	CutBefore string
}

// CrossLinkers returns the registry of supported cross-linking
// reagents. BS3 and its deuterated forms are the reagents used across
// the training datasets.
func CrossLinkers() map[string]CrossLinker {
	return map[string]CrossLinker{
		"BS3": {
			Name:       "BS3",
			Sites:      "nK",
			Mass:       138.0680742,
			MonoMasses: []float64{155.094629, 156.078644},
		},
		"BS3-d4": {
			Name:       "BS3-d4",
			Sites:      "nK",
			Mass:       142.093187,
			MonoMasses: []float64{159.119736, 160.103751},
		},
		"BS3-d12": {
			Name:       "BS3-d12",
			Sites:      "nK",
			Mass:       150.14339515,
			MonoMasses: []float64{167.16994995, 168.15396495},
		},
	}
}

// Enzymes returns the registry of supported proteolytic enzymes.
func Enzymes() map[string]Enzyme {
	return map[string]Enzyme{
		"Trypsin":      {Name: "Trypsin", CutAfter: "KR"},
		"GluC":         {Name: "GluC", CutAfter: "DE"},
		"Chymotrypsin": {Name: "Chymotrypsin", CutAfter: "FWY"},
	}
}

// LookupCrossLinkers resolves modification names against the registry.
// Returns EINVALID naming the first unknown modification.
func LookupCrossLinkers(names []string) ([]CrossLinker, error) {
	registry := CrossLinkers()
	linkers := make([]CrossLinker, 0, len(names))
	for _, name := range names {
		linker, ok := registry[name]
		if !ok {
			return nil, Errorf(EINVALID, "unknown modification %q", name)
		}
		linkers = append(linkers, linker)
	}
	return linkers, nil
}

// LookupEnzymes resolves enzyme names against the registry.
// Returns EINVALID naming the first unknown enzyme.
func LookupEnzymes(names []string) ([]Enzyme, error) {
	registry := Enzymes()
	enzymes := make([]Enzyme, 0, len(names))
	for _, name := range names {
		enzyme, ok := registry[name]
		if !ok {
			return nil, Errorf(EINVALID, "unknown enzyme %q", name)
		}
		enzymes = append(enzymes, enzyme)
	}
	return enzymes, nil
}
