// Package xlpipe assembles reproducible training, validation, and test
// data for xenith, a re-scoring package for cross-linked peptide
// identifications. It downloads raw mass-spectrometry files from
// ProteomeXchange repositories, builds target-decoy protein databases,
// converts raw files to mzML, and runs the Kojak search engine to
// produce the inputs xenith trains on.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency or the external
// tool they wrap (e.g., sqlite/, kojak/, crux/).
package xlpipe
