package fs

import (
	"encoding/binary"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
)

// Stage writes a file with atomic semantics: content goes to a
// temporary sibling first, and Commit renames it into place. A partial
// download never shadows a complete file.
type Stage struct {
	dest string
	tmp  string
	f    *os.File
}

// NewStage creates a stage for the destination path, creating parent
// directories as needed.
func NewStage(dest string) (*Stage, error) {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return nil, err
	}

	tmp := dest + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return nil, err
	}

	return &Stage{dest: dest, tmp: tmp, f: f}, nil
}

// Write implements io.Writer.
func (s *Stage) Write(p []byte) (int, error) {
	return s.f.Write(p)
}

// Commit closes the temporary file and renames it into place.
func (s *Stage) Commit() error {
	if err := s.f.Close(); err != nil {
		return err
	}
	return os.Rename(s.tmp, s.dest)
}

// Abort discards the temporary file.
func (s *Stage) Abort() error {
	_ = s.f.Close()
	return os.Remove(s.tmp)
}

// HashFile returns the xxHash of a file's contents as a hex string,
// along with the file size.
func HashFile(path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	h := xxhash.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return "", 0, err
	}

	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, h.Sum64())
	return hex.EncodeToString(b), n, nil
}
