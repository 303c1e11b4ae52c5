package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xenith-ms/xlpipe/fs"
)

func TestLayout_Paths(t *testing.T) {
	t.Parallel()

	l := fs.NewLayout("/data")

	assert.Equal(t, filepath.Join("/data", "training", "PXD007250"),
		l.DatasetDir("training", "PXD007250"))
	assert.Equal(t, filepath.Join("/data", "training", "PXD007250", "PXD007250.fasta"),
		l.FastaPath("training", "PXD007250"))
	assert.Equal(t, filepath.Join("/data", "test", "PXD010481", "run1.raw"),
		l.RawPath("test", "PXD010481", "run1.raw"))
	assert.Equal(t, filepath.Join("/data", "training", "PXD007250", "pm-out"),
		l.ParamMedicDir("training", "PXD007250"))
	assert.Equal(t, filepath.Join("/data", "training", "PXD007250", "kojak-2.0.0-dev"),
		l.ResultsDir("training", "PXD007250", "2.0.0-dev"))
}

func TestMzMLName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "lowercase extension",
			raw:  "xlink_PRPS1_rep1.raw",
			want: "xlink_PRPS1_rep1.mzML.gz",
		},
		{
			name: "uppercase extension",
			raw:  "Rappsilber_CLMS_PolII_1.RAW",
			want: "Rappsilber_CLMS_PolII_1.mzML.gz",
		},
		{
			name: "no raw extension",
			raw:  "spectra.wiff",
			want: "spectra.wiff.mzML.gz",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, fs.MzMLName(tt.raw))
		})
	}
}

func TestLayout_EnsureDatasetDir(t *testing.T) {
	t.Parallel()

	l := fs.NewLayout(t.TempDir())

	dir, err := l.EnsureDatasetDir("validation", "PXD012723")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestStage(t *testing.T) {
	t.Parallel()

	t.Run("commit renames into place", func(t *testing.T) {
		t.Parallel()

		dest := filepath.Join(t.TempDir(), "sub", "run1.raw")
		stage, err := fs.NewStage(dest)
		require.NoError(t, err)

		_, err = stage.Write([]byte("spectra"))
		require.NoError(t, err)

		// Destination must not exist before commit.
		_, err = os.Stat(dest)
		require.True(t, os.IsNotExist(err))

		require.NoError(t, stage.Commit())

		content, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Equal(t, "spectra", string(content))

		_, err = os.Stat(dest + ".tmp")
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("abort removes temporary file", func(t *testing.T) {
		t.Parallel()

		dest := filepath.Join(t.TempDir(), "run1.raw")
		stage, err := fs.NewStage(dest)
		require.NoError(t, err)

		_, err = stage.Write([]byte("partial"))
		require.NoError(t, err)
		require.NoError(t, stage.Abort())

		_, err = os.Stat(dest)
		assert.True(t, os.IsNotExist(err))
		_, err = os.Stat(dest + ".tmp")
		assert.True(t, os.IsNotExist(err))
	})
}

func TestHashFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0644))

	hash, size, err := fs.HashFile(path)
	require.NoError(t, err)
	assert.Equal(t, int64(7), size)
	assert.Len(t, hash, 16)

	// Same content hashes identically.
	path2 := filepath.Join(t.TempDir(), "g.txt")
	require.NoError(t, os.WriteFile(path2, []byte("content"), 0644))
	hash2, _, err := fs.HashFile(path2)
	require.NoError(t, err)
	assert.Equal(t, hash, hash2)
}
