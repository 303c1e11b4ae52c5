package kojak_test

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xenith-ms/xlpipe"
	"github.com/xenith-ms/xlpipe/kojak"
)

func testRequest() xlpipe.SearchRequest {
	return xlpipe.SearchRequest{
		FastaFile: "/data/training/PXD007250/PXD007250.fasta",
		MzMLFiles: []string{"/data/training/PXD007250/run1.mzML.gz"},
		Params:    xlpipe.SearchParams{PrecursorTolPPM: 16.2, FragmentBinWidth: 0.02},
		Mods:      []string{"BS3"},
		Enzymes:   []string{"Trypsin"},
	}
}

func TestNewEngine(t *testing.T) {
	t.Parallel()

	t.Run("supported versions", func(t *testing.T) {
		t.Parallel()

		for _, version := range []string{kojak.Version2, kojak.Version1} {
			e, err := kojak.NewEngine(version, "/bin/kojak")
			require.NoError(t, err)
			assert.Equal(t, version, e.Version())
		}
	})

	t.Run("unsupported version is EINVALID", func(t *testing.T) {
		t.Parallel()

		_, err := kojak.NewEngine("3.0", "/bin/kojak")
		require.Error(t, err)
		assert.Equal(t, xlpipe.EINVALID, xlpipe.ErrorCode(err))
	})
}

func TestEngine_Configure(t *testing.T) {
	t.Parallel()

	t.Run("substitutes template placeholders", func(t *testing.T) {
		t.Parallel()

		e, err := kojak.NewEngine(kojak.Version2, "/bin/kojak")
		require.NoError(t, err)

		conf, err := e.Configure(testRequest())
		require.NoError(t, err)

		assert.Contains(t, conf, "database = /data/training/PXD007250/PXD007250.fasta")
		assert.Contains(t, conf, "ppm_tolerance_pre = 16.2")
		assert.Contains(t, conf, "fragment_bin_size = 0.02")
		assert.NotContains(t, conf, "$database$")
		assert.NotContains(t, conf, "$pretol$")
		assert.NotContains(t, conf, "$fragbin$")
	})

	t.Run("appends cross-linker and enzyme lines", func(t *testing.T) {
		t.Parallel()

		e, err := kojak.NewEngine(kojak.Version1, "/bin/kojak")
		require.NoError(t, err)

		req := testRequest()
		req.Mods = []string{"BS3", "BS3-d4"}
		req.Enzymes = []string{"Trypsin", "Chymotrypsin"}

		conf, err := e.Configure(req)
		require.NoError(t, err)

		assert.Contains(t, conf, "cross_link = nK nK 138.0680742 BS3")
		assert.Contains(t, conf, "mono_link = nK 155.094629")
		assert.Contains(t, conf, "mono_link = nK 156.078644")
		assert.Contains(t, conf, "cross_link = nK nK 142.093187 BS3-d4")
		assert.Contains(t, conf, "enzyme = [KR]| Trypsin")
		assert.Contains(t, conf, "enzyme = [FWY]| Chymotrypsin")
	})

	t.Run("uses template file override", func(t *testing.T) {
		t.Parallel()

		template := filepath.Join(t.TempDir(), "custom.conf")
		require.NoError(t, os.WriteFile(template,
			[]byte("database = $database$\npre = $pretol$\nbin = $fragbin$\n"), 0644))

		e, err := kojak.NewEngine(kojak.Version2, "/bin/kojak", kojak.WithTemplate(template))
		require.NoError(t, err)

		conf, err := e.Configure(testRequest())
		require.NoError(t, err)
		assert.Contains(t, conf, "pre = 16.2")
		assert.Contains(t, conf, "bin = 0.02")
	})

	t.Run("unknown modification is EINVALID", func(t *testing.T) {
		t.Parallel()

		e, err := kojak.NewEngine(kojak.Version2, "/bin/kojak")
		require.NoError(t, err)

		req := testRequest()
		req.Mods = []string{"DSSO"}
		_, err = e.Configure(req)
		require.Error(t, err)
		assert.Equal(t, xlpipe.EINVALID, xlpipe.ErrorCode(err))
	})
}

func TestEngine_Search(t *testing.T) {
	t.Parallel()

	t.Run("writes config and invokes binary per input", func(t *testing.T) {
		t.Parallel()

		e, err := kojak.NewEngine(kojak.Version2, "/bin/kojak")
		require.NoError(t, err)

		var invocations [][]string
		e.Run = func(cmd *exec.Cmd) error {
			invocations = append(invocations, cmd.Args)
			return nil
		}

		req := testRequest()
		req.MzMLFiles = []string{"run1.mzML.gz", "run2.mzML.gz"}
		req.OutputDir = t.TempDir()

		result, err := e.Search(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, kojak.Version2, result.Version)
		require.Len(t, result.Outputs, 2)
		assert.Equal(t, filepath.Join(req.OutputDir, "run1.kojak.txt"), result.Outputs[0].XenithFile)
		assert.Equal(t, filepath.Join(req.OutputDir, "run1.pin"), result.Outputs[0].PinFile)
		assert.Equal(t, filepath.Join(req.OutputDir, "run2.kojak.txt"), result.Outputs[1].XenithFile)

		require.Len(t, invocations, 2)
		confFile := filepath.Join(req.OutputDir, "kojak.conf")
		assert.Equal(t, []string{"/bin/kojak", confFile, "run1.mzML.gz"}, invocations[0])

		content, err := os.ReadFile(confFile)
		require.NoError(t, err)
		assert.Contains(t, string(content), "cross_link = nK nK 138.0680742 BS3")
	})

	t.Run("missing prerequisites are EINVALID", func(t *testing.T) {
		t.Parallel()

		e, err := kojak.NewEngine(kojak.Version2, "/bin/kojak")
		require.NoError(t, err)

		req := testRequest()
		req.Params = xlpipe.SearchParams{}
		_, err = e.Search(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, xlpipe.EINVALID, xlpipe.ErrorCode(err))
	})

	t.Run("engine failure is EINTERNAL with stderr", func(t *testing.T) {
		t.Parallel()

		e, err := kojak.NewEngine(kojak.Version1, "/bin/kojak")
		require.NoError(t, err)

		e.Run = func(cmd *exec.Cmd) error {
			_, _ = cmd.Stderr.Write([]byte("segfault in spectrum 42"))
			return errors.New("exit status 139")
		}

		req := testRequest()
		req.OutputDir = t.TempDir()
		_, err = e.Search(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, xlpipe.EINTERNAL, xlpipe.ErrorCode(err))
		assert.Contains(t, xlpipe.ErrorMessage(err), "segfault in spectrum 42")
	})
}

func TestDefaultEngines(t *testing.T) {
	t.Parallel()

	engines, err := kojak.DefaultEngines("/bin/kojak2", "/bin/kojak1")
	require.NoError(t, err)
	require.Len(t, engines, 2)
	assert.Equal(t, kojak.Version2, engines[0].Version())
	assert.Equal(t, kojak.Version1, engines[1].Version())
}
