package xlpipe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xenith-ms/xlpipe"
)

func TestLookupCrossLinkers(t *testing.T) {
	t.Parallel()

	t.Run("resolves known reagents in order", func(t *testing.T) {
		t.Parallel()

		linkers, err := xlpipe.LookupCrossLinkers([]string{"BS3", "BS3-d4"})
		require.NoError(t, err)
		require.Len(t, linkers, 2)
		assert.Equal(t, "BS3", linkers[0].Name)
		assert.InDelta(t, 138.0680742, linkers[0].Mass, 1e-9)
		assert.Equal(t, "BS3-d4", linkers[1].Name)
		assert.Len(t, linkers[1].MonoMasses, 2)
	})

	t.Run("unknown reagent is invalid", func(t *testing.T) {
		t.Parallel()

		_, err := xlpipe.LookupCrossLinkers([]string{"DSSO"})
		require.Error(t, err)
		assert.Equal(t, xlpipe.EINVALID, xlpipe.ErrorCode(err))
	})
}

func TestLookupEnzymes(t *testing.T) {
	t.Parallel()

	t.Run("resolves known enzymes", func(t *testing.T) {
		t.Parallel()

		enzymes, err := xlpipe.LookupEnzymes([]string{"Trypsin", "Chymotrypsin"})
		require.NoError(t, err)
		require.Len(t, enzymes, 2)
		assert.Equal(t, "KR", enzymes[0].CutAfter)
		assert.Equal(t, "FWY", enzymes[1].CutAfter)
	})

	t.Run("unknown enzyme is invalid", func(t *testing.T) {
		t.Parallel()

		_, err := xlpipe.LookupEnzymes([]string{"LysC"})
		require.Error(t, err)
		assert.Equal(t, xlpipe.EINVALID, xlpipe.ErrorCode(err))
	})
}

func TestSearchRequest_Validate(t *testing.T) {
	t.Parallel()

	valid := func() *xlpipe.SearchRequest {
		return &xlpipe.SearchRequest{
			FastaFile: "PXD007250.fasta",
			MzMLFiles: []string{"run1.mzML.gz"},
			Params:    xlpipe.SearchParams{PrecursorTolPPM: 15, FragmentBinWidth: 0.02},
		}
	}

	t.Run("valid request", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, valid().Validate())
	})

	t.Run("missing fasta", func(t *testing.T) {
		t.Parallel()
		r := valid()
		r.FastaFile = ""
		assert.Equal(t, xlpipe.EINVALID, xlpipe.ErrorCode(r.Validate()))
	})

	t.Run("missing mzML files", func(t *testing.T) {
		t.Parallel()
		r := valid()
		r.MzMLFiles = nil
		assert.Equal(t, xlpipe.EINVALID, xlpipe.ErrorCode(r.Validate()))
	})

	t.Run("missing tolerances", func(t *testing.T) {
		t.Parallel()
		r := valid()
		r.Params = xlpipe.SearchParams{}
		assert.Equal(t, xlpipe.EINVALID, xlpipe.ErrorCode(r.Validate()))
	})
}
