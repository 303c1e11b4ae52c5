package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xenith-ms/xlpipe"
	"github.com/xenith-ms/xlpipe/sqlite"
)

func newDataset(pxid, split string) *xlpipe.Dataset {
	d := &xlpipe.Dataset{
		PXID:      pxid,
		Split:     split,
		RawFiles:  []string{pxid + "_run1.raw"},
		Fasta:     []string{pxid + ".fasta"},
		FastaType: xlpipe.FastaTypeFasta,
	}
	d.ApplyDefaults()
	return d
}

func TestDatasetService_CreateDataset(t *testing.T) {
	t.Parallel()

	t.Run("creates and assigns metadata", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewDatasetService(db)
		ctx := context.Background()

		d := newDataset("PXD007250", xlpipe.SplitTraining)
		require.NoError(t, s.CreateDataset(ctx, d))

		assert.NotEmpty(t, d.ID)
		assert.False(t, d.CreatedAt.IsZero())
		assert.False(t, d.UpdatedAt.IsZero())
	})

	t.Run("rejects invalid dataset", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewDatasetService(db)

		err := s.CreateDataset(context.Background(), &xlpipe.Dataset{PXID: "PXD007250"})
		require.Error(t, err)
		assert.Equal(t, xlpipe.EINVALID, xlpipe.ErrorCode(err))
	})

	t.Run("duplicate PXID conflicts", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewDatasetService(db)
		ctx := context.Background()

		require.NoError(t, s.CreateDataset(ctx, newDataset("PXD007250", xlpipe.SplitTraining)))

		err := s.CreateDataset(ctx, newDataset("PXD007250", xlpipe.SplitValidation))
		require.Error(t, err)
		assert.Equal(t, xlpipe.ECONFLICT, xlpipe.ErrorCode(err))
	})
}

func TestDatasetService_FindDatasetByPXID(t *testing.T) {
	t.Parallel()

	t.Run("round-trips all fields", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewDatasetService(db)
		ctx := context.Background()

		d := &xlpipe.Dataset{
			PXID:      "PXD001675",
			Split:     xlpipe.SplitTraining,
			RawFiles:  []string{"Chen_Rappsilber_QCLMS_xC3d0C3bd4_III.raw"},
			Fasta:     []string{"P01014"},
			FastaType: xlpipe.FastaTypeProteins,
			Mods:      []string{"BS3", "BS3-d4"},
			Enzymes:   []string{"Trypsin"},
		}
		require.NoError(t, s.CreateDataset(ctx, d))

		got, err := s.FindDatasetByPXID(ctx, "PXD001675")
		require.NoError(t, err)
		assert.Equal(t, d.ID, got.ID)
		assert.Equal(t, d.RawFiles, got.RawFiles)
		assert.Equal(t, d.Fasta, got.Fasta)
		assert.Equal(t, []string{"BS3", "BS3-d4"}, got.Mods)
		assert.Nil(t, got.PrecursorTol)
		assert.Nil(t, got.FragmentBinWidth)
	})

	t.Run("returns ENOTFOUND for unknown PXID", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewDatasetService(db)

		_, err := s.FindDatasetByPXID(context.Background(), "PXD999999")
		require.Error(t, err)
		assert.Equal(t, xlpipe.ENOTFOUND, xlpipe.ErrorCode(err))
	})
}

func TestDatasetService_FindDatasets(t *testing.T) {
	t.Parallel()

	t.Run("filters by split", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewDatasetService(db)
		ctx := context.Background()

		require.NoError(t, s.CreateDataset(ctx, newDataset("PXD003282", xlpipe.SplitTraining)))
		require.NoError(t, s.CreateDataset(ctx, newDataset("PXD012723", xlpipe.SplitValidation)))
		require.NoError(t, s.CreateDataset(ctx, newDataset("PXD010481", xlpipe.SplitTest)))

		split := xlpipe.SplitValidation
		got, err := s.FindDatasets(ctx, xlpipe.DatasetFilter{Split: &split})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "PXD012723", got[0].PXID)
	})

	t.Run("orders by split then PXID", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewDatasetService(db)
		ctx := context.Background()

		require.NoError(t, s.CreateDataset(ctx, newDataset("PXD010481", xlpipe.SplitTest)))
		require.NoError(t, s.CreateDataset(ctx, newDataset("PXD008215", xlpipe.SplitTraining)))
		require.NoError(t, s.CreateDataset(ctx, newDataset("PXD003282", xlpipe.SplitTraining)))

		got, err := s.FindDatasets(ctx, xlpipe.DatasetFilter{})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "PXD010481", got[0].PXID) // "test" sorts before "training"
		assert.Equal(t, "PXD003282", got[1].PXID)
		assert.Equal(t, "PXD008215", got[2].PXID)
	})

	t.Run("respects limit and offset", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewDatasetService(db)
		ctx := context.Background()

		require.NoError(t, s.CreateDataset(ctx, newDataset("PXD000001", xlpipe.SplitTraining)))
		require.NoError(t, s.CreateDataset(ctx, newDataset("PXD000002", xlpipe.SplitTraining)))
		require.NoError(t, s.CreateDataset(ctx, newDataset("PXD000003", xlpipe.SplitTraining)))

		got, err := s.FindDatasets(ctx, xlpipe.DatasetFilter{Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "PXD000002", got[0].PXID)
	})
}

func TestDatasetService_UpdateDataset(t *testing.T) {
	t.Parallel()

	t.Run("stores detected tolerances", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewDatasetService(db)
		ctx := context.Background()

		require.NoError(t, s.CreateDataset(ctx, newDataset("PXD007250", xlpipe.SplitTraining)))

		tol, bin := 16.2, 0.02
		got, err := s.UpdateDataset(ctx, "PXD007250", xlpipe.DatasetUpdate{
			PrecursorTol:     &tol,
			FragmentBinWidth: &bin,
		})
		require.NoError(t, err)
		require.True(t, got.HasParams())

		got, err = s.FindDatasetByPXID(ctx, "PXD007250")
		require.NoError(t, err)
		require.True(t, got.HasParams())
		assert.InDelta(t, 16.2, *got.PrecursorTol, 1e-9)
		assert.InDelta(t, 0.02, *got.FragmentBinWidth, 1e-9)
	})

	t.Run("returns ENOTFOUND for unknown PXID", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewDatasetService(db)

		tol := 10.0
		_, err := s.UpdateDataset(context.Background(), "PXD999999", xlpipe.DatasetUpdate{PrecursorTol: &tol})
		require.Error(t, err)
		assert.Equal(t, xlpipe.ENOTFOUND, xlpipe.ErrorCode(err))
	})
}

func TestDatasetService_DeleteDataset(t *testing.T) {
	t.Parallel()

	t.Run("deletes dataset and cascades to files", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		datasets := sqlite.NewDatasetService(db)
		files := sqlite.NewFileService(db)
		ctx := context.Background()

		d := newDataset("PXD007250", xlpipe.SplitTraining)
		require.NoError(t, datasets.CreateDataset(ctx, d))
		require.NoError(t, files.CreateFile(ctx, &xlpipe.DataFile{
			DatasetID: d.ID,
			Name:      "run1.raw",
			Kind:      xlpipe.FileKindRaw,
		}))

		require.NoError(t, datasets.DeleteDataset(ctx, "PXD007250"))

		_, err := datasets.FindDatasetByPXID(ctx, "PXD007250")
		assert.Equal(t, xlpipe.ENOTFOUND, xlpipe.ErrorCode(err))

		got, err := files.FindFiles(ctx, xlpipe.FileFilter{DatasetID: &d.ID})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("returns ENOTFOUND for unknown PXID", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewDatasetService(db)

		err := s.DeleteDataset(context.Background(), "PXD999999")
		require.Error(t, err)
		assert.Equal(t, xlpipe.ENOTFOUND, xlpipe.ErrorCode(err))
	})
}
