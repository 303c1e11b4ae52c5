package xlpipe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xenith-ms/xlpipe"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := xlpipe.Errorf(xlpipe.ENOTFOUND, "dataset %q not found", "PXD000000")

	assert.Equal(t, xlpipe.ENOTFOUND, xlpipe.ErrorCode(err))
	assert.Equal(t, "dataset \"PXD000000\" not found", xlpipe.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, xlpipe.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, xlpipe.ErrorMessage(nil))
}
