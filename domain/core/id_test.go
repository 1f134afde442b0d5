package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		require.NotEmpty(t, id, "empty ID at iteration %d", i)
		require.False(t, ids[id], "duplicate ID %s", id)
		ids[id] = true
	}
	assert.Len(t, ids, numIDs)
}

func TestDomainIDs(t *testing.T) {
	assert.Equal(t, "test-123", ID("test-123").String())
	upload := NewUploadID()
	assert.Len(t, upload.String(), 36)
	assert.NotEqual(t, upload, NewUploadID())
	assert.NotEqual(t, NewRequestID(), NewRequestID())
}

func TestComputeFingerprint(t *testing.T) {
	a := ComputeFingerprint("ab", "c")
	b := ComputeFingerprint("a", "bc")
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, ComputeFingerprint("ab", "c"))
	assert.Len(t, a.String(), 64)
	assert.Len(t, a.Short(), 12)
}

func TestErrorChains(t *testing.T) {
	assert.ErrorIs(t, NewSourceAbsentError("x.xlsx"), ErrNoData)
	assert.ErrorIs(t, NewSourceAbsentError("x.xlsx"), ErrSourceAbsent)
	assert.ErrorIs(t, ErrNoHeader, ErrNoData)
	assert.NotErrorIs(t, ErrChartNotFound, ErrNoData)
	assert.ErrorIs(t, ErrChartNotFound, ErrNotFound)
}
