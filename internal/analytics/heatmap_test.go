package analytics

import (
	"testing"

	"loadboard/domain/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeatBins(t *testing.T) {
	bins := HeatBins()
	require.Len(t, bins, 13)
	assert.Equal(t, "(8.5, 9.5]", bins[0])
	assert.Equal(t, "(20.5, 21.5]", bins[12])
}

func TestHeatBinEdges(t *testing.T) {
	assert.Equal(t, 0, heatBin(8.5))
	assert.Equal(t, 0, heatBin(9.5))
	assert.Equal(t, 1, heatBin(9.75))
	assert.Equal(t, 12, heatBin(21.5))
	assert.Equal(t, -1, heatBin(8.25))
	assert.Equal(t, -1, heatBin(21.75))
}

func TestBuildHeatmap(t *testing.T) {
	h := BuildHeatmap(sampleTable().Records)
	require.Len(t, h.Rows, 7)

	assert.Equal(t, 4, h.Total)
	assert.Equal(t, 2, h.Max)
	assert.Equal(t, schedule.Mon, h.Rows[0].Day)
	assert.Equal(t, 2, h.Rows[0].Counts[0])
	assert.Equal(t, 1, h.Rows[2].Counts[0])
	assert.Equal(t, 1, h.Rows[3].Counts[9])
	assert.Equal(t, 0, h.Rows[4].Counts[12])
	assert.False(t, h.Empty())
}

func TestBuildHeatmapEmpty(t *testing.T) {
	h := BuildHeatmap([]schedule.Record{rec("A", "", "", "", schedule.Mon, nil, 10)})
	assert.True(t, h.Empty())
	assert.Len(t, h.Bins, 13)
}
