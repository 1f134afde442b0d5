package profiling

import (
	"testing"

	"github.com/montanaflynn/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeDistribution(t *testing.T) {
	da := NewDistributionAnalyzer()

	dist, err := da.AnalyzeDistribution([]float64{100, 200, 300, 400})
	require.NoError(t, err)

	assert.Equal(t, 4, dist.Count)
	assert.InDelta(t, 250, dist.Mean, 1e-9)
	assert.InDelta(t, 250, dist.Median, 1e-9)
	assert.InDelta(t, 100, dist.Min, 1e-9)
	assert.InDelta(t, 400, dist.Max, 1e-9)
	assert.InDelta(t, 129.0994, dist.StdDev, 1e-3)
	assert.InDelta(t, 129.0994/250, dist.CV, 1e-3)
	assert.Equal(t, 0, dist.Outliers)
}

func TestAnalyzeDistributionSingleValue(t *testing.T) {
	dist, err := NewDistributionAnalyzer().AnalyzeDistribution([]float64{90})
	require.NoError(t, err)
	assert.Equal(t, 0.0, dist.StdDev)
	assert.Equal(t, 0.0, dist.CV)
	assert.InDelta(t, 90, dist.Mean, 1e-9)
}

func TestAnalyzeDistributionZeroMean(t *testing.T) {
	dist, err := NewDistributionAnalyzer().AnalyzeDistribution([]float64{0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, 0.0, dist.CV)
}

func TestAnalyzeDistributionEmpty(t *testing.T) {
	_, err := NewDistributionAnalyzer().AnalyzeDistribution(nil)
	assert.ErrorIs(t, err, stats.ErrEmptyInput)
}

func TestDetectOutliers(t *testing.T) {
	assert.Equal(t, 1, detectOutliers([]float64{10, 11, 12, 13, 100}, 11, 13))
	assert.Equal(t, 0, detectOutliers([]float64{10, 11, 12}, 10, 12))
}
