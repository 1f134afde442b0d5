package profiling

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// LoadDistribution summarizes how teaching minutes spread across a group
type LoadDistribution struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Q25    float64 `json:"q25"`
	Q75    float64 `json:"q75"`
	// CV is the coefficient of variation, StdDev/Mean. Zero when the mean is not positive.
	CV       float64 `json:"cv"`
	Outliers int     `json:"outliers"`
}

// DistributionAnalyzer handles distribution shape analysis
type DistributionAnalyzer struct{}

// NewDistributionAnalyzer creates a new distribution analyzer
func NewDistributionAnalyzer() *DistributionAnalyzer {
	return &DistributionAnalyzer{}
}

// AnalyzeDistribution computes summary statistics for per-group totals.
// Empty input returns stats.ErrEmptyInput.
func (da *DistributionAnalyzer) AnalyzeDistribution(data []float64) (LoadDistribution, error) {
	dist := LoadDistribution{Count: len(data)}

	mean, err := stats.Mean(data)
	if err != nil {
		return dist, err
	}

	median, err := stats.Median(data)
	if err != nil {
		return dist, err
	}

	min, err := stats.Min(data)
	if err != nil {
		return dist, err
	}

	max, err := stats.Max(data)
	if err != nil {
		return dist, err
	}

	// Quartiles for IQR-based outlier detection
	sorted := append([]float64(nil), data...)
	sort.Float64s(sorted)
	q25 := stat.Quantile(0.25, stat.Empirical, sorted, nil)
	q75 := stat.Quantile(0.75, stat.Empirical, sorted, nil)

	dist.Mean = mean
	dist.Median = median
	dist.Min = min
	dist.Max = max
	dist.Q25 = q25
	dist.Q75 = q75
	dist.StdDev = sampleStdDev(data)
	if mean > 0 {
		dist.CV = dist.StdDev / mean
	}
	dist.Outliers = detectOutliers(data, q25, q75)

	return dist, nil
}

// sampleStdDev is the unbiased standard deviation, 0 for fewer than two values
func sampleStdDev(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	_, std := stat.MeanStdDev(data, nil)
	if math.IsNaN(std) {
		return 0
	}
	return std
}

// detectOutliers identifies outliers using IQR method
func detectOutliers(data []float64, q25, q75 float64) int {
	iqr := q75 - q25
	lowerBound := q25 - 1.5*iqr
	upperBound := q75 + 1.5*iqr

	outlierCount := 0
	for _, x := range data {
		if x < lowerBound || x > upperBound {
			outlierCount++
		}
	}

	return outlierCount
}
