package analytics

import (
	"fmt"
	"math"
	"strconv"

	"loadboard/domain/schedule"
)

// Heatmap bin edges run from 8.5 to 21.5 in one-hour steps. Bins are
// right-closed and the first bin also includes its lower edge.
const (
	heatFirstEdge = 8.5
	heatLastEdge  = 21.5
	heatBinWidth  = 1.0
)

// HeatRow is the per-bin session count for one weekday.
type HeatRow struct {
	Day    schedule.Day `json:"day"`
	Counts []int        `json:"counts"`
}

// Heatmap counts session starts per weekday and hour bin.
type Heatmap struct {
	Bins  []string  `json:"bins"`
	Rows  []HeatRow `json:"rows"`
	Total int       `json:"total"`
	Max   int       `json:"max"`
}

// Empty reports whether no session fell into any bin.
func (h Heatmap) Empty() bool {
	return h.Total == 0
}

// HeatBins returns the bin labels, "(8.5, 9.5]" through "(20.5, 21.5]".
func HeatBins() []string {
	n := int((heatLastEdge - heatFirstEdge) / heatBinWidth)
	bins := make([]string, n)
	for i := range bins {
		lo := heatFirstEdge + float64(i)*heatBinWidth
		bins[i] = fmt.Sprintf("(%s, %s]", formatEdge(lo), formatEdge(lo+heatBinWidth))
	}
	return bins
}

// heatBin maps a start hour to its bin index, or -1 when outside the edges.
func heatBin(h float64) int {
	if h < heatFirstEdge || h > heatLastEdge || math.IsNaN(h) {
		return -1
	}
	if h == heatFirstEdge {
		return 0
	}
	return int(math.Ceil((h-heatFirstEdge)/heatBinWidth)) - 1
}

// BuildHeatmap bins records with a parsed start hour. Hours outside the
// edges are skipped.
func BuildHeatmap(records []schedule.Record) Heatmap {
	bins := HeatBins()
	h := Heatmap{Bins: bins, Rows: make([]HeatRow, len(schedule.Days))}
	for i, d := range schedule.Days {
		h.Rows[i] = HeatRow{Day: d, Counts: make([]int, len(bins))}
	}

	for _, r := range records {
		if !r.HasStartHour() || !r.Day.Valid() {
			continue
		}
		bin := heatBin(*r.StartHour)
		if bin < 0 {
			continue
		}
		row := &h.Rows[int(r.Day)-1]
		row.Counts[bin]++
		h.Total++
		h.Max = max(h.Max, row.Counts[bin])
	}
	return h
}

func formatEdge(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
