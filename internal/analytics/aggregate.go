package analytics

import (
	"cmp"
	"slices"

	"loadboard/domain/schedule"
)

// DefaultTopN is the presentation limit for ranked lists.
const DefaultTopN = 10

// Ranked is one group in a ranked aggregation.
type Ranked struct {
	Key   string `json:"key"`
	Value int    `json:"value"`
}

// Hours converts a minutes total to hours.
func (r Ranked) Hours() float64 {
	return float64(r.Value) / 60.0
}

// SumMinutesBy totals minutes per group, ranked descending with ties broken by key.
func SumMinutesBy(records []schedule.Record, key schedule.Key) []Ranked {
	totals := make(map[string]int)
	for _, r := range records {
		totals[key(r)] += r.Minutes
	}
	return rank(totals)
}

// CountBy counts sessions per group, ranked descending with ties broken by key.
func CountBy(records []schedule.Record, key schedule.Key) []Ranked {
	counts := make(map[string]int)
	for _, r := range records {
		counts[key(r)]++
	}
	return rank(counts)
}

// TopN truncates a full ranking. n <= 0 keeps everything.
func TopN(ranked []Ranked, n int) []Ranked {
	if n <= 0 || len(ranked) <= n {
		return ranked
	}
	return ranked[:n]
}

// Distinct counts the unique group keys.
func Distinct(records []schedule.Record, key schedule.Key) int {
	seen := make(map[string]struct{})
	for _, r := range records {
		seen[key(r)] = struct{}{}
	}
	return len(seen)
}

// TotalMinutes sums minutes over all records.
func TotalMinutes(records []schedule.Record) int {
	total := 0
	for _, r := range records {
		total += r.Minutes
	}
	return total
}

func rank(totals map[string]int) []Ranked {
	ranked := make([]Ranked, 0, len(totals))
	for k, v := range totals {
		ranked = append(ranked, Ranked{Key: k, Value: v})
	}
	slices.SortFunc(ranked, func(a, b Ranked) int {
		if c := cmp.Compare(b.Value, a.Value); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return ranked
}

// without drops records whose key is in excluded.
func without(records []schedule.Record, key schedule.Key, excluded ...string) []schedule.Record {
	out := make([]schedule.Record, 0, len(records))
	for _, r := range records {
		if !slices.Contains(excluded, key(r)) {
			out = append(out, r)
		}
	}
	return out
}
