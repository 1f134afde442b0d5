// Package analytics filters the cleaned schedule and computes the grouped
// summaries behind the dashboard.
package analytics

import (
	"cmp"
	"math"
	"slices"

	"loadboard/domain/schedule"
	"loadboard/internal/errors"
)

// Start-hour slider domain.
const (
	HourMin  = 8.5
	HourMax  = 21.75
	HourStep = 0.25
)

// OptionalSet is a multi-select value. An empty set places no restriction on
// its dimension.
type OptionalSet[T cmp.Ordered] struct {
	values map[T]struct{}
}

// NewOptionalSet builds a set from the selected values. Duplicates collapse.
func NewOptionalSet[T cmp.Ordered](values ...T) OptionalSet[T] {
	s := OptionalSet[T]{values: make(map[T]struct{}, len(values))}
	for _, v := range values {
		s.values[v] = struct{}{}
	}
	return s
}

// Empty reports whether nothing is selected.
func (s OptionalSet[T]) Empty() bool {
	return len(s.values) == 0
}

// Len returns the number of selected values.
func (s OptionalSet[T]) Len() int {
	return len(s.values)
}

// Contains reports whether v is explicitly selected.
func (s OptionalSet[T]) Contains(v T) bool {
	_, ok := s.values[v]
	return ok
}

// Allows reports whether a record with value v passes this dimension.
func (s OptionalSet[T]) Allows(v T) bool {
	return s.Empty() || s.Contains(v)
}

// Values returns the selection in ascending order.
func (s OptionalSet[T]) Values() []T {
	out := make([]T, 0, len(s.values))
	for v := range s.values {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// HourRange is an inclusive start-hour window.
type HourRange struct {
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
}

// SnapHour clamps h to the slider domain and rounds it to the nearest step.
func SnapHour(h float64) float64 {
	if math.IsNaN(h) {
		return HourMin
	}
	h = math.Min(math.Max(h, HourMin), HourMax)
	return math.Round(h/HourStep) * HourStep
}

// NewHourRange snaps both bounds and rejects an inverted window.
func NewHourRange(lo, hi float64) (*HourRange, error) {
	r := &HourRange{Lo: SnapHour(lo), Hi: SnapHour(hi)}
	if r.Lo > r.Hi {
		return nil, errors.InvalidInput("hour range lower bound is after upper bound")
	}
	return r, nil
}

// Contains reports whether a start hour passes the window. Records without a
// parsed start hour always pass.
func (r *HourRange) Contains(h *float64) bool {
	if r == nil || h == nil {
		return true
	}
	return r.Lo <= *h && *h <= r.Hi
}

// Filter holds one optional predicate per dimension. The zero value selects everything.
type Filter struct {
	Instructors OptionalSet[string]
	Departments OptionalSet[string]
	Halls       OptionalSet[string]
	Days        OptionalSet[schedule.Day]
	Hours       *HourRange
}

// IsZero reports whether the filter restricts nothing.
func (f Filter) IsZero() bool {
	return f.Instructors.Empty() && f.Departments.Empty() && f.Halls.Empty() &&
		f.Days.Empty() && f.Hours == nil
}

// Matches applies every predicate to a single record.
func (f Filter) Matches(r schedule.Record) bool {
	return f.Instructors.Allows(r.Instructor) &&
		f.Departments.Allows(r.Department) &&
		f.Halls.Allows(r.Hall) &&
		f.Days.Allows(r.Day) &&
		f.Hours.Contains(r.StartHour)
}

// View is the record set the aggregations run over.
type View struct {
	Records []schedule.Record `json:"records"`
	// Fallback is set when the filter matched nothing and Records holds the full table.
	Fallback bool `json:"fallback"`
}

// Len returns the number of records in the view.
func (v View) Len() int {
	return len(v.Records)
}

// Apply filters the table into a new slice in source order. When the filter
// matches no rows the full table is returned with Fallback set, so the
// dashboard is never blank. The table itself is never modified.
func Apply(table *schedule.Table, f Filter) View {
	if table.Len() == 0 {
		return View{Records: []schedule.Record{}}
	}
	if f.IsZero() {
		return View{Records: slices.Clone(table.Records)}
	}

	records := make([]schedule.Record, 0, len(table.Records))
	for _, r := range table.Records {
		if f.Matches(r) {
			records = append(records, r)
		}
	}
	if len(records) == 0 {
		return View{Records: slices.Clone(table.Records), Fallback: true}
	}
	return View{Records: records}
}
