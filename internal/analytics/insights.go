package analytics

import (
	"fmt"
	"math"
	"slices"

	"loadboard/domain/schedule"
	"loadboard/internal/profiling"
)

// NotAvailable labels an insight that has no input data.
const NotAvailable = "N/A"

// Hierarchy limits.
const (
	HierarchyDepartments = 5
	HierarchyInstructors = 3
)

// KPIs are the headline counters over the filtered view.
type KPIs struct {
	Sessions          int     `json:"sessions"`
	UniqueCourses     int     `json:"unique_courses"`
	ActiveInstructors int     `json:"active_instructors"`
	TotalMinutes      int     `json:"total_minutes"`
	TotalHours        float64 `json:"total_hours"`
}

// ComputeKPIs counts sessions, distinct courses and instructors, and total hours.
func ComputeKPIs(records []schedule.Record) KPIs {
	total := TotalMinutes(records)
	return KPIs{
		Sessions:          len(records),
		UniqueCourses:     Distinct(records, schedule.ByCourseTitle),
		ActiveInstructors: Distinct(records, schedule.ByInstructor),
		TotalMinutes:      total,
		TotalHours:        float64(total) / 60.0,
	}
}

// Coverage describes the full cleaned table regardless of filters.
type Coverage struct {
	Sessions    int `json:"sessions"`
	Faculties   int `json:"faculties"`
	Courses     int `json:"courses"`
	Instructors int `json:"instructors"`
	Dropped     int `json:"dropped"`
}

// ComputeCoverage summarizes the full table.
func ComputeCoverage(table *schedule.Table) Coverage {
	if table == nil {
		return Coverage{}
	}
	return Coverage{
		Sessions:    table.Len(),
		Faculties:   Distinct(table.Records, schedule.ByDepartment),
		Courses:     Distinct(table.Records, schedule.ByCourseTitle),
		Instructors: Distinct(table.Records, schedule.ByInstructor),
		Dropped:     table.Dropped,
	}
}

// LoadInsight compares the most loaded instructor against the average
// per-instructor load.
type LoadInsight struct {
	TopInstructor string  `json:"top_instructor"`
	TopMinutes    int     `json:"top_minutes"`
	TopHours      float64 `json:"top_hours"`
	// AverageMinutes is the mean of per-instructor minute totals.
	AverageMinutes float64 `json:"average_minutes"`
	// PercentAboveAverage is 0 when the average is zero or undefined.
	PercentAboveAverage float64                     `json:"percent_above_average"`
	Distribution        *profiling.LoadDistribution `json:"distribution,omitempty"`
}

// InstructorLoad ranks instructors by total minutes and measures the leader
// against the mean.
func InstructorLoad(records []schedule.Record) LoadInsight {
	insight := LoadInsight{TopInstructor: NotAvailable}

	loads := SumMinutesBy(records, schedule.ByInstructor)
	if len(loads) == 0 {
		return insight
	}

	insight.TopInstructor = loads[0].Key
	insight.TopMinutes = loads[0].Value
	insight.TopHours = loads[0].Hours()

	totals := make([]float64, len(loads))
	for i, l := range loads {
		totals[i] = float64(l.Value)
	}
	dist, err := profiling.NewDistributionAnalyzer().AnalyzeDistribution(totals)
	if err != nil {
		return insight
	}
	insight.Distribution = &dist
	insight.AverageMinutes = dist.Mean
	if dist.Mean > 0 && !math.IsNaN(dist.Mean) {
		insight.PercentAboveAverage = (float64(insight.TopMinutes) - dist.Mean) / dist.Mean * 100
	}
	return insight
}

// Slot is a (day, whole hour) bucket of session starts.
type Slot struct {
	Day   schedule.Day `json:"day"`
	Hour  int          `json:"hour"`
	Count int          `json:"count"`
}

// Text renders the slot as "Mon 09:00-10:00 (n sessions)".
func (s Slot) Text() string {
	return fmt.Sprintf("%s %02d:00-%02d:00 (%d sessions)", s.Day, s.Hour, s.Hour+1, s.Count)
}

// PeakSlot finds the busiest (day, floor(start_hour)) bucket among records
// with a parsed start hour. Ties go to the earlier weekday, then the earlier
// hour. ok is false when no record has a start hour.
func PeakSlot(records []schedule.Record) (peak Slot, ok bool) {
	counts := make(map[Slot]int)
	for _, r := range records {
		if !r.HasStartHour() {
			continue
		}
		counts[Slot{Day: r.Day, Hour: int(math.Floor(*r.StartHour))}]++
	}
	if len(counts) == 0 {
		return Slot{}, false
	}

	slots := make([]Slot, 0, len(counts))
	for s := range counts {
		slots = append(slots, s)
	}
	slices.SortFunc(slots, func(a, b Slot) int {
		if a.Day != b.Day {
			return int(a.Day) - int(b.Day)
		}
		return a.Hour - b.Hour
	})

	for _, s := range slots {
		if n := counts[s]; n > peak.Count {
			peak = Slot{Day: s.Day, Hour: s.Hour, Count: n}
		}
	}
	return peak, true
}

// TopBy returns the leading group by total minutes, with Key "N/A" when empty.
func TopBy(records []schedule.Record, key schedule.Key) Ranked {
	ranked := SumMinutesBy(records, key)
	if len(ranked) == 0 {
		return Ranked{Key: NotAvailable}
	}
	return ranked[0]
}

// FacultyDistribution totals minutes per department, leaving out the
// "Other" and "Unknown" buckets.
func FacultyDistribution(records []schedule.Record, n int) []Ranked {
	known := without(records, schedule.ByDepartment, schedule.Other, schedule.Unknown)
	return TopN(SumMinutesBy(known, schedule.ByDepartment), n)
}

// HierarchyLeaf is one instructor under a department.
type HierarchyLeaf struct {
	Instructor string `json:"instructor"`
	Label      string `json:"label"`
	Minutes    int    `json:"minutes"`
}

// HierarchyNode is a department with its top instructors.
type HierarchyNode struct {
	Department  string          `json:"department"`
	Minutes     int             `json:"minutes"`
	Instructors []HierarchyLeaf `json:"instructors"`
}

// Hierarchy takes the top departments by minutes and, within each, the top
// instructors by minutes, labelled with ShortName.
func Hierarchy(records []schedule.Record, departments, instructors int) []HierarchyNode {
	byDept := make(map[string][]schedule.Record)
	for _, r := range records {
		byDept[r.Department] = append(byDept[r.Department], r)
	}

	top := TopN(SumMinutesBy(records, schedule.ByDepartment), departments)
	nodes := make([]HierarchyNode, 0, len(top))
	for _, d := range top {
		node := HierarchyNode{Department: d.Key, Minutes: d.Value, Instructors: []HierarchyLeaf{}}
		for _, in := range TopN(SumMinutesBy(byDept[d.Key], schedule.ByInstructor), instructors) {
			node.Instructors = append(node.Instructors, HierarchyLeaf{
				Instructor: in.Key,
				Label:      ShortName(in.Key),
				Minutes:    in.Value,
			})
		}
		nodes = append(nodes, node)
	}
	return nodes
}
