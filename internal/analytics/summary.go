package analytics

import (
	"loadboard/domain/schedule"
)

// Summary is everything the dashboard renders for one filter selection.
// Each section degrades to empty on its own when the view lacks data.
type Summary struct {
	Fallback bool     `json:"fallback"`
	KPIs     KPIs     `json:"kpis"`
	Coverage Coverage `json:"coverage"`

	Load     LoadInsight `json:"load"`
	Peak     *Slot       `json:"peak,omitempty"`
	PeakText string      `json:"peak_text"`
	TopHall  Ranked      `json:"top_hall"`

	Instructors     []Ranked        `json:"instructors"`
	Halls           []Ranked        `json:"halls"`
	Courses         []Ranked        `json:"courses"`
	FrequentCourses []Ranked        `json:"frequent_courses"`
	Faculties       []Ranked        `json:"faculties"`
	Hierarchy       []HierarchyNode `json:"hierarchy"`
	Heatmap         Heatmap         `json:"heatmap"`
}

// Summarize computes every aggregation over the view. Coverage always
// describes the full table. topN <= 0 uses DefaultTopN.
func Summarize(table *schedule.Table, view View, topN int) Summary {
	if topN <= 0 {
		topN = DefaultTopN
	}
	records := view.Records

	s := Summary{
		Fallback:        view.Fallback,
		KPIs:            ComputeKPIs(records),
		Coverage:        ComputeCoverage(table),
		Load:            InstructorLoad(records),
		PeakText:        NotAvailable,
		TopHall:         TopBy(records, schedule.ByHall),
		Instructors:     TopN(SumMinutesBy(records, schedule.ByInstructor), topN),
		Halls:           TopN(SumMinutesBy(records, schedule.ByHall), topN),
		Courses:         TopN(SumMinutesBy(records, schedule.ByCourseTitle), topN),
		FrequentCourses: TopN(CountBy(records, schedule.ByCourseTitle), topN),
		Faculties:       FacultyDistribution(records, topN),
		Hierarchy:       Hierarchy(records, HierarchyDepartments, HierarchyInstructors),
		Heatmap:         BuildHeatmap(records),
	}
	if peak, ok := PeakSlot(records); ok {
		s.Peak = &peak
		s.PeakText = peak.Text()
	}
	return s
}
