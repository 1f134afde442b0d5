package analytics

import (
	"slices"

	"loadboard/domain/schedule"
)

// Options are the choices offered by the filter controls.
type Options struct {
	Instructors []string       `json:"instructors"`
	Departments []string       `json:"departments"`
	Halls       []string       `json:"halls"`
	Days        []schedule.Day `json:"days"`
	HourMin     float64        `json:"hour_min"`
	HourMax     float64        `json:"hour_max"`
	HourStep    float64        `json:"hour_step"`
}

// FilterOptions lists the sorted distinct values of each dimension in the
// full table. Placeholder buckets are not offered as choices.
func FilterOptions(table *schedule.Table) Options {
	var records []schedule.Record
	if table != nil {
		records = table.Records
	}
	return Options{
		Instructors: distinctSorted(records, schedule.ByInstructor, schedule.Unknown),
		Departments: distinctSorted(records, schedule.ByDepartment, schedule.Unknown, schedule.Other),
		Halls:       distinctSorted(records, schedule.ByHall, schedule.Unknown),
		Days:        slices.Clone(schedule.Days),
		HourMin:     HourMin,
		HourMax:     HourMax,
		HourStep:    HourStep,
	}
}

func distinctSorted(records []schedule.Record, key schedule.Key, excluded ...string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, r := range without(records, key, excluded...) {
		k := key(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
