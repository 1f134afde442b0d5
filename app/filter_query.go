package app

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"loadboard/domain/schedule"
	"loadboard/internal/analytics"
	"loadboard/internal/errors"
)

// Filter query parameter names shared by the UI and API
const (
	ParamInstructor = "instructor"
	ParamDepartment = "department"
	ParamHall       = "hall"
	ParamDay        = "day"
	ParamHourLo     = "hour_lo"
	ParamHourHi     = "hour_hi"
)

// ParseFilter builds a filter from query parameters. Each dimension is
// repeatable and blank values are ignored. When only one hour bound is given
// the other defaults to the edge of the slider domain.
func ParseFilter(q url.Values) (analytics.Filter, error) {
	f := analytics.Filter{
		Instructors: analytics.NewOptionalSet(values(q, ParamInstructor)...),
		Departments: analytics.NewOptionalSet(values(q, ParamDepartment)...),
		Halls:       analytics.NewOptionalSet(values(q, ParamHall)...),
	}

	var days []schedule.Day
	for _, raw := range values(q, ParamDay) {
		d, ok := schedule.ParseDay(raw)
		if !ok {
			return analytics.Filter{}, errors.InvalidInput(fmt.Sprintf("invalid day %q", raw))
		}
		days = append(days, d)
	}
	f.Days = analytics.NewOptionalSet(days...)

	lo, hasLo, err := hourParam(q, ParamHourLo, analytics.HourMin)
	if err != nil {
		return analytics.Filter{}, err
	}
	hi, hasHi, err := hourParam(q, ParamHourHi, analytics.HourMax)
	if err != nil {
		return analytics.Filter{}, err
	}
	if hasLo || hasHi {
		r, err := analytics.NewHourRange(lo, hi)
		if err != nil {
			return analytics.Filter{}, err
		}
		f.Hours = r
	}
	return f, nil
}

// EncodeFilter is the inverse of ParseFilter, used to carry a selection into
// chart and download links
func EncodeFilter(f analytics.Filter) url.Values {
	q := url.Values{}
	for _, v := range f.Instructors.Values() {
		q.Add(ParamInstructor, v)
	}
	for _, v := range f.Departments.Values() {
		q.Add(ParamDepartment, v)
	}
	for _, v := range f.Halls.Values() {
		q.Add(ParamHall, v)
	}
	for _, d := range f.Days.Values() {
		q.Add(ParamDay, d.String())
	}
	if f.Hours != nil {
		q.Set(ParamHourLo, strconv.FormatFloat(f.Hours.Lo, 'f', -1, 64))
		q.Set(ParamHourHi, strconv.FormatFloat(f.Hours.Hi, 'f', -1, 64))
	}
	return q
}

func values(q url.Values, key string) []string {
	var out []string
	for _, v := range q[key] {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func hourParam(q url.Values, key string, fallback float64) (float64, bool, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return fallback, false, nil
	}
	h, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, errors.InvalidInput(fmt.Sprintf("%s must be a number, got %q", key, raw))
	}
	return h, true, nil
}
