// Package normalizer turns raw spreadsheet rows into the cleaned schedule table.
package normalizer

import (
	"strings"

	"loadboard/adapters/excel"
	"loadboard/domain/schedule"
	"loadboard/internal"
)

// Clean is a pure function of the raw table. Malformed cells degrade to
// sentinels ("Unknown", 0, nil start hour); only rows whose day code does not
// normalize are removed. A nil table yields an empty one.
func Clean(raw *excel.RawTable) *schedule.Table {
	table := &schedule.Table{Records: []schedule.Record{}}
	if raw == nil {
		return table
	}
	table.Source = raw.Source
	table.MissingColumns = MissingColumns(raw.Headers)

	columns := resolveColumns(raw.Headers)
	for _, row := range raw.Rows {
		cell := func(column string) string {
			if header, ok := columns[column]; ok {
				return row.Get(header)
			}
			return ""
		}

		day, ok := schedule.ParseDay(cell(schedule.ColDays))
		if !ok {
			table.Dropped++
			continue
		}

		code := strings.TrimSpace(cell(schedule.ColCode))
		table.Records = append(table.Records, schedule.Record{
			CourseTitle: CleanText(cell(schedule.ColCourseTitle)),
			Code:        code,
			ClassDates:  cell(schedule.ColClassDates),
			ClassTimes:  cell(schedule.ColClassTimes),
			Day:         day,
			StartTime:   cell(schedule.ColStartTime),
			EndTime:     cell(schedule.ColEndTime),
			StartHour:   ParseStartHour(cell(schedule.ColStartTime)),
			Minutes:     ParseMinutes(cell(schedule.ColMinutes)),
			Hall:        CleanText(cell(schedule.ColHall)),
			Instructor:  CleanText(cell(schedule.ColInstructor)),
			Department:  schedule.DepartmentFor(code),
		})
	}

	if table.Dropped > 0 {
		internal.DefaultLogger.Debug("[Normalizer] %s: dropped %d rows with unrecognized day codes", raw.Source, table.Dropped)
	}
	internal.DefaultLogger.Info("[Normalizer] %s: %d cleaned records", raw.Source, len(table.Records))
	return table
}

// resolveColumns maps each normalized column name to the first raw header
// that normalizes to it. Expected columns absent from the sheet are simply
// missing from the map and read as "".
func resolveColumns(headers []string) map[string]string {
	columns := make(map[string]string, len(headers))
	for _, header := range headers {
		name := NormalizeColumnName(header)
		if name == "" {
			continue
		}
		if _, seen := columns[name]; !seen {
			columns[name] = header
		}
	}
	return columns
}

// MissingColumns lists expected columns the sheet does not provide.
func MissingColumns(headers []string) []string {
	columns := resolveColumns(headers)
	var missing []string
	for _, column := range schedule.ExpectedColumns {
		if _, ok := columns[column]; !ok {
			missing = append(missing, column)
		}
	}
	return missing
}
