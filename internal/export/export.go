// Package export writes the filtered view as downloadable CSV and XLSX snapshots.
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"loadboard/domain/schedule"
	"loadboard/internal/errors"

	"github.com/gocarina/gocsv"
)

// Download file names.
const (
	CSVFilename  = "filtered_schedule.csv"
	XLSXFilename = "filtered_schedule.xlsx"
)

// ExportRow is one cleaned record in the snapshot column order: the cleaned
// schema followed by the derived start_hour.
type ExportRow struct {
	CourseTitle string `csv:"course_title"`
	Code        string `csv:"code"`
	ClassDates  string `csv:"class_dates"`
	ClassTimes  string `csv:"class_times"`
	Days        string `csv:"days"`
	Hall        string `csv:"hall"`
	Instructor  string `csv:"instructor"`
	Minutes     int    `csv:"minutes"`
	StartTime   string `csv:"start_time"`
	EndTime     string `csv:"end_time"`
	Department  string `csv:"department"`
	StartHour   string `csv:"start_hour"`
}

// Columns returns the snapshot header in order.
func Columns() []string {
	return append(append([]string(nil), schedule.ExpectedColumns...), schedule.ColStartHour)
}

// FormatStartHour renders a start hour with the shortest exact decimal, or "" when absent.
func FormatStartHour(h *float64) string {
	if h == nil {
		return ""
	}
	return strconv.FormatFloat(*h, 'f', -1, 64)
}

// NewExportRow flattens a record.
func NewExportRow(r schedule.Record) *ExportRow {
	return &ExportRow{
		CourseTitle: r.CourseTitle,
		Code:        r.Code,
		ClassDates:  r.ClassDates,
		ClassTimes:  r.ClassTimes,
		Days:        r.Day.String(),
		Hall:        r.Hall,
		Instructor:  r.Instructor,
		Minutes:     r.Minutes,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Department:  r.Department,
		StartHour:   FormatStartHour(r.StartHour),
	}
}

// Values returns the row cells in Columns order.
func (e *ExportRow) Values() []interface{} {
	var startHour interface{} = ""
	if e.StartHour != "" {
		if h, err := strconv.ParseFloat(e.StartHour, 64); err == nil {
			startHour = h
		}
	}
	return []interface{}{
		e.CourseTitle, e.Code, e.ClassDates, e.ClassTimes, e.Days, e.Hall,
		e.Instructor, e.Minutes, e.StartTime, e.EndTime, e.Department, startHour,
	}
}

// Record converts an exported row back into a cleaned record.
func (e *ExportRow) Record() (schedule.Record, error) {
	day, ok := schedule.ParseDay(e.Days)
	if !ok {
		return schedule.Record{}, errors.ValidationError(fmt.Sprintf("invalid day %q", e.Days))
	}
	var startHour *float64
	if s := strings.TrimSpace(e.StartHour); s != "" {
		h, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return schedule.Record{}, errors.ValidationError(fmt.Sprintf("invalid start_hour %q", e.StartHour))
		}
		startHour = &h
	}
	return schedule.Record{
		CourseTitle: e.CourseTitle,
		Code:        e.Code,
		ClassDates:  e.ClassDates,
		ClassTimes:  e.ClassTimes,
		Day:         day,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		StartHour:   startHour,
		Minutes:     e.Minutes,
		Hall:        e.Hall,
		Instructor:  e.Instructor,
		Department:  e.Department,
	}, nil
}

func toRows(records []schedule.Record) []*ExportRow {
	rows := make([]*ExportRow, len(records))
	for i, r := range records {
		rows[i] = NewExportRow(r)
	}
	return rows
}

// WriteCSV writes a UTF-8, comma-delimited snapshot with a header row.
func WriteCSV(w io.Writer, records []schedule.Record) error {
	if err := gocsv.Marshal(toRows(records), w); err != nil {
		return errors.Wrap(err, "failed to write CSV snapshot")
	}
	return nil
}

// ReadCSV parses a snapshot written by WriteCSV.
func ReadCSV(r io.Reader) ([]schedule.Record, error) {
	var rows []*ExportRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, errors.WithCode(errors.CodeValidationError, err)
	}
	records := make([]schedule.Record, 0, len(rows))
	for i, row := range rows {
		rec, err := row.Record()
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", i+2)
		}
		records = append(records, rec)
	}
	return records, nil
}
