package ports

import (
	"loadboard/adapters/excel"
)

// ScheduleSource yields the raw rows of one schedule spreadsheet
type ScheduleSource interface {
	// ReadData returns every non-blank row of the selected sheet.
	// Failures are NO_DATA errors.
	ReadData() (*excel.RawTable, error)
	// Source names the path or upload the rows come from
	Source() string
}

var _ ScheduleSource = (*excel.DataReader)(nil)
