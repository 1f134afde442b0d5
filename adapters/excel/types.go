package excel

import "loadboard/domain/core"

// RawRow is one spreadsheet row keyed by its header text.
type RawRow map[string]string

// RawTable is the untyped content of the first (or configured) sheet.
type RawTable struct {
	Source  string   // Path or upload name the data came from
	Headers []string // Column headers, trimmed but otherwise as written
	Rows    []RawRow // Data rows
}

// Get returns the cell for column, or "" when the row has no such column.
func (r RawRow) Get(column string) string {
	return r[column]
}

// ErrNoData is matched by every error ReadData returns.
var ErrNoData = core.ErrNoData
