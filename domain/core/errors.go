package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Source errors
	ErrNoData       = errors.New("no schedule data")
	ErrSourceAbsent = fmt.Errorf("%w: source not found", ErrNoData)
	ErrNoHeader     = fmt.Errorf("%w: sheet has no header row", ErrNoData)
	ErrNoSheets     = fmt.Errorf("%w: workbook has no sheets", ErrNoData)

	// Not found errors
	ErrNotFound      = errors.New("resource not found")
	ErrChartNotFound = fmt.Errorf("%w: chart", ErrNotFound)

	// Rendering errors
	ErrEmptySeries = errors.New("nothing to plot")
)

// NewSourceAbsentError names the missing path
func NewSourceAbsentError(path string) error {
	return fmt.Errorf("%w: %s", ErrSourceAbsent, path)
}
