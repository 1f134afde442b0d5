package export

import (
	"io"

	"loadboard/domain/schedule"
	"loadboard/internal/errors"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Schedule"

// WriteXLSX writes the snapshot as a single-sheet workbook with a frozen,
// bold header row.
func WriteXLSX(w io.Writer, records []schedule.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return errors.Wrap(err, "failed to name sheet")
	}

	header := make([]interface{}, 0, len(Columns()))
	for _, c := range Columns() {
		header = append(header, c)
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return errors.Wrap(err, "failed to write header")
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		lastCol, _ := excelize.ColumnNumberToName(len(header))
		_ = f.SetCellStyle(sheetName, "A1", lastCol+"1", style)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrap(err, "failed to address row")
		}
		values := NewExportRow(r).Values()
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return errors.Wrapf(err, "failed to write row %d", i+2)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 36)
	_ = f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "failed to write XLSX snapshot")
	}
	return nil
}
