package excel

import (
	"bytes"
	stderrors "errors"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"loadboard/domain/core"
	"loadboard/internal/errors"

	"github.com/xuri/excelize/v2"
)

const (
	fileTypeXLSX = "xlsx"
	fileTypeCSV  = "csv"
)

// DataReader reads a schedule spreadsheet from a file path or an uploaded blob.
type DataReader struct {
	source   string
	fileType string
	blob     []byte // nil when reading from source as a path
	config   ReaderConfig
}

// NewDataReader creates a reader for an Excel or CSV file on disk
func NewDataReader(filePath string, config ReaderConfig) *DataReader {
	return &DataReader{
		source:   filePath,
		fileType: fileTypeFor(filePath),
		config:   config,
	}
}

// NewBlobReader creates a reader for uploaded content. name is only used to pick the format.
func NewBlobReader(name string, data []byte, config ReaderConfig) *DataReader {
	return &DataReader{
		source:   name,
		fileType: fileTypeFor(name),
		blob:     data,
		config:   config,
	}
}

func fileTypeFor(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return fileTypeCSV
	case ".xlsx", ".xlsm":
		return fileTypeXLSX
	default:
		return ""
	}
}

// Source returns the path or upload name this reader was built for
func (r *DataReader) Source() string {
	return r.source
}

// ReadData reads the whole sheet. Any failure to locate or parse the source is
// reported as a NO_DATA error so callers can ask for another file.
func (r *DataReader) ReadData() (*RawTable, error) {
	log.Printf("[DataReader] Starting to read %s source: %s", r.fileType, r.source)

	if r.fileType == "" {
		return nil, noData(r.source, errors.UnsupportedFormat(r.source))
	}

	var (
		rows [][]string
		err  error
	)
	switch r.fileType {
	case fileTypeCSV:
		rows, err = r.readCSVRows()
	case fileTypeXLSX:
		rows, err = r.readExcelRows()
	}
	if err != nil {
		log.Printf("[DataReader] FAILED - %s: %v", r.source, err)
		return nil, noData(r.source, err)
	}
	if len(rows) == 0 {
		return nil, noData(r.source, core.ErrNoHeader)
	}

	return r.processRows(rows), nil
}

// noData wraps a read failure so that both errors.Is(err, ErrNoData) and the
// NO_DATA code hold.
func noData(source string, cause error) error {
	if !stderrors.Is(cause, ErrNoData) {
		cause = fmt.Errorf("%w: %w", ErrNoData, cause)
	}
	return errors.NoData(source, cause)
}

func (r *DataReader) open() (io.ReadCloser, error) {
	if r.blob != nil {
		return io.NopCloser(bytes.NewReader(r.blob)), nil
	}
	if _, err := os.Stat(r.source); os.IsNotExist(err) {
		return nil, core.NewSourceAbsentError(r.source)
	}
	return os.Open(r.source)
}

// readExcelRows reads the configured sheet, or the first one
func (r *DataReader) readExcelRows() ([][]string, error) {
	startTime := time.Now()
	in, err := r.open()
	if err != nil {
		return nil, err
	}
	defer in.Close()

	f, err := excelize.OpenReader(in)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := r.config.SheetName
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, core.ErrNoSheets
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", sheet, err)
	}
	log.Printf("[DataReader] %s read in %.2fms (%d rows)", sheet, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))
	return rows, nil
}

// readCSVRows reads CSV input, tolerating ragged rows and a UTF-8 BOM
func (r *DataReader) readCSVRows() ([][]string, error) {
	in, err := r.open()
	if err != nil {
		return nil, err
	}
	defer in.Close()

	content, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = r.config.Delimiter
	if reader.Comma == 0 {
		reader.Comma = sniffDelimiter(content)
	}
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	log.Printf("[DataReader] CSV read (%d rows)", len(rows))
	return rows, nil
}

// sniffDelimiter picks ';' when the header line has more semicolons than commas
func sniffDelimiter(content []byte) rune {
	header := content
	if i := bytes.IndexByte(content, '\n'); i >= 0 {
		header = content[:i]
	}
	if bytes.Count(header, []byte(";")) > bytes.Count(header, []byte(",")) {
		return ';'
	}
	return ','
}

// processRows converts raw string rows into a RawTable. Cells beyond the header
// width are ignored; short rows simply lack the trailing columns.
func (r *DataReader) processRows(rows [][]string) *RawTable {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(header)
	}

	dataRows := make([]RawRow, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		rowData := make(RawRow, len(headers))
		for j, cell := range row {
			if j < len(headers) && headers[j] != "" {
				if _, seen := rowData[headers[j]]; !seen {
					rowData[headers[j]] = cell
				}
			}
		}
		dataRows = append(dataRows, rowData)
	}

	log.Printf("[DataReader] %s processed (%d columns, %d rows)", strings.ToUpper(r.fileType), len(headers), len(dataRows))

	return &RawTable{
		Source:  r.source,
		Headers: headers,
		Rows:    dataRows,
	}
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
