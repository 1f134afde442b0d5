package excel

// ReaderConfig controls how a spreadsheet is read.
type ReaderConfig struct {
	// SheetName selects the worksheet; empty means the first sheet in the workbook.
	SheetName string `json:"sheet_name" yaml:"sheet_name"`
	// Delimiter for CSV input. Zero sniffs between ',' and ';' from the header line.
	Delimiter rune `json:"delimiter" yaml:"delimiter"`
}

// DefaultReaderConfig reads the first sheet and sniffs CSV delimiters.
func DefaultReaderConfig() ReaderConfig {
	return ReaderConfig{}
}
