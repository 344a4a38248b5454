package excel

// RawRowData represents a row of raw cell text keyed by column header
type RawRowData map[string]string

// SheetData represents a header row plus the data rows beneath it
type SheetData struct {
	Headers []string     // Column headers
	Rows    []RawRowData // Data rows
}

// HasColumn reports whether the header row names the column
func (d *SheetData) HasColumn(name string) bool {
	for _, h := range d.Headers {
		if h == name {
			return true
		}
	}
	return false
}
