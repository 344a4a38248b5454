package excel

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jbclements/t-test/domain/core"
	"github.com/jbclements/t-test/internal"

	"github.com/xuri/excelize/v2"
)

// DefaultSheet is read when no sheet name is configured
const DefaultSheet = "Sheet1"

// DataReader reads sample columns from Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	sheet    string
	logger   *internal.Logger

	data *SheetData
}

// NewDataReader creates a reader for filePath; sheet is ignored for CSV files
func NewDataReader(filePath, sheet string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	if sheet == "" {
		sheet = DefaultSheet
	}
	return &DataReader{
		filePath: filePath,
		fileType: fileType,
		sheet:    sheet,
		logger:   internal.DefaultLogger.WithComponent("DataReader"),
	}
}

// ReadData reads the whole sheet; later calls reuse the first result
func (r *DataReader) ReadData() (*SheetData, error) {
	if r.data != nil {
		return r.data, nil
	}

	r.logger.Debug("reading %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	var (
		rows [][]string
		err  error
	)
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	default:
		rows, err = r.readExcelRows()
	}
	if err != nil {
		return nil, err
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("%s file must have at least a header row and one data row", strings.ToUpper(r.fileType))
	}

	r.data = r.processRows(rows)
	return r.data, nil
}

// Column parses every non-blank cell of the named column as a number
func (r *DataReader) Column(name string) ([]float64, error) {
	data, name, err := r.column(name)
	if err != nil {
		return nil, err
	}

	values := make([]float64, 0, len(data.Rows))
	for i, row := range data.Rows {
		cell := row[name]
		if cell == "" {
			continue
		}
		v, err := parseCell(name, i, cell)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}

	r.logger.Debug("column %q: %d values", name, len(values))
	return values, nil
}

// PairedColumns returns the rows where both columns hold a number, as two
// aligned slices
func (r *DataReader) PairedColumns(nameX, nameY string) ([]float64, []float64, error) {
	data, nameX, err := r.column(nameX)
	if err != nil {
		return nil, nil, err
	}
	_, nameY, err = r.column(nameY)
	if err != nil {
		return nil, nil, err
	}

	var xs, ys []float64
	for i, row := range data.Rows {
		cx, cy := row[nameX], row[nameY]
		if cx == "" || cy == "" {
			continue
		}
		x, err := parseCell(nameX, i, cx)
		if err != nil {
			return nil, nil, err
		}
		y, err := parseCell(nameY, i, cy)
		if err != nil {
			return nil, nil, err
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}

	r.logger.Debug("columns %q/%q: %d complete rows", nameX, nameY, len(xs))
	return xs, ys, nil
}

func (r *DataReader) column(name string) (*SheetData, string, error) {
	data, err := r.ReadData()
	if err != nil {
		return nil, "", err
	}

	name = strings.TrimSpace(name)
	if !data.HasColumn(name) {
		return nil, "", fmt.Errorf("%w: column %q not found in %s (have %s)",
			core.ErrInvalidArgument, name, r.filePath, strings.Join(data.Headers, ", "))
	}
	return data, name, nil
}

// parseCell parses the cell of data row i
func parseCell(column string, i int, cell string) (float64, error) {
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		// +2: header row, and spreadsheets count from 1
		return 0, fmt.Errorf("%w: column %q row %d: %q is not a finite number",
			core.ErrInvalidArgument, column, i+2, cell)
	}
	return v, nil
}

// readExcelRows reads the configured sheet
func (r *DataReader) readExcelRows() ([][]string, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(r.sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", r.sheet, err)
	}
	r.logger.Debug("%s read in %.2fms (%d rows)", r.sheet, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	return rows, nil
}

// readCSVRows reads a CSV file
func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	startTime := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	r.logger.Debug("CSV file read in %.2fms (%d rows)", float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	return rows, nil
}

// processRows converts raw string rows into SheetData
func (r *DataReader) processRows(rows [][]string) *SheetData {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(header)
	}

	dataRows := make([]RawRowData, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rowData := make(RawRowData, len(headers))
		for j, cell := range row {
			if j < len(headers) {
				rowData[headers[j]] = strings.TrimSpace(cell)
			}
		}
		dataRows = append(dataRows, rowData)
	}

	r.logger.Info("%s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(headers), len(dataRows))

	return &SheetData{Headers: headers, Rows: dataRows}
}
