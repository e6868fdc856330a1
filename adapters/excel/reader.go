package excel

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dataprep/adapters/datareadiness/coercer"
	"dataprep/domain/dataset"

	"github.com/xuri/excelize/v2"
)

// DataReader decodes CSV and Excel uploads into datasets
type DataReader struct {
	config  ReaderConfig
	coercer *coercer.TypeCoercer
}

// NewDataReader creates a reader that handles both Excel and CSV content
func NewDataReader(config ReaderConfig) *DataReader {
	return &DataReader{
		config:  config,
		coercer: coercer.NewTypeCoercer(config.CoercionConfig),
	}
}

// ReadFile reads a dataset from disk, picking the format from the extension
func (r *DataReader) ReadFile(path string) (*dataset.Dataset, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return r.ReadBytes(filepath.Base(path), content)
}

// ReadBytes decodes an uploaded file. The filename only selects the format.
func (r *DataReader) ReadBytes(filename string, content []byte) (*dataset.Dataset, error) {
	fileType, err := DetectFileType(filename)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	readStart := time.Now()
	switch fileType {
	case FileTypeCSV:
		rows, err = r.readCSVRows(content)
	case FileTypeXLSX:
		rows, err = r.readExcelRows(content)
	default:
		return nil, ErrUnsupportedFormat
	}
	if err != nil {
		return nil, err
	}
	log.Printf("[DataReader] %s read in %.2fms (%d rows incl. header)",
		strings.ToUpper(string(fileType)), float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	return r.processRows(rows)
}

// readExcelRows reads the configured sheet, or the first one
func (r *DataReader) readExcelRows(content []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open Excel file: %v", ErrUnreadable, err)
	}
	defer f.Close()

	sheet := r.config.SheetName
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", ErrUnreadable)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read sheet %s: %v", ErrUnreadable, sheet, err)
	}

	// Blank spreadsheet rows carry no cells at all
	nonBlank := rows[:0]
	for _, row := range rows {
		if !isBlankRow(row) {
			nonBlank = append(nonBlank, row)
		}
	}
	return nonBlank, nil
}

// readCSVRows reads CSV content; ragged rows are allowed and padded later
func (r *DataReader) readCSVRows(content []byte) ([][]string, error) {
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read CSV file: %v", ErrUnreadable, err)
	}
	return rows, nil
}

// processRows converts raw string rows into a typed dataset
func (r *DataReader) processRows(rows [][]string) (*dataset.Dataset, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no columns to parse from file", ErrUnreadable)
	}

	headers := normalizeHeaders(rows[0])

	dataRows := make([][]dataset.Value, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		raw := rows[i]
		if len(raw) > len(headers) {
			// Trailing empty cells are common in exported sheets
			extra := raw[len(headers):]
			if !isBlankRow(extra) {
				return nil, fmt.Errorf("%w: line %d has %d fields, expected %d", ErrUnreadable, i+1, len(raw), len(headers))
			}
			raw = raw[:len(headers)]
		}
		dataRows = append(dataRows, r.coercer.CoerceRow(raw))
	}

	ds, err := dataset.New(headers, dataRows)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	log.Printf("[DataReader] dataset decoded (%d columns, %d rows)", ds.Width(), ds.Len())
	return ds, nil
}

// normalizeHeaders trims header cells, names empty ones after their position
// and suffixes repeated names so every column is addressable. A suffix that
// collides with an earlier header is bumped until it is free.
func normalizeHeaders(headerRow []string) []string {
	headers := make([]string, len(headerRow))
	counts := make(map[string]int, len(headerRow))
	for i, header := range headerRow {
		name := strings.TrimSpace(header)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if counts[name] > 0 {
			base := name
			for {
				candidate := fmt.Sprintf("%s.%d", base, counts[base])
				counts[base]++
				if counts[candidate] == 0 {
					name = candidate
					break
				}
			}
		}
		counts[name]++
		headers[i] = name
	}
	return headers
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
