package excel

import (
	"encoding/csv"
	"fmt"
	"io"

	"dataprep/domain/dataset"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Sheet1"

// WriteCSV writes the dataset as CSV with a header row. Nulls are empty cells.
func WriteCSV(ds *dataset.Dataset, w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(ds.Names()); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	record := make([]string, ds.Width())
	for pos := 0; pos < ds.Len(); pos++ {
		for j, v := range ds.Row(pos) {
			record[j] = v.String()
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", pos, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteXLSX writes the dataset to a single-sheet workbook, keeping numbers
// and booleans as native cell types
func WriteXLSX(ds *dataset.Dataset, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, ds.Width())
	for j, name := range ds.Names() {
		header[j] = name
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write Excel header: %w", err)
	}

	for pos := 0; pos < ds.Len(); pos++ {
		cells := make([]interface{}, ds.Width())
		for j, v := range ds.Row(pos) {
			switch v.Type {
			case dataset.ValueTypeMissing:
				cells[j] = nil
			case dataset.ValueTypeNumeric:
				cells[j] = v.Num
			case dataset.ValueTypeBoolean:
				cells[j] = v.Bool
			default:
				cells[j] = v.Raw
			}
		}

		cell, err := excelize.CoordinatesToCellName(1, pos+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(exportSheet, cell, &cells); err != nil {
			return fmt.Errorf("failed to write Excel row %d: %w", pos, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
