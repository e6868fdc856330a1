package quality

import (
	"dataprep/domain/dataset"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ColumnMissing is the null count of one column
type ColumnMissing struct {
	Count      int     `json:"count" yaml:"count"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
}

// MissingReport summarises null cells. Only columns with nulls are listed.
type MissingReport struct {
	TotalMissing       int                                           `json:"total_missing" yaml:"total_missing"`
	TotalCells         int                                           `json:"total_cells" yaml:"total_cells"`
	ColumnsWithMissing *orderedmap.OrderedMap[string, ColumnMissing] `json:"columns_with_missing" yaml:"columns_with_missing"`
}

// Column returns the entry of a column with nulls
func (r *MissingReport) Column(name string) (ColumnMissing, bool) {
	return r.ColumnsWithMissing.Get(name)
}

// DetectMissing counts null cells per column
func DetectMissing(ds *dataset.Dataset) *MissingReport {
	report := &MissingReport{
		TotalCells:         ds.Len() * ds.Width(),
		ColumnsWithMissing: orderedmap.New[string, ColumnMissing](),
	}

	for _, col := range ds.Columns() {
		nulls := col.NullCount()
		if nulls == 0 {
			continue
		}
		report.TotalMissing += nulls
		report.ColumnsWithMissing.Set(col.Name, ColumnMissing{
			Count:      nulls,
			Percentage: percentage(nulls, ds.Len()),
		})
	}

	return report
}
