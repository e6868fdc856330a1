package profiling

import (
	"fmt"

	"dataprep/domain/core"
	"dataprep/domain/dataset"
)

// ComputeStatistics summarises one column, or every column when column is
// empty. Nulls are dropped per column before any measure is taken.
func ComputeStatistics(ds *dataset.Dataset, column string) (*Result, error) {
	if column != "" {
		col, ok := ds.Column(column)
		if !ok {
			return nil, core.NewColumnNotFoundError(column)
		}
		summary, err := SummarizeColumn(col)
		if err != nil {
			return nil, err
		}
		return &Result{Columns: []ColumnStatistics{{Column: column, Summary: summary}}}, nil
	}

	result := &Result{Columns: make([]ColumnStatistics, 0, ds.Width())}
	for _, col := range ds.Columns() {
		summary, err := SummarizeColumn(col)
		if err != nil {
			return nil, err
		}
		result.Columns = append(result.Columns, ColumnStatistics{Column: col.Name, Summary: summary})
	}
	return result, nil
}

// SummarizeColumn resolves the column kind once and applies the matching
// measure set. Boolean and datetime columns get frequency statistics.
func SummarizeColumn(col *dataset.Column) (Summary, error) {
	switch kind := col.Kind(); kind {
	case dataset.KindNumeric:
		data, _ := col.Floats()
		if len(data) == 0 {
			return newNoNumericData(), nil
		}
		summary, err := SummarizeNumeric(data)
		if err != nil {
			return nil, fmt.Errorf("column '%s': %w", col.Name, err)
		}
		return summary, nil
	default:
		values, _ := col.NonNull()
		return summarizeCategorical(values, kind), nil
	}
}

// SummarizeNumeric computes the full numeric measure set of a non-empty sample
func SummarizeNumeric(data []float64) (*NumericSummary, error) {
	if len(data) == 0 {
		return nil, core.ErrEmptyData
	}

	m, err := Describe(data)
	if err != nil {
		return nil, err
	}
	skewness, kurtosis := Shape(data, m.Mean)

	return &NumericSummary{
		Type:               string(dataset.KindNumeric),
		Count:              m.Count,
		Mean:               m.Mean,
		Median:             m.Median,
		StdDev:             m.StdDev,
		Variance:           m.Variance,
		Min:                m.Min,
		Max:                m.Max,
		Q1:                 m.Q1,
		Q3:                 m.Q3,
		IQR:                m.IQR(),
		Skewness:           skewness,
		Kurtosis:           kurtosis,
		NormalityTest:      TestNormality(data, m.Mean, m.StdDev),
		NormalDistribution: NormalOverlay(m.Mean, m.StdDev, m.Min, m.Max),
	}, nil
}
