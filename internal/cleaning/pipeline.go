// Package cleaning produces cleaned copies of a dataset through a fixed
// sequence of stages: missing values, then duplicates, then outliers.
package cleaning

import (
	"fmt"
	"log"

	"dataprep/domain/core"
	"dataprep/domain/dataset"
	"dataprep/internal/profiling"
	"dataprep/internal/quality"
)

// Stage names
const (
	StageMissing    = "missing"
	StageDuplicates = "duplicates"
	StageOutliers   = "outliers"
)

// Stage is one named step of the pipeline
type Stage struct {
	Name  string
	Apply func(*dataset.Dataset) (*dataset.Dataset, error)
}

// StageReport records the row counts around one stage
type StageReport struct {
	Name    string `json:"name" yaml:"name"`
	RowsIn  int    `json:"rows_in" yaml:"rows_in"`
	RowsOut int    `json:"rows_out" yaml:"rows_out"`
}

// Result is the cleaned dataset with its row delta
type Result struct {
	Dataset     *dataset.Dataset
	RowsBefore  int
	RowsAfter   int
	RowsRemoved int
	Stages      []StageReport
}

// Stages returns the enabled stages in their fixed order
func (c Config) Stages() []Stage {
	stages := []Stage{{Name: StageMissing, Apply: func(ds *dataset.Dataset) (*dataset.Dataset, error) {
		return HandleMissing(ds, c.HandleMissing)
	}}}

	if c.RemoveDuplicates {
		stages = append(stages, Stage{Name: StageDuplicates, Apply: func(ds *dataset.Dataset) (*dataset.Dataset, error) {
			return RemoveDuplicates(ds), nil
		}})
	}

	if c.RemoveOutliers {
		stages = append(stages, Stage{Name: StageOutliers, Apply: func(ds *dataset.Dataset) (*dataset.Dataset, error) {
			return RemoveOutliers(ds, c.OutlierColumn, c.OutlierMethod)
		}})
	}

	return stages
}

// Clean runs the enabled stages on a copy of ds. The input is never modified.
func Clean(ds *dataset.Dataset, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	result := &Result{RowsBefore: ds.Len()}
	current := ds.Clone()
	for _, stage := range cfg.Stages() {
		rowsIn := current.Len()
		next, err := stage.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("%s stage: %w", stage.Name, err)
		}
		current = next
		result.Stages = append(result.Stages, StageReport{Name: stage.Name, RowsIn: rowsIn, RowsOut: current.Len()})
	}

	result.Dataset = current
	result.RowsAfter = current.Len()
	result.RowsRemoved = result.RowsBefore - result.RowsAfter

	log.Printf("[Cleaning] %d -> %d rows (%d removed, policy=%s, duplicates=%t, outliers=%t)",
		result.RowsBefore, result.RowsAfter, result.RowsRemoved, cfg.HandleMissing, cfg.RemoveDuplicates, cfg.RemoveOutliers)
	return result, nil
}

// HandleMissing applies a missing-value policy. Drop removes every row with a
// null; mean and median fill numeric columns from their own non-null values
// and leave other columns untouched.
func HandleMissing(ds *dataset.Dataset, policy Policy) (*dataset.Dataset, error) {
	switch policy {
	case PolicyDrop:
		return ds.Filter(func(pos int) bool { return !ds.HasNull(pos) }), nil
	case PolicyMean, PolicyMedian:
		return fillNumeric(ds, policy)
	default:
		return nil, core.NewInvalidPolicyError(string(policy))
	}
}

func fillNumeric(ds *dataset.Dataset, policy Policy) (*dataset.Dataset, error) {
	out := ds
	for _, col := range ds.Columns() {
		if col.Kind() != dataset.KindNumeric || col.NullCount() == 0 {
			continue
		}
		data, _ := col.Floats()
		if len(data) == 0 {
			continue
		}

		m, err := profiling.Describe(data)
		if err != nil {
			return nil, fmt.Errorf("column '%s': %w", col.Name, err)
		}
		fill := dataset.NewNumericValue("", m.Mean)
		if policy == PolicyMedian {
			fill = dataset.NewNumericValue("", m.Median)
		}

		filled := &dataset.Column{Name: col.Name, Values: make([]dataset.Value, len(col.Values))}
		for i, v := range col.Values {
			if v.IsMissing() {
				filled.Values[i] = fill
			} else {
				filled.Values[i] = v
			}
		}

		if out, err = out.WithColumn(filled); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// RemoveDuplicates keeps the first occurrence of every row, in order
func RemoveDuplicates(ds *dataset.Dataset) *dataset.Dataset {
	return ds.Filter(quality.FirstOccurrences(ds))
}

// RemoveOutliers drops rows whose value in column is an outlier of the
// current data. Rows with a null in column are kept.
func RemoveOutliers(ds *dataset.Dataset, column string, method quality.Method) (*dataset.Dataset, error) {
	col, ok := ds.Column(column)
	if !ok {
		return nil, core.NewColumnNotFoundError(column)
	}
	if col.Kind() != dataset.KindNumeric {
		return nil, core.NewNotNumericError(column)
	}

	data, _ := col.Floats()
	bounds, err := quality.ComputeBounds(method, data)
	if err != nil {
		return nil, err
	}

	return ds.Filter(func(pos int) bool {
		v := col.Values[pos]
		return !v.IsNumeric() || !bounds.IsOutlier(v.Num)
	}), nil
}
