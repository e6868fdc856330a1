package profiling

import (
	"dataprep/domain/dataset"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Summary is the per-column statistics variant. The concrete type is chosen
// once per column from its derived kind.
type Summary interface {
	SummaryType() string
}

// NumericSummary holds descriptive and distributional statistics of a numeric column
type NumericSummary struct {
	Type               string              `json:"type" yaml:"type"`
	Count              int                 `json:"count" yaml:"count"`
	Mean               float64             `json:"mean" yaml:"mean"`
	Median             float64             `json:"median" yaml:"median"`
	StdDev             float64             `json:"std_dev" yaml:"std_dev"`
	Variance           float64             `json:"variance" yaml:"variance"`
	Min                float64             `json:"min" yaml:"min"`
	Max                float64             `json:"max" yaml:"max"`
	Q1                 float64             `json:"q1" yaml:"q1"`
	Q3                 float64             `json:"q3" yaml:"q3"`
	IQR                float64             `json:"iqr" yaml:"iqr"`
	Skewness           float64             `json:"skewness" yaml:"skewness"`
	Kurtosis           float64             `json:"kurtosis" yaml:"kurtosis"`
	NormalityTest      *NormalityTest      `json:"normality_test,omitempty" yaml:"normality_test,omitempty"`
	NormalDistribution *NormalDistribution `json:"normal_distribution" yaml:"normal_distribution"`
}

func (s *NumericSummary) SummaryType() string { return string(dataset.KindNumeric) }

// NormalityTest is the outcome of a Shapiro-Wilk or Kolmogorov-Smirnov test
type NormalityTest struct {
	Test      string  `json:"test" yaml:"test"`
	Statistic float64 `json:"statistic" yaml:"statistic"`
	PValue    float64 `json:"p_value" yaml:"p_value"`
	IsNormal  bool    `json:"is_normal" yaml:"is_normal"`
}

// NormalDistribution is the fitted normal overlay used by charts
type NormalDistribution struct {
	Mean      float64 `json:"mean" yaml:"mean"`
	StdDev    float64 `json:"std_dev" yaml:"std_dev"`
	PDFValues *Curve  `json:"pdf_values,omitempty" yaml:"pdf_values,omitempty"`
	CDFValues *Curve  `json:"cdf_values,omitempty" yaml:"cdf_values,omitempty"`
}

// Curve is a sampled function
type Curve struct {
	X []float64 `json:"x" yaml:"x"`
	Y []float64 `json:"y" yaml:"y"`
}

// CategoricalSummary holds frequency statistics of a non-numeric column
type CategoricalSummary struct {
	Type          string      `json:"type" yaml:"type"`
	Count         int         `json:"count" yaml:"count"`
	UniqueValues  int         `json:"unique_values" yaml:"unique_values"`
	MostCommon    interface{} `json:"most_common" yaml:"most_common"`
	ValueCounts   ValueCounts `json:"value_counts" yaml:"value_counts"`
	ModeFrequency int         `json:"mode_frequency" yaml:"mode_frequency"`
}

func (s *CategoricalSummary) SummaryType() string { return string(dataset.KindCategorical) }

// NoNumericData marks a numeric column without any non-null value
type NoNumericData struct {
	Error string `json:"error" yaml:"error"`
}

func (s *NoNumericData) SummaryType() string { return "empty" }

func newNoNumericData() *NoNumericData {
	return &NoNumericData{Error: "No numeric data available"}
}

// ValueCount is one row of a frequency table
type ValueCount struct {
	Value string
	Count int
}

// ValueCounts is a frequency table that marshals to an object in rank order
type ValueCounts []ValueCount

func (vc ValueCounts) object() *orderedmap.OrderedMap[string, int] {
	m := orderedmap.New[string, int](len(vc))
	for _, c := range vc {
		m.Set(c.Value, c.Count)
	}
	return m
}

func (vc ValueCounts) MarshalJSON() ([]byte, error) { return vc.object().MarshalJSON() }

func (vc ValueCounts) MarshalYAML() (interface{}, error) { return vc.object().MarshalYAML() }

// ColumnStatistics pairs a column with its summary
type ColumnStatistics struct {
	Column  string
	Summary Summary
}

// Result maps column names to summaries, keeping dataset column order
type Result struct {
	Columns []ColumnStatistics
}

// Get returns the summary of a column
func (r *Result) Get(column string) (Summary, bool) {
	for _, c := range r.Columns {
		if c.Column == column {
			return c.Summary, true
		}
	}
	return nil, false
}

func (r *Result) object() *orderedmap.OrderedMap[string, Summary] {
	m := orderedmap.New[string, Summary](len(r.Columns))
	for _, c := range r.Columns {
		m.Set(c.Column, c.Summary)
	}
	return m
}

func (r *Result) MarshalJSON() ([]byte, error) { return r.object().MarshalJSON() }

func (r *Result) MarshalYAML() (interface{}, error) { return r.object().MarshalYAML() }

// ColumnInfo describes a column for upload previews
type ColumnInfo struct {
	Type         string        `json:"type" yaml:"type"`
	Dtype        string        `json:"dtype" yaml:"dtype"`
	NonNullCount int           `json:"non_null_count" yaml:"non_null_count"`
	NullCount    int           `json:"null_count" yaml:"null_count"`
	UniqueCount  int           `json:"unique_count" yaml:"unique_count"`
	SampleValues []interface{} `json:"sample_values" yaml:"sample_values"`
}

// ColumnInfos is the ordered column description of a dataset
type ColumnInfos struct {
	Names []string
	Info  map[string]ColumnInfo
}

func (ci ColumnInfos) object() *orderedmap.OrderedMap[string, ColumnInfo] {
	m := orderedmap.New[string, ColumnInfo](len(ci.Names))
	for _, name := range ci.Names {
		m.Set(name, ci.Info[name])
	}
	return m
}

func (ci ColumnInfos) MarshalJSON() ([]byte, error) { return ci.object().MarshalJSON() }

func (ci ColumnInfos) MarshalYAML() (interface{}, error) { return ci.object().MarshalYAML() }
