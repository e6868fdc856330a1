package quality

import (
	"math"
	"strings"

	"dataprep/domain/core"
	"dataprep/domain/dataset"
	"dataprep/internal/profiling"
)

// Method selects how outliers are recognised
type Method string

const (
	MethodZScore Method = "zscore"
	MethodIQR    Method = "iqr"
)

const (
	// ZScoreThreshold is the |z| above which a value is an outlier
	ZScoreThreshold = 3.0
	// IQRMultiplier scales the interquartile range into fences
	IQRMultiplier = 1.5
)

// ParseMethod validates a method name
func ParseMethod(raw string) (Method, error) {
	switch m := Method(strings.TrimSpace(raw)); m {
	case MethodZScore, MethodIQR:
		return m, nil
	default:
		return "", core.NewInvalidMethodError(raw)
	}
}

// Label is the display name used in reports
func (m Method) Label() string {
	if m == MethodIQR {
		return "IQR"
	}
	return "Z-Score"
}

// Bounds decides which values of a sample are outliers. Detection and
// cleaning both go through it so they agree.
type Bounds struct {
	Method Method
	Mean   float64
	StdDev float64
	Lower  float64
	Upper  float64
}

// ComputeBounds fits the outlier rule of method to data
func ComputeBounds(method Method, data []float64) (Bounds, error) {
	b := Bounds{Method: method}
	switch method {
	case MethodZScore:
		if len(data) > 0 {
			m, err := profiling.Describe(data)
			if err != nil {
				return b, err
			}
			b.Mean, b.StdDev = m.Mean, m.StdDev
		}
		b.Lower = b.Mean - ZScoreThreshold*b.StdDev
		b.Upper = b.Mean + ZScoreThreshold*b.StdDev
	case MethodIQR:
		q1, q3 := profiling.Quartiles(data)
		iqr := q3 - q1
		b.Lower = q1 - IQRMultiplier*iqr
		b.Upper = q3 + IQRMultiplier*iqr
	default:
		return b, core.NewInvalidMethodError(string(method))
	}
	return b, nil
}

// IsOutlier reports whether x falls outside the fitted rule. A sample
// without spread has no z-score outliers.
func (b Bounds) IsOutlier(x float64) bool {
	if b.Method == MethodZScore {
		if b.StdDev == 0 {
			return false
		}
		return math.Abs((x-b.Mean)/b.StdDev) > ZScoreThreshold
	}
	return x < b.Lower || x > b.Upper
}

// OutlierReport describes the outliers of one column
type OutlierReport struct {
	Method            string    `json:"method" yaml:"method"`
	Threshold         *float64  `json:"threshold,omitempty" yaml:"threshold,omitempty"`
	LowerBound        *float64  `json:"lower_bound,omitempty" yaml:"lower_bound,omitempty"`
	UpperBound        *float64  `json:"upper_bound,omitempty" yaml:"upper_bound,omitempty"`
	TotalOutliers     int       `json:"total_outliers" yaml:"total_outliers"`
	OutlierPercentage float64   `json:"outlier_percentage" yaml:"outlier_percentage"`
	OutlierIndices    []int     `json:"outlier_indices" yaml:"outlier_indices"`
	OutlierValues     []float64 `json:"outlier_values" yaml:"outlier_values"`
}

// DetectOutliers flags the non-null values of a numeric column
func DetectOutliers(ds *dataset.Dataset, column string, method Method) (*OutlierReport, error) {
	col, ok := ds.Column(column)
	if !ok {
		return nil, core.NewColumnNotFoundError(column)
	}
	if col.Kind() != dataset.KindNumeric {
		return nil, core.NewNotNumericError(column)
	}

	data, positions := col.Floats()
	bounds, err := ComputeBounds(method, data)
	if err != nil {
		return nil, err
	}

	report := &OutlierReport{
		Method:         method.Label(),
		OutlierIndices: []int{},
		OutlierValues:  []float64{},
	}
	if method == MethodIQR {
		lower, upper := bounds.Lower, bounds.Upper
		report.LowerBound = &lower
		report.UpperBound = &upper
	} else {
		threshold := ZScoreThreshold
		report.Threshold = &threshold
	}

	for i, x := range data {
		if !bounds.IsOutlier(x) {
			continue
		}
		report.TotalOutliers++
		if len(report.OutlierIndices) < MaxReportedIndices {
			report.OutlierIndices = append(report.OutlierIndices, ds.RowID(positions[i]))
		}
		if len(report.OutlierValues) < MaxReportedValues {
			report.OutlierValues = append(report.OutlierValues, x)
		}
	}
	report.OutlierPercentage = percentage(report.TotalOutliers, len(data))

	return report, nil
}
