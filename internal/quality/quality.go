// Package quality detects missing values, duplicate rows and outliers.
package quality

const (
	// MaxReportedIndices caps the row indices listed in a report
	MaxReportedIndices = 100
	// MaxReportedValues caps the sample outlier values listed in a report
	MaxReportedValues = 10
)

// percentage returns part/whole*100, or 0 for an empty whole
func percentage(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
