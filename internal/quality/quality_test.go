package quality

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"dataprep/adapters/excel"
	"dataprep/domain/core"
	"dataprep/domain/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func loadCSV(t *testing.T, content string) *dataset.Dataset {
	t.Helper()
	reader := excel.NewDataReader(excel.DefaultReaderConfig())
	ds, err := reader.ReadBytes("fixture.csv", []byte(content))
	require.NoError(t, err)
	return ds
}

func missingColumns(report *MissingReport) []string {
	var names []string
	for pair := report.ColumnsWithMissing.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

func TestParseMethod(t *testing.T) {
	m, err := ParseMethod("iqr")
	require.NoError(t, err)
	assert.Equal(t, MethodIQR, m)

	m, err = ParseMethod("zscore")
	require.NoError(t, err)
	assert.Equal(t, MethodZScore, m)

	_, err = ParseMethod("mad")
	assert.True(t, errors.Is(err, core.ErrInvalidMethod))
}

func TestDetectMissing(t *testing.T) {
	ds := loadCSV(t, "a,b,c\n1,,x\n2,NA,\n3,4,y\n,5,z\n")

	report := DetectMissing(ds)
	assert.Equal(t, 4, report.TotalMissing)
	assert.Equal(t, 12, report.TotalCells)
	assert.Equal(t, []string{"a", "b", "c"}, missingColumns(report))

	b, ok := report.Column("b")
	require.True(t, ok)
	assert.Equal(t, 2, b.Count)
	assert.InDelta(t, 50.0, b.Percentage, 1e-12)
}

func TestDetectMissing_NoNulls(t *testing.T) {
	ds := loadCSV(t, "a,b\n1,2\n3,4\n")

	report := DetectMissing(ds)
	assert.Equal(t, 0, report.TotalMissing)
	assert.Equal(t, 0, report.ColumnsWithMissing.Len())

	body, err := json.Marshal(report)
	require.NoError(t, err)
	assert.JSONEq(t, `{"total_missing":0,"total_cells":4,"columns_with_missing":{}}`, string(body))
}

func TestDetectMissing_KeepsColumnOrder(t *testing.T) {
	ds := loadCSV(t, "z,m,a\n,1,\n2,3,\n")

	report := DetectMissing(ds)
	assert.Equal(t, []string{"z", "a"}, missingColumns(report))

	body, err := json.Marshal(report)
	require.NoError(t, err)
	assert.Equal(t, `{"total_missing":3,"total_cells":6,"columns_with_missing":`+
		`{"z":{"count":1,"percentage":50},"a":{"count":2,"percentage":100}}}`, string(body))

	out, err := yaml.Marshal(report)
	require.NoError(t, err)
	text := string(out)
	assert.Less(t, strings.Index(text, "z:"), strings.Index(text, "a:"))
	assert.Contains(t, text, "columns_with_missing:\n    z:\n        count: 1\n")
}

func TestDetectDuplicates(t *testing.T) {
	ds := loadCSV(t, "a,b\n1,x\n2,y\n1.0,x\n3,z\n2,y\n1,x\n")

	report := DetectDuplicates(ds)
	assert.Equal(t, 3, report.TotalDuplicates)
	assert.Equal(t, 6, report.TotalRows)
	assert.InDelta(t, 50.0, report.DuplicatePercentage, 1e-12)
	// Every member of a repeated group, first occurrences included
	assert.Equal(t, []int{0, 1, 2, 4, 5}, report.DuplicateIndices)
}

func TestDetectDuplicates_NoneAndEmpty(t *testing.T) {
	ds := loadCSV(t, "a,b\n1,x\n2,y\n")
	report := DetectDuplicates(ds)
	assert.Equal(t, 0, report.TotalDuplicates)
	assert.Empty(t, report.DuplicateIndices)

	empty := loadCSV(t, "a,b\n")
	report = DetectDuplicates(empty)
	assert.Equal(t, 0, report.TotalRows)
	assert.Equal(t, 0.0, report.DuplicatePercentage)
}

func TestDetectDuplicates_CapsIndices(t *testing.T) {
	content := "a\n"
	for i := 0; i < 150; i++ {
		content += "7\n"
	}
	ds := loadCSV(t, content)

	report := DetectDuplicates(ds)
	assert.Equal(t, 149, report.TotalDuplicates)
	assert.Len(t, report.DuplicateIndices, MaxReportedIndices)
}

func TestDetectOutliers_ThresholdBoundary(t *testing.T) {
	ds := loadCSV(t, "v\n1\n2\n3\n4\n5\n100\n")

	// |z(100)| is about 2.04, below the cutoff
	z, err := DetectOutliers(ds, "v", MethodZScore)
	require.NoError(t, err)
	assert.Equal(t, "Z-Score", z.Method)
	require.NotNil(t, z.Threshold)
	assert.Equal(t, 3.0, *z.Threshold)
	assert.Nil(t, z.LowerBound)
	assert.Equal(t, 0, z.TotalOutliers)
	assert.Empty(t, z.OutlierIndices)

	iqr, err := DetectOutliers(ds, "v", MethodIQR)
	require.NoError(t, err)
	assert.Equal(t, "IQR", iqr.Method)
	assert.Nil(t, iqr.Threshold)
	assert.InDelta(t, -1.5, *iqr.LowerBound, 1e-12)
	assert.InDelta(t, 8.5, *iqr.UpperBound, 1e-12)
	assert.Equal(t, 1, iqr.TotalOutliers)
	assert.Equal(t, []int{5}, iqr.OutlierIndices)
	assert.Equal(t, []float64{100}, iqr.OutlierValues)
	assert.InDelta(t, 100.0/6, iqr.OutlierPercentage, 1e-9)
}

func TestDetectOutliers_ZScoreFlagsFarValue(t *testing.T) {
	content := "v\n"
	for i := 0; i < 20; i++ {
		content += "10\n"
	}
	content += "1000\n"
	ds := loadCSV(t, content)

	report, err := DetectOutliers(ds, "v", MethodZScore)
	require.NoError(t, err)
	assert.Equal(t, 1, report.TotalOutliers)
	assert.Equal(t, []int{20}, report.OutlierIndices)
}

func TestDetectOutliers_IndicesKeepRowOrdinals(t *testing.T) {
	ds := loadCSV(t, "v\n1\nNA\n2\n3\nNA\n4\n5\n100\n")

	report, err := DetectOutliers(ds, "v", MethodIQR)
	require.NoError(t, err)
	assert.Equal(t, []int{7}, report.OutlierIndices)
}

func TestDetectOutliers_DegenerateColumns(t *testing.T) {
	ds := loadCSV(t, "single,empty\n5,\n")

	for _, method := range []Method{MethodZScore, MethodIQR} {
		report, err := DetectOutliers(ds, "single", method)
		require.NoError(t, err)
		assert.Equal(t, 0, report.TotalOutliers, method)

		report, err = DetectOutliers(ds, "empty", method)
		require.NoError(t, err)
		assert.Equal(t, 0, report.TotalOutliers, method)
		assert.Equal(t, 0.0, report.OutlierPercentage, method)
	}
}

func TestDetectOutliers_Errors(t *testing.T) {
	ds := loadCSV(t, "v,name\n1,a\n2,b\n")

	_, err := DetectOutliers(ds, "nope", MethodZScore)
	assert.True(t, errors.Is(err, core.ErrColumnNotFound))

	_, err = DetectOutliers(ds, "name", MethodZScore)
	assert.True(t, errors.Is(err, core.ErrNotNumeric))

	_, err = DetectOutliers(ds, "v", Method("mad"))
	assert.True(t, errors.Is(err, core.ErrInvalidMethod))
}
