package visualization

import (
	"encoding/json"
	"errors"
	"testing"

	"dataprep/adapters/excel"
	"dataprep/domain/core"
	"dataprep/domain/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadCSV(t *testing.T, content string) *dataset.Dataset {
	t.Helper()
	reader := excel.NewDataReader(excel.DefaultReaderConfig())
	ds, err := reader.ReadBytes("fixture.csv", []byte(content))
	require.NoError(t, err)
	return ds
}

const sample = "x,y,flat,label\n" +
	"1,2,5,a\n" +
	"2,4,5,b\n" +
	"3,6,5,a\n" +
	"4,,5,c\n" +
	"5,10,5,b\n"

func TestHistogram(t *testing.T) {
	ds := loadCSV(t, sample)

	fig, err := Histogram(ds, "y", 0)
	require.NoError(t, err)
	require.Len(t, fig.Data, 1)
	assert.Equal(t, "histogram", fig.Data[0].Type)
	assert.Equal(t, DefaultBins, fig.Data[0].NBinsX)
	assert.Equal(t, []float64{2, 4, 6, 10}, fig.Data[0].X)
	assert.Equal(t, "Histogram of y", fig.Layout.Title.Text)

	fig, err = Histogram(ds, "y", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, fig.Data[0].NBinsX)
}

func TestBoxPlot(t *testing.T) {
	ds := loadCSV(t, sample)

	fig, err := BoxPlot(ds, "x")
	require.NoError(t, err)
	assert.Equal(t, "box", fig.Data[0].Type)
	assert.Equal(t, "sd", fig.Data[0].BoxMean)
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, fig.Data[0].Y)
}

func TestCharts_ColumnErrors(t *testing.T) {
	ds := loadCSV(t, sample)

	_, err := Histogram(ds, "nope", 10)
	assert.True(t, errors.Is(err, core.ErrColumnNotFound))

	_, err = BoxPlot(ds, "label")
	assert.True(t, errors.Is(err, core.ErrNotNumeric))

	_, err = Scatter(ds, "x", "label")
	assert.True(t, errors.Is(err, core.ErrNotNumeric))
}

func TestScatter_TrendLine(t *testing.T) {
	ds := loadCSV(t, sample)

	fig, err := Scatter(ds, "x", "y")
	require.NoError(t, err)
	require.Len(t, fig.Data, 2)

	points := fig.Data[0]
	assert.Equal(t, []float64{1, 2, 3, 5}, points.X)
	assert.Equal(t, []float64{2, 4, 6, 10}, points.Y)
	assert.Equal(t, "x: 1<br>y: 2", points.Text.([]string)[0])

	trend := fig.Data[1]
	tx := trend.X.([]float64)
	ty := trend.Y.([]float64)
	require.Len(t, tx, TrendPoints)
	assert.Equal(t, 1.0, tx[0])
	assert.Equal(t, 5.0, tx[TrendPoints-1])
	// y = 2x exactly
	assert.InDelta(t, 2.0, ty[0], 1e-9)
	assert.InDelta(t, 10.0, ty[TrendPoints-1], 1e-9)
}

func TestScatter_NoTrendWithoutSpread(t *testing.T) {
	ds := loadCSV(t, sample)

	fig, err := Scatter(ds, "flat", "y")
	require.NoError(t, err)
	assert.Len(t, fig.Data, 1)
}

func TestHeatmap(t *testing.T) {
	ds := loadCSV(t, sample)

	fig, err := Heatmap(ds)
	require.NoError(t, err)

	trace := fig.Data[0]
	assert.Equal(t, []string{"x", "y", "flat"}, trace.X)

	z := trace.Z.([][]*float64)
	require.NotNil(t, z[0][1])
	assert.InDelta(t, 1.0, *z[0][1], 1e-9)
	assert.Equal(t, z[0][1], z[1][0])
	// A constant column has no correlation
	assert.Nil(t, z[0][2])
	assert.Nil(t, z[2][2])

	body, err := json.Marshal(fig)
	require.NoError(t, err)
	assert.Contains(t, string(body), "null")
}

func TestHeatmap_NeedsTwoNumericColumns(t *testing.T) {
	ds := loadCSV(t, "x,label\n1,a\n2,b\n")

	_, err := Heatmap(ds)
	assert.True(t, errors.Is(err, core.ErrInsufficientData))
}

func TestNormalDistribution(t *testing.T) {
	ds := loadCSV(t, sample)

	fig, err := NormalDistribution(ds, "x")
	require.NoError(t, err)
	require.Len(t, fig.Data, 2)

	assert.Equal(t, "probability density", fig.Data[0].HistNorm)
	curve := fig.Data[1]
	assert.Len(t, curve.X, DensityPoints)

	require.Len(t, fig.Layout.Annotations, 1)
	assert.Equal(t, "Mean: 3.00<br>Std Dev: 1.58<br>Skewness: 0.00<br>Kurtosis: -1.30",
		fig.Layout.Annotations[0].Text)
}

func TestNormalDistribution_EmptyAndConstant(t *testing.T) {
	ds := loadCSV(t, "a,b\n,5\n,5\n")

	_, err := NormalDistribution(ds, "a")
	assert.True(t, errors.Is(err, core.ErrEmptyData))

	fig, err := NormalDistribution(ds, "b")
	require.NoError(t, err)
	assert.Len(t, fig.Data, 1)
}
