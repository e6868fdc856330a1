package visualization

import (
	"fmt"
	"math"

	"dataprep/domain/core"
	"dataprep/domain/dataset"
	"dataprep/internal/profiling"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// DefaultBins is the histogram bin count when none is requested
	DefaultBins = 30
	// TrendPoints is the number of samples on a scatter trend line
	TrendPoints = 100
	// DensityPoints is the number of samples on a fitted density curve
	DensityPoints = 200
)

// numericColumn returns the non-null values of a numeric column
func numericColumn(ds *dataset.Dataset, column string) ([]float64, *dataset.Column, error) {
	col, ok := ds.Column(column)
	if !ok {
		return nil, nil, core.NewColumnNotFoundError(column)
	}
	if col.Kind() != dataset.KindNumeric {
		return nil, nil, core.NewNotNumericError(column)
	}
	data, _ := col.Floats()
	return data, col, nil
}

// Histogram plots the distribution of a numeric column
func Histogram(ds *dataset.Dataset, column string, bins int) (*Figure, error) {
	data, _, err := numericColumn(ds, column)
	if err != nil {
		return nil, err
	}
	if bins < 1 {
		bins = DefaultBins
	}

	return &Figure{
		Data: []Trace{{
			Type:    "histogram",
			Name:    column,
			X:       data,
			NBinsX:  bins,
			Opacity: 0.7,
			Marker:  &Marker{Color: primaryColor, Line: &Line{Color: outlineColor, Width: 1}},
		}},
		Layout: Layout{
			Title:      Title{Text: fmt.Sprintf("Histogram of %s", column)},
			XAxis:      axis(column),
			YAxis:      axis("Frequency"),
			HoverMode:  "x unified",
			Template:   template,
			Height:     500,
			ShowLegend: boolPtr(true),
		},
	}, nil
}

// BoxPlot plots quartiles, mean and standard deviation of a numeric column
func BoxPlot(ds *dataset.Dataset, column string) (*Figure, error) {
	data, _, err := numericColumn(ds, column)
	if err != nil {
		return nil, err
	}

	return &Figure{
		Data: []Trace{{
			Type:    "box",
			Name:    column,
			Y:       data,
			BoxMean: "sd",
			Marker:  &Marker{Color: primaryColor},
		}},
		Layout: Layout{
			Title:      Title{Text: fmt.Sprintf("Box Plot of %s", column)},
			YAxis:      axis(column),
			Template:   template,
			Height:     500,
			ShowLegend: boolPtr(true),
		},
	}, nil
}

// Scatter plots two numeric columns over the rows where both are present,
// with a least-squares trend line when x has spread
func Scatter(ds *dataset.Dataset, xColumn, yColumn string) (*Figure, error) {
	_, xCol, err := numericColumn(ds, xColumn)
	if err != nil {
		return nil, err
	}
	_, yCol, err := numericColumn(ds, yColumn)
	if err != nil {
		return nil, err
	}

	var xs, ys []float64
	var hover []string
	for i := range xCol.Values {
		xv, yv := xCol.Values[i], yCol.Values[i]
		if !xv.IsNumeric() || !yv.IsNumeric() {
			continue
		}
		xs = append(xs, xv.Num)
		ys = append(ys, yv.Num)
		hover = append(hover, fmt.Sprintf("%s: %s<br>%s: %s", xColumn, xv.Raw, yColumn, yv.Raw))
	}
	if xs == nil {
		xs, ys, hover = []float64{}, []float64{}, []string{}
	}

	fig := &Figure{
		Data: []Trace{{
			Type: "scatter",
			Name: "Data Points",
			Mode: "markers",
			X:    xs,
			Y:    ys,
			Marker: &Marker{
				Size:    8,
				Color:   primaryColor,
				Opacity: 0.6,
				Line:    &Line{Color: outlineColor, Width: 1},
			},
			Text:          hover,
			HoverTemplate: "%{text}<extra></extra>",
		}},
		Layout: Layout{
			Title:     Title{Text: fmt.Sprintf("Scatter Plot: %s vs %s", xColumn, yColumn)},
			XAxis:     axis(xColumn),
			YAxis:     axis(yColumn),
			Template:  template,
			Height:    500,
			HoverMode: "closest",
		},
	}

	if trend := trendLine(xs, ys); trend != nil {
		fig.Data = append(fig.Data, *trend)
	}
	return fig, nil
}

// trendLine fits y = alpha + beta*x. There is no line through fewer than two
// points or through points sharing one x.
func trendLine(xs, ys []float64) *Trace {
	if len(xs) < 2 {
		return nil
	}
	min, max := floats.Min(xs), floats.Max(xs)
	if min == max {
		return nil
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	tx := floats.Span(make([]float64, TrendPoints), min, max)
	ty := make([]float64, len(tx))
	for i, x := range tx {
		ty[i] = alpha + beta*x
	}

	return &Trace{
		Type: "scatter",
		Name: "Trend Line",
		Mode: "lines",
		X:    tx,
		Y:    ty,
		Line: &Line{Color: accentColor, Width: 2, Dash: "dash"},
	}
}

// Heatmap plots the Pearson correlation of every pair of numeric columns.
// Each pair uses the rows where both values are present; an undefined
// correlation is null.
func Heatmap(ds *dataset.Dataset) (*Figure, error) {
	var cols []*dataset.Column
	var names []string
	for _, col := range ds.Columns() {
		if col.Kind() == dataset.KindNumeric {
			cols = append(cols, col)
			names = append(names, col.Name)
		}
	}
	if len(cols) < 2 {
		return nil, fmt.Errorf("%w: at least 2 numeric columns are required for correlation heatmap", core.ErrInsufficientData)
	}

	z := make([][]*float64, len(cols))
	text := make([][]*float64, len(cols))
	for i := range cols {
		z[i] = make([]*float64, len(cols))
		text[i] = make([]*float64, len(cols))
	}
	for i := range cols {
		for j := i; j < len(cols); j++ {
			r := pairwiseCorrelation(cols[i], cols[j])
			if math.IsNaN(r) {
				continue
			}
			rounded := math.Round(r*100) / 100
			z[i][j], z[j][i] = &r, &r
			text[i][j], text[j][i] = &rounded, &rounded
		}
	}

	zmid := 0.0
	return &Figure{
		Data: []Trace{{
			Type:         "heatmap",
			X:            names,
			Y:            names,
			Z:            z,
			ColorScale:   "RdBu",
			ZMid:         &zmid,
			Text:         text,
			TextTemplate: "%{text}",
			TextFont:     &Font{Size: 10},
			ColorBar:     &ColorBar{Title: Title{Text: "Correlation"}},
		}},
		Layout: Layout{
			Title:    Title{Text: "Correlation Heatmap"},
			XAxis:    axis("Features"),
			YAxis:    axis("Features"),
			Template: template,
			Height:   600,
			Width:    700,
		},
	}, nil
}

func pairwiseCorrelation(a, b *dataset.Column) float64 {
	var xs, ys []float64
	for i := range a.Values {
		if a.Values[i].IsNumeric() && b.Values[i].IsNumeric() {
			xs = append(xs, a.Values[i].Num)
			ys = append(ys, b.Values[i].Num)
		}
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsInf(r, 0) {
		return math.NaN()
	}
	return r
}

// NormalDistribution overlays a fitted normal density on a density histogram
// and annotates it with the engine's summary measures
func NormalDistribution(ds *dataset.Dataset, column string) (*Figure, error) {
	data, _, err := numericColumn(ds, column)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, core.ErrEmptyData
	}

	summary, err := profiling.SummarizeNumeric(data)
	if err != nil {
		return nil, err
	}

	fig := &Figure{
		Data: []Trace{{
			Type:     "histogram",
			Name:     "Data",
			X:        data,
			NBinsX:   DefaultBins,
			HistNorm: "probability density",
			Marker:   &Marker{Color: primaryColor, Opacity: 0.6},
		}},
		Layout: Layout{
			Title:      Title{Text: fmt.Sprintf("Normal Distribution Analysis: %s", column)},
			XAxis:      axis(column),
			YAxis:      axis("Probability Density"),
			Template:   template,
			Height:     500,
			HoverMode:  "x unified",
			ShowLegend: boolPtr(true),
			Annotations: []Annotation{{
				Text: fmt.Sprintf("Mean: %.2f<br>Std Dev: %.2f<br>Skewness: %.2f<br>Kurtosis: %.2f",
					summary.Mean, summary.StdDev, summary.Skewness, summary.Kurtosis),
				XRef:        "paper",
				YRef:        "paper",
				X:           0.98,
				Y:           0.97,
				ShowArrow:   false,
				BgColor:     "rgba(255, 255, 255, 0.8)",
				BorderColor: "#000000",
				BorderWidth: 1,
				XAnchor:     "right",
				YAnchor:     "top",
				Font:        &Font{Size: 11},
			}},
		},
	}

	// A constant column has no density to draw
	if summary.StdDev > 0 {
		dist := distuv.Normal{Mu: summary.Mean, Sigma: summary.StdDev}
		xs := floats.Span(make([]float64, DensityPoints), summary.Min, summary.Max)
		ys := make([]float64, len(xs))
		for i, x := range xs {
			ys[i] = dist.Prob(x)
		}
		fig.Data = append(fig.Data, Trace{
			Type: "scatter",
			Name: "Normal Distribution",
			Mode: "lines",
			X:    xs,
			Y:    ys,
			Line: &Line{Color: accentColor, Width: 3},
		})
	}

	return fig, nil
}
