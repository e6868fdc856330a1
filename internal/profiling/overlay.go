package profiling

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// OverlayPoints is the number of samples in each overlay curve
const OverlayPoints = 100

// NormalOverlay fits Normal(mean, stdDev) over [min, max]. Without spread
// there is no curve to draw and only the parameters are returned.
func NormalOverlay(mean, stdDev, min, max float64) *NormalDistribution {
	nd := &NormalDistribution{Mean: mean, StdDev: stdDev}
	if stdDev <= 0 {
		return nd
	}

	xs := floats.Span(make([]float64, OverlayPoints), min, max)
	dist := distuv.Normal{Mu: mean, Sigma: stdDev}

	pdf := make([]float64, len(xs))
	cdf := make([]float64, len(xs))
	for i, x := range xs {
		pdf[i] = dist.Prob(x)
		cdf[i] = dist.CDF(x)
	}

	nd.PDFValues = &Curve{X: xs, Y: pdf}
	nd.CDFValues = &Curve{X: append([]float64(nil), xs...), Y: cdf}
	return nd
}
