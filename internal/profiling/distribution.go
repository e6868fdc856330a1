package profiling

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
)

// ShapiroWilkMaxN is the largest sample tested with Shapiro-Wilk; larger
// samples use Kolmogorov-Smirnov
const ShapiroWilkMaxN = 5000

// normalityAlpha is the significance level for is_normal
const normalityAlpha = 0.05

// Moments holds the location and spread of a sample
type Moments struct {
	Count    int
	Mean     float64
	Median   float64
	StdDev   float64
	Variance float64
	Min      float64
	Max      float64
	Q1       float64
	Q3       float64
}

// IQR returns the interquartile range
func (m Moments) IQR() float64 {
	return m.Q3 - m.Q1
}

// Describe computes the summary moments of a non-empty sample
func Describe(data []float64) (Moments, error) {
	m := Moments{Count: len(data)}

	mean, err := stats.Mean(data)
	if err != nil {
		return m, err
	}
	median, err := stats.Median(data)
	if err != nil {
		return m, err
	}
	min, err := stats.Min(data)
	if err != nil {
		return m, err
	}
	max, err := stats.Max(data)
	if err != nil {
		return m, err
	}

	variance, stdDev := 0.0, 0.0
	if len(data) > 1 {
		if variance, err = stats.SampleVariance(data); err != nil {
			return m, err
		}
		if stdDev, err = stats.StandardDeviationSample(data); err != nil {
			return m, err
		}
	}

	sorted := sortedCopy(data)

	m.Mean = mean
	m.Median = median
	m.Min = min
	m.Max = max
	m.Variance = variance
	m.StdDev = stdDev
	m.Q1 = Quantile(sorted, 0.25)
	m.Q3 = Quantile(sorted, 0.75)
	return m, nil
}

// SampleStdDev returns the n-1 standard deviation, 0 for fewer than two values
func SampleStdDev(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	sd, err := stats.StandardDeviationSample(data)
	if err != nil {
		return 0
	}
	return sd
}

// Quantile returns the p-quantile of sorted data by linear interpolation
// between closest ranks, position (n-1)*p
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 || p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	pos := float64(n-1) * p
	lower := int(math.Floor(pos))
	frac := pos - float64(lower)
	if lower+1 >= n {
		return sorted[n-1]
	}
	return sorted[lower] + frac*(sorted[lower+1]-sorted[lower])
}

// Quartiles returns Q1 and Q3 of unsorted data
func Quartiles(data []float64) (q1, q3 float64) {
	sorted := sortedCopy(data)
	return Quantile(sorted, 0.25), Quantile(sorted, 0.75)
}

// Shape computes the biased Fisher skewness m3/m2^1.5 and excess kurtosis
// m4/m2^2 - 3. A sample without spread has zero skewness and kurtosis.
func Shape(data []float64, mean float64) (skewness, kurtosis float64) {
	n := float64(len(data))
	if n == 0 {
		return 0, 0
	}

	var m2, m3, m4 float64
	for _, x := range data {
		d := x - mean
		d2 := d * d
		m2 += d2
		m3 += d2 * d
		m4 += d2 * d2
	}
	m2 /= n
	m3 /= n
	m4 /= n

	// Rounding noise of a constant sample
	eps := 2.220446049250313e-16 * mean
	if m2 <= eps*eps {
		return 0, 0
	}

	skewness = m3 / math.Pow(m2, 1.5)
	kurtosis = m4/(m2*m2) - 3
	return skewness, kurtosis
}

// TestNormality picks Shapiro-Wilk for samples up to ShapiroWilkMaxN and a
// Kolmogorov-Smirnov test against Normal(mean, stdDev) above it. Samples
// smaller than three cannot be tested and yield nil.
func TestNormality(data []float64, mean, stdDev float64) *NormalityTest {
	if len(data) < 3 {
		return nil
	}

	if len(data) <= ShapiroWilkMaxN {
		w, p := ShapiroWilk(data)
		return &NormalityTest{
			Test:      "Shapiro-Wilk",
			Statistic: w,
			PValue:    p,
			IsNormal:  p > normalityAlpha,
		}
	}

	d, p := KolmogorovSmirnovNormal(data, mean, stdDev)
	return &NormalityTest{
		Test:      "Kolmogorov-Smirnov",
		Statistic: d,
		PValue:    p,
		IsNormal:  p > normalityAlpha,
	}
}

func sortedCopy(data []float64) []float64 {
	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)
	return sorted
}
