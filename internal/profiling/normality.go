package profiling

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

var (
	swC1 = []float64{0, 0.221157, -0.147981, -2.07119, 4.434685, -2.706056}
	swC2 = []float64{0, 0.042981, -0.293762, -1.752461, 5.682633, -3.582633}

	// p-value approximations for 4 <= n <= 11
	swSmallGamma = []float64{-2.273, 0.459}
	swSmallMean  = []float64{0.544, -0.39978, 0.025054, -6.714e-4}
	swSmallSigma = []float64{1.3822, -0.77857, 0.062767, -0.0020322}

	// p-value approximations for n >= 12
	swLargeMean  = []float64{-1.5861, -0.31082, -0.083751, 0.0038915}
	swLargeSigma = []float64{-0.4803, -0.082676, 0.0030302}
)

// ShapiroWilk returns the W statistic and p-value of the Shapiro-Wilk test
// using Royston's approximation. Valid for 3 <= n <= 5000. Constant samples
// return W = 1 and p = 1.
func ShapiroWilk(data []float64) (w, p float64) {
	n := len(data)
	if n < 3 {
		return 1, 1
	}

	x := sortedCopy(data)
	if x[n-1]-x[0] == 0 {
		return 1, 1
	}

	a := shapiroWilkCoefficients(n)

	mean := 0.0
	for _, v := range x {
		mean += v
	}
	mean /= float64(n)

	ss := 0.0
	for _, v := range x {
		d := v - mean
		ss += d * d
	}

	num := 0.0
	for i := 0; i < n/2; i++ {
		num += a[i] * (x[n-1-i] - x[i])
	}
	w = num * num / ss
	if w >= 1 {
		return 1, 1
	}

	return w, shapiroWilkPValue(w, n)
}

// shapiroWilkCoefficients returns the first n/2 antisymmetric weights
func shapiroWilkCoefficients(n int) []float64 {
	nn2 := n / 2
	a := make([]float64, nn2)
	if n == 3 {
		a[0] = math.Sqrt(0.5)
		return a
	}

	an25 := float64(n) + 0.25
	m := make([]float64, nn2)
	summ2 := 0.0
	for i := 0; i < nn2; i++ {
		m[i] = distuv.UnitNormal.Quantile((float64(i+1) - 0.375) / an25)
		summ2 += m[i] * m[i]
	}
	summ2 *= 2
	ssumm2 := math.Sqrt(summ2)
	rsn := 1 / math.Sqrt(float64(n))

	// m is negative on the lower half; weights are stored positive
	a1 := poly(swC1, rsn) - m[0]/ssumm2

	var i1 int
	var fac float64
	if n > 5 {
		i1 = 2
		a2 := -m[1]/ssumm2 + poly(swC2, rsn)
		fac = math.Sqrt((summ2 - 2*m[0]*m[0] - 2*m[1]*m[1]) / (1 - 2*a1*a1 - 2*a2*a2))
		a[1] = a2
	} else {
		i1 = 1
		fac = math.Sqrt((summ2 - 2*m[0]*m[0]) / (1 - 2*a1*a1))
	}
	a[0] = a1
	for i := i1; i < nn2; i++ {
		a[i] = -m[i] / fac
	}
	return a
}

func shapiroWilkPValue(w float64, n int) float64 {
	nf := float64(n)
	if n == 3 {
		const pi6 = 6 / math.Pi
		const stqr = math.Pi / 3
		p := pi6 * (math.Asin(math.Sqrt(w)) - stqr)
		return math.Max(0, math.Min(1, p))
	}

	y := math.Log(1 - w)
	var mean, sigma float64
	if n <= 11 {
		gamma := poly(swSmallGamma, nf)
		if y >= gamma {
			return 1e-99
		}
		y = -math.Log(gamma - y)
		mean = poly(swSmallMean, nf)
		sigma = math.Exp(poly(swSmallSigma, nf))
	} else {
		xx := math.Log(nf)
		mean = poly(swLargeMean, xx)
		sigma = math.Exp(poly(swLargeSigma, xx))
	}

	return distuv.Normal{Mu: mean, Sigma: sigma}.Survival(y)
}

// KolmogorovSmirnovNormal tests data against Normal(mean, stdDev) and returns
// the D statistic with its asymptotic p-value
func KolmogorovSmirnovNormal(data []float64, mean, stdDev float64) (d, p float64) {
	n := len(data)
	if n == 0 || stdDev <= 0 {
		return 0, 1
	}

	x := sortedCopy(data)
	dist := distuv.Normal{Mu: mean, Sigma: stdDev}
	nf := float64(n)
	for i, v := range x {
		cdf := dist.CDF(v)
		if diff := float64(i+1)/nf - cdf; diff > d {
			d = diff
		}
		if diff := cdf - float64(i)/nf; diff > d {
			d = diff
		}
	}

	return d, kolmogorovSurvival(math.Sqrt(nf) * d)
}

// kolmogorovSurvival is P(K > lambda) for the Kolmogorov distribution
func kolmogorovSurvival(lambda float64) float64 {
	if lambda < 0.2 {
		return 1
	}
	sum := 0.0
	sign := 1.0
	for k := 1; k <= 100; k++ {
		term := sign * math.Exp(-2*float64(k*k)*lambda*lambda)
		sum += term
		if math.Abs(term) < 1e-12 {
			break
		}
		sign = -sign
	}
	return math.Max(0, math.Min(1, 2*sum))
}

// poly evaluates c[0] + c[1]x + c[2]x^2 + ...
func poly(c []float64, x float64) float64 {
	result := 0.0
	for i := len(c) - 1; i >= 0; i-- {
		result = result*x + c[i]
	}
	return result
}
