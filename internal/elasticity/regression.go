package elasticity

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

type fit struct {
	slope     float64
	intercept float64
	rSquared  float64
	pValue    float64
	n         int
}

// fitLine runs OLS of y on x and a two-sided t-test on the slope with n-2
// degrees of freedom. With fewer than three points there is no residual
// variance to test against and the p-value is 1.
func fitLine(x, y []float64) fit {
	alpha, beta := stat.LinearRegression(x, y, nil, false)
	r2 := stat.RSquared(x, y, nil, alpha, beta)
	if !finite(r2) {
		r2 = 0
	}
	f := fit{slope: beta, intercept: alpha, rSquared: r2, n: len(x), pValue: 1}

	df := len(x) - 2
	if df < 1 {
		return f
	}
	var sse float64
	for i := range x {
		r := y[i] - (alpha + beta*x[i])
		sse += r * r
	}
	sxx := stat.Variance(x, nil) * float64(len(x)-1)
	se := math.Sqrt(sse/float64(df)) / math.Sqrt(sxx)
	if se == 0 || !finite(se) {
		f.pValue = 0
		return f
	}
	t := math.Abs(beta / se)
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}
	f.pValue = 2 * (1 - dist.CDF(t))
	return f
}

// coefficientOfVariation uses the sample standard deviation.
func coefficientOfVariation(values []float64) float64 {
	mean := stat.Mean(values, nil)
	if mean == 0 {
		return 0
	}
	return stat.StdDev(values, nil) / math.Abs(mean)
}
