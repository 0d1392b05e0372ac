package spectral

import "math"

func chebyshevT(n int, x float64) float64 {
	if n == 0 {
		return 1
	}
	tm1, t := 1., x
	for k := 1; k < n; k++ {
		tm1, t = t, 2*x*t-tm1
	}
	return t
}

func chebyshevGauss(n int) (x, w []float64) {
	x = make([]float64, n)
	w = make([]float64, n)
	for j := range x {
		x[j] = -math.Cos(float64(2*j+1) * math.Pi / float64(2*n))
		w[j] = math.Pi / float64(n)
	}
	return
}

func chebyshevGaussLobatto(n int) (x, w []float64) {
	x = make([]float64, n)
	w = make([]float64, n)
	dw := math.Pi / float64(n-1)
	for j := range x {
		x[j] = -math.Cos(float64(j) * math.Pi / float64(n-1))
		w[j] = dw
	}
	x[0], x[n-1] = -1, 1
	w[0] *= 0.5
	w[n-1] *= 0.5
	return
}
