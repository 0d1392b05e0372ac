package spectral

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

var allPairs = [][2]uint8{
	{uint8(Legendre), uint8(Gauss)},
	{uint8(Legendre), uint8(GaussLobatto)},
	{uint8(Chebyshev), uint8(Gauss)},
	{uint8(Chebyshev), uint8(GaussLobatto)},
}

func forAllPairs(f func(b Basis, q Quadrature)) {
	for _, pair := range allPairs {
		f(Basis(pair[0]), Quadrature(pair[1]))
	}
}

func TestCollocationPointsAndWeights(t *testing.T) {
	{ // Legendre Gauss
		x, w := CollocationPointsAndWeights(Legendre, Gauss, 1)
		assert.Equal(t, []float64{0}, x)
		assert.InDelta(t, 2., w[0], 1.e-15)
		x, w = CollocationPointsAndWeights(Legendre, Gauss, 2)
		assert.InDeltaSlice(t, []float64{-1 / math.Sqrt(3), 1 / math.Sqrt(3)}, x, 1.e-15)
		assert.InDeltaSlice(t, []float64{1, 1}, w, 1.e-15)
		x, w = CollocationPointsAndWeights(Legendre, Gauss, 3)
		r := math.Sqrt(3. / 5.)
		assert.InDeltaSlice(t, []float64{-r, 0, r}, x, 1.e-15)
		assert.InDeltaSlice(t, []float64{5. / 9., 8. / 9., 5. / 9.}, w, 1.e-15)
	}
	{ // Legendre Gauss-Lobatto
		x, w := CollocationPointsAndWeights(Legendre, GaussLobatto, 2)
		assert.Equal(t, []float64{-1, 1}, x)
		assert.InDeltaSlice(t, []float64{1, 1}, w, 1.e-15)
		x, w = CollocationPointsAndWeights(Legendre, GaussLobatto, 3)
		assert.Equal(t, []float64{-1, 0, 1}, x)
		assert.InDeltaSlice(t, []float64{1. / 3., 4. / 3., 1. / 3.}, w, 1.e-15)
		x, w = CollocationPointsAndWeights(Legendre, GaussLobatto, 4)
		r := 1 / math.Sqrt(5)
		assert.InDeltaSlice(t, []float64{-1, -r, r, 1}, x, 1.e-15)
		assert.InDeltaSlice(t, []float64{1. / 6., 5. / 6., 5. / 6., 1. / 6.}, w, 1.e-15)
	}
	{ // Chebyshev
		x, w := CollocationPointsAndWeights(Chebyshev, Gauss, 2)
		r := math.Sqrt(0.5)
		assert.InDeltaSlice(t, []float64{-r, r}, x, 1.e-15)
		assert.InDeltaSlice(t, []float64{math.Pi / 2, math.Pi / 2}, w, 1.e-15)
		x, w = CollocationPointsAndWeights(Chebyshev, GaussLobatto, 3)
		assert.Equal(t, []float64{-1, 0, 1}, x)
		assert.InDeltaSlice(t, []float64{math.Pi / 4, math.Pi / 2, math.Pi / 4}, w, 1.e-15)
	}
	// Every rule is strictly increasing, symmetric, and integrates the weight
	// function exactly.
	forAllPairs(func(b Basis, q Quadrature) {
		for n := MinimumNumberOfPoints(b, q); n <= MaximumNumberOfPoints(b); n++ {
			x, w := CollocationPointsAndWeights(b, q, n)
			assert.Len(t, x, n)
			var sum float64
			for i := range x {
				if i > 0 {
					assert.Greater(t, x[i], x[i-1], "%v-%v n=%d", b, q, n)
				}
				assert.Equal(t, -x[i], x[n-1-i])
				sum += w[i]
			}
			assert.InDelta(t, BasisFunctionNormalizationSquare(b, 0), sum, 1.e-13, "%v-%v n=%d", b, q, n)
		}
	})
}

func TestLegendreQuadratureExactness(t *testing.T) {
	integral := func(p int) float64 {
		if p%2 == 1 {
			return 0
		}
		return 2. / float64(p+1)
	}
	for n := 1; n <= MaximumNumberOfPoints(Legendre); n++ {
		x, w := CollocationPointsAndWeights(Legendre, Gauss, n)
		for p := 0; p <= 2*n-1; p++ {
			var sum float64
			for i := range x {
				sum += w[i] * math.Pow(x[i], float64(p))
			}
			assert.InDelta(t, integral(p), sum, 1.e-13, "Gauss n=%d p=%d", n, p)
		}
	}
	for n := 2; n <= MaximumNumberOfPoints(Legendre); n++ {
		x, w := CollocationPointsAndWeights(Legendre, GaussLobatto, n)
		for p := 0; p <= 2*n-3; p++ {
			var sum float64
			for i := range x {
				sum += w[i] * math.Pow(x[i], float64(p))
			}
			assert.InDelta(t, integral(p), sum, 1.e-13, "GaussLobatto n=%d p=%d", n, p)
		}
	}
}

func TestBasisFunctions(t *testing.T) {
	x := 0.3
	assert.Equal(t, 1., BasisFunctionValue(Legendre, 0, x))
	assert.Equal(t, x, BasisFunctionValue(Legendre, 1, x))
	assert.InDelta(t, 0.5*(3*x*x-1), BasisFunctionValue(Legendre, 2, x), 1.e-15)
	assert.InDelta(t, 0.5*(5*x*x*x-3*x), BasisFunctionValue(Legendre, 3, x), 1.e-15)
	for k := 0; k < 10; k++ {
		assert.InDelta(t, math.Cos(float64(k)*math.Acos(x)), BasisFunctionValue(Chebyshev, k, x), 1.e-14)
		assert.InDelta(t, 1., BasisFunctionValue(Legendre, k, 1), 1.e-15)
	}
	assert.Equal(t, 2., BasisFunctionNormalizationSquare(Legendre, 0))
	assert.Equal(t, 2./7., BasisFunctionNormalizationSquare(Legendre, 3))
	assert.Equal(t, math.Pi, BasisFunctionNormalizationSquare(Chebyshev, 0))
	assert.Equal(t, math.Pi/2, BasisFunctionNormalizationSquare(Chebyshev, 4))
	assert.Panics(t, func() { BasisFunctionValue(Basis(9), 0, 0) })
	assert.Panics(t, func() { BasisFunctionNormalizationSquare(Basis(9), 0) })
}

func TestNumberOfPointsBounds(t *testing.T) {
	assert.Equal(t, 1, MinimumNumberOfPoints(Legendre, Gauss))
	assert.Equal(t, 2, MinimumNumberOfPoints(Legendre, GaussLobatto))
	forAllPairs(func(b Basis, q Quadrature) {
		min, max := MinimumNumberOfPoints(b, q), MaximumNumberOfPoints(b)
		assert.Panics(t, func() { CollocationPointsAndWeights(b, q, min-1) }, "%v-%v", b, q)
		assert.Panics(t, func() { CollocationPointsAndWeights(b, q, max+1) }, "%v-%v", b, q)
		assert.NotPanics(t, func() { CollocationPointsAndWeights(b, q, max) }, "%v-%v", b, q)
	})
	assert.Panics(t, func() { MinimumNumberOfPoints(Basis(5), Gauss) })
	assert.Panics(t, func() { MinimumNumberOfPoints(Legendre, Quadrature(5)) })
	assert.Panics(t, func() { MaximumNumberOfPoints(Basis(5)) })
}

func TestParseNames(t *testing.T) {
	b, err := ParseBasis(" Chebyshev")
	assert.NoError(t, err)
	assert.Equal(t, Chebyshev, b)
	q, err := ParseQuadrature("GaussLobatto")
	assert.NoError(t, err)
	assert.Equal(t, GaussLobatto, q)
	_, err = ParseBasis("Fourier")
	assert.Error(t, err)
	_, err = ParseQuadrature("Radau")
	assert.Error(t, err)
	assert.Equal(t, "Legendre", Legendre.String())
	assert.Equal(t, "Gauss", Gauss.String())
	assert.Equal(t, "Basis(9)", Basis(9).String())
}
