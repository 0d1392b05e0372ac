package spectral

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// BasisFunctionValue returns Φ_k(x), k is zero based.
func BasisFunctionValue(b Basis, k int, x float64) float64 {
	switch b {
	case Legendre:
		p, _ := legendreAndDerivative(k, x)
		return p
	case Chebyshev:
		return chebyshevT(k, x)
	}
	panic(fmt.Errorf("missing basis case for spectral quantity: %v", b))
}

// BasisFunctionNormalizationSquare returns γ_k, the integral of Φ_k² against
// the weight function of the basis.
func BasisFunctionNormalizationSquare(b Basis, k int) float64 {
	switch b {
	case Legendre:
		return 2. / (2.*float64(k) + 1.)
	case Chebyshev:
		if k == 0 {
			return math.Pi
		}
		return 0.5 * math.Pi
	}
	panic(fmt.Errorf("missing basis case for spectral quantity: %v", b))
}

// CollocationPointsAndWeights computes the n abscissae in increasing order and
// their quadrature weights. Out of range n panics.
func CollocationPointsAndWeights(b Basis, q Quadrature, n int) (x, w []float64) {
	checkNumberOfPoints(b, q, n)
	switch b {
	case Legendre:
		switch q {
		case Gauss:
			x, w = legendreGauss(n)
		case GaussLobatto:
			x, w = legendreGaussLobatto(n)
		}
	case Chebyshev:
		switch q {
		case Gauss:
			x, w = chebyshevGauss(n)
		case GaussLobatto:
			x, w = chebyshevGaussLobatto(n)
		}
	}
	symmetrize(x, w)
	return
}

// symmetricJacobiRoots returns the n roots of P^(a,a)_n in ascending order,
// computed as eigenvalues of the symmetric tridiagonal Jacobi matrix
// (Golub-Welsch). They seed the Newton polish in the basis files.
func symmetricJacobiRoots(a float64, n int) (x []float64) {
	if n == 1 {
		return []float64{0}
	}
	JJ := mat.NewSymDense(n, nil)
	for k := 1; k < n; k++ {
		fk := float64(k)
		h := 2*fk + 2*a
		JJ.SetSym(k-1, k, math.Sqrt(fk*(fk+2*a)/((h+1)*(h-1))))
	}
	var eig mat.EigenSym
	if ok := eig.Factorize(JJ, false); !ok {
		panic("eigenvalue decomposition failed")
	}
	x = eig.Values(nil)
	sort.Float64s(x)
	return
}

// newtonPolish refines each x in place, f returns the function value and its
// derivative.
func newtonPolish(x []float64, f func(x float64) (fx, dfx float64)) {
	for i := range x {
		for iter := 0; iter < 8; iter++ {
			fx, dfx := f(x[i])
			dx := fx / dfx
			x[i] -= dx
			if math.Abs(dx) < 1.e-17 {
				break
			}
		}
	}
}

// symmetrize enforces the reflection symmetry about zero that every supported
// rule has, which removes the last ulp of asymmetry left by the root finder.
func symmetrize(x, w []float64) {
	n := len(x)
	for i := 0; i < n/2; i++ {
		v := 0.5 * (x[n-1-i] - x[i])
		x[i], x[n-1-i] = -v, v
		wv := 0.5 * (w[i] + w[n-1-i])
		w[i], w[n-1-i] = wv, wv
	}
	if n%2 == 1 {
		x[n/2] = 0
	}
}
