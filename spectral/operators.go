package spectral

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"

	"github.com/notargets/gospectral/utils"
)

type PointsAndWeights struct {
	Points, Weights utils.Vector
}

// Operators owns the cached quantities of one (basis, quadrature) pair. All
// vectors and matrices it returns are read only and shared by every caller.
type Operators struct {
	basis      Basis
	quadrature Quadrature

	pointsAndWeights *Cache[PointsAndWeights]
	barycentric      *Cache[utils.Vector]
	differentiation  *Cache[utils.Matrix]
	spectralToGrid   *Cache[utils.Matrix]
	gridToSpectral   *Cache[utils.Matrix]
	linearFilter     *Cache[utils.Matrix]
}

func NewOperators(b Basis, q Quadrature) (o *Operators) {
	mustBeImplemented(b, q)
	o = &Operators{
		basis:      b,
		quadrature: q,
	}
	o.pointsAndWeights = newOperatorCache(b, q, "collocation", o.computePointsAndWeights)
	o.barycentric = newOperatorCache(b, q, "barycentric_weights", o.computeBarycentricWeights)
	o.differentiation = newOperatorCache(b, q, "differentiation", o.computeDifferentiationMatrix)
	o.spectralToGrid = newOperatorCache(b, q, "spectral_to_grid", o.computeSpectralToGridPointsMatrix)
	o.gridToSpectral = newOperatorCache(b, q, "grid_to_spectral", o.computeGridPointsToSpectralMatrix)
	o.linearFilter = newOperatorCache(b, q, "linear_filter", o.computeLinearFilterMatrix)
	return
}

func (o *Operators) Basis() Basis               { return o.basis }
func (o *Operators) Quadrature() Quadrature     { return o.quadrature }
func (o *Operators) MinimumNumberOfPoints() int { return MinimumNumberOfPoints(o.basis, o.quadrature) }
func (o *Operators) MaximumNumberOfPoints() int { return MaximumNumberOfPoints(o.basis) }
func (o *Operators) String() string             { return o.basis.String() + "-" + o.quadrature.String() }

func (o *Operators) CollocationPoints(n int) utils.Vector {
	return o.pointsAndWeights.Get(n).Points
}
func (o *Operators) QuadratureWeights(n int) utils.Vector {
	return o.pointsAndWeights.Get(n).Weights
}
func (o *Operators) BarycentricWeights(n int) utils.Vector {
	return o.barycentric.Get(n)
}
func (o *Operators) DifferentiationMatrix(n int) utils.Matrix {
	return o.differentiation.Get(n)
}

// SpectralToGridPointsMatrix is the Vandermonde matrix V_ij = Φ_j(x_i).
func (o *Operators) SpectralToGridPointsMatrix(n int) utils.Matrix {
	return o.spectralToGrid.Get(n)
}

func (o *Operators) GridPointsToSpectralMatrix(n int) utils.Matrix {
	return o.gridToSpectral.Get(n)
}

// LinearFilterMatrix keeps the two lowest spectral modes and zeroes the rest.
func (o *Operators) LinearFilterMatrix(n int) utils.Matrix {
	return o.linearFilter.Get(n)
}

// InterpolationMatrix maps values at the n collocation points to values at
// the targets. The result is rebuilt on every call and is writable.
func (o *Operators) InterpolationMatrix(n int, targets []float64) (R utils.Matrix) {
	checkNumberOfPoints(o.basis, o.quadrature, n)
	var (
		x    = o.CollocationPoints(n).Data()
		bary = o.BarycentricWeights(n).Data()
		nt   = len(targets)
	)
	R = utils.NewMatrix(nt, n)
	data := R.Data()
	for k, t := range targets {
		row := data[k*n : (k+1)*n]
		var match bool
		for j, xj := range x {
			if utils.EqualWithinRoundoff(t, xj) {
				row[j] = 1
				match = true
			}
		}
		if match {
			continue
		}
		var sum float64
		for j, xj := range x {
			row[j] = bary[j] / (t - xj)
			sum += row[j]
		}
		for j := range row {
			row[j] /= sum
		}
	}
	return
}

func (o *Operators) computePointsAndWeights(n int) (pw PointsAndWeights) {
	x, w := CollocationPointsAndWeights(o.basis, o.quadrature, n)
	pw.Points = utils.NewVector(n, x)
	pw.Points.SetReadOnly(fmt.Sprintf("%v collocation points, n=%d", o, n))
	pw.Weights = utils.NewVector(n, w)
	pw.Weights.SetReadOnly(fmt.Sprintf("%v quadrature weights, n=%d", o, n))
	return
}

// computeBarycentricWeights uses the pairwise product form, valid for any set
// of distinct points.
func (o *Operators) computeBarycentricWeights(n int) (W utils.Vector) {
	var (
		x    = o.CollocationPoints(n).Data()
		bary = utils.ConstArray(n, 1)
	)
	for j := 1; j < n; j++ {
		for k := 0; k < j; k++ {
			bary[k] *= x[k] - x[j]
			bary[j] *= x[j] - x[k]
		}
	}
	for j := range bary {
		bary[j] = 1. / bary[j]
	}
	W = utils.NewVector(n, bary)
	W.SetReadOnly(fmt.Sprintf("%v barycentric weights, n=%d", o, n))
	return
}

// computeDifferentiationMatrix sets each diagonal to the negative row sum of
// the off diagonal entries so constants are annihilated exactly.
func (o *Operators) computeDifferentiationMatrix(n int) (D utils.Matrix) {
	var (
		x    = o.CollocationPoints(n).Data()
		bary = o.BarycentricWeights(n).Data()
	)
	D = utils.NewMatrix(n, n)
	data := D.Data()
	for i := 0; i < n; i++ {
		var diagonal float64
		for j := 0; j < n; j++ {
			if i != j {
				val := bary[j] / (bary[i] * (x[i] - x[j]))
				data[i*n+j] = val
				diagonal -= val
			}
		}
		data[i*n+i] = diagonal
	}
	D.SetReadOnly(fmt.Sprintf("%v differentiation matrix, n=%d", o, n))
	return
}

func (o *Operators) computeSpectralToGridPointsMatrix(n int) (V utils.Matrix) {
	var (
		x = o.CollocationPoints(n).Data()
	)
	V = utils.NewMatrix(n, n)
	data := V.Data()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			data[i*n+j] = BasisFunctionValue(o.basis, j, x[i])
		}
	}
	V.SetReadOnly(fmt.Sprintf("%v spectral to grid points matrix, n=%d", o, n))
	return
}

// computeGridPointsToSpectralMatrix inverts V numerically, except for Gauss
// quadrature where the discrete orthogonality relation gives the inverse
// directly: Vinv_ij = V_ji w_j / γ_i.
func (o *Operators) computeGridPointsToSpectralMatrix(n int) (Vinv utils.Matrix) {
	var (
		err error
		V   = o.SpectralToGridPointsMatrix(n)
	)
	switch o.quadrature {
	case Gauss:
		w := o.QuadratureWeights(n).Data()
		Vinv = utils.NewMatrix(n, n)
		data, vData := Vinv.Data(), V.Data()
		for i := 0; i < n; i++ {
			gamma := BasisFunctionNormalizationSquare(o.basis, i)
			for j := 0; j < n; j++ {
				data[i*n+j] = vData[j*n+i] * w[j] / gamma
			}
		}
	default:
		if Vinv, err = V.Inverse(); err != nil {
			panic(fmt.Errorf("error inverting %v Vandermonde matrix, n=%d: %w", o, n, err))
		}
	}
	Vinv.SetReadOnly(fmt.Sprintf("%v grid points to spectral matrix, n=%d", o, n))
	return
}

// computeLinearFilterMatrix forms V diag(1,1,0,...) Vinv as the product of the
// first two columns of V with the first two rows of Vinv.
func (o *Operators) computeLinearFilterMatrix(n int) (F utils.Matrix) {
	var (
		V    = o.SpectralToGridPointsMatrix(n)
		Vinv = o.GridPointsToSpectralMatrix(n)
		k    = min(2, n)
	)
	F = utils.NewMatrix(n, n)
	blas64.Gemm(blas.NoTrans, blas.NoTrans, 1,
		blas64.General{Rows: n, Cols: k, Stride: n, Data: V.Data()},
		blas64.General{Rows: k, Cols: n, Stride: n, Data: Vinv.Data()[:k*n]},
		0, F.RawMatrix())
	F.SetReadOnly(fmt.Sprintf("%v linear filter matrix, n=%d", o, n))
	return
}
