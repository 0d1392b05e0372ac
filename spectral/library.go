package spectral

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/notargets/gospectral/utils"
)

// Library is the explicitly owned table of Operators, one per implemented
// (basis, quadrature) pair, each created on first use.
type Library struct {
	once  [numBases][numQuadratures]sync.Once
	table [numBases][numQuadratures]*Operators
}

// Default backs the package level mesh functions.
var Default = NewLibrary()

func NewLibrary() *Library {
	return &Library{}
}

func (l *Library) Operators(b Basis, q Quadrature) *Operators {
	mustBeImplemented(b, q)
	l.once[b][q].Do(func() {
		l.table[b][q] = NewOperators(b, q)
	})
	return l.table[b][q]
}

// Warm generates every cached quantity of every implemented pair
// concurrently, one goroutine per pair.
func (l *Library) Warm(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for b := Basis(0); b < numBases; b++ {
		for q := Quadrature(0); q < numQuadratures; q++ {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				o := l.Operators(b, q)
				n := o.MinimumNumberOfPoints()
				o.CollocationPoints(n)
				o.BarycentricWeights(n)
				o.DifferentiationMatrix(n)
				o.SpectralToGridPointsMatrix(n)
				o.GridPointsToSpectralMatrix(n)
				o.LinearFilterMatrix(n)
				return nil
			})
		}
	}
	return g.Wait()
}

func (l *Library) forMesh(m Mesh) (o *Operators, n int) {
	m.mustBeOneDimensional()
	return l.Operators(m.Basis(0), m.Quadrature(0)), m.Extents(0)
}

func (l *Library) CollocationPoints(m Mesh) utils.Vector {
	o, n := l.forMesh(m)
	return o.CollocationPoints(n)
}

func (l *Library) QuadratureWeights(m Mesh) utils.Vector {
	o, n := l.forMesh(m)
	return o.QuadratureWeights(n)
}

func (l *Library) DifferentiationMatrix(m Mesh) utils.Matrix {
	o, n := l.forMesh(m)
	return o.DifferentiationMatrix(n)
}

func (l *Library) SpectralToGridPointsMatrix(m Mesh) utils.Matrix {
	o, n := l.forMesh(m)
	return o.SpectralToGridPointsMatrix(n)
}

func (l *Library) GridPointsToSpectralMatrix(m Mesh) utils.Matrix {
	o, n := l.forMesh(m)
	return o.GridPointsToSpectralMatrix(n)
}

func (l *Library) LinearFilterMatrix(m Mesh) utils.Matrix {
	o, n := l.forMesh(m)
	return o.LinearFilterMatrix(n)
}

func (l *Library) InterpolationMatrix(m Mesh, targets []float64) utils.Matrix {
	o, n := l.forMesh(m)
	return o.InterpolationMatrix(n, targets)
}

// Mesh level queries on the Default library. Each accepts a one dimensional
// mesh, use Mesh.Slice to select a dimension of a higher dimensional mesh.

func CollocationPoints(m Mesh) utils.Vector          { return Default.CollocationPoints(m) }
func QuadratureWeights(m Mesh) utils.Vector          { return Default.QuadratureWeights(m) }
func DifferentiationMatrix(m Mesh) utils.Matrix      { return Default.DifferentiationMatrix(m) }
func SpectralToGridPointsMatrix(m Mesh) utils.Matrix { return Default.SpectralToGridPointsMatrix(m) }
func GridPointsToSpectralMatrix(m Mesh) utils.Matrix { return Default.GridPointsToSpectralMatrix(m) }
func LinearFilterMatrix(m Mesh) utils.Matrix         { return Default.LinearFilterMatrix(m) }
func InterpolationMatrix(m Mesh, targets []float64) utils.Matrix {
	return Default.InterpolationMatrix(m, targets)
}
