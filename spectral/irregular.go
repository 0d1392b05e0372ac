package spectral

import (
	"fmt"

	"github.com/james-bowman/sparse"

	"github.com/notargets/gospectral/utils"
)

// IrregularInterpolant interpolates data on a mesh to arbitrary points given
// in the logical coordinates of the element. Row k of the operator is the
// tensor product of the one dimensional interpolation rows of target k, which
// is mostly zeros whenever a coordinate lands on a collocation point, so the
// operator is kept in CSR form.
type IrregularInterpolant struct {
	source   Mesh
	nTargets int
	operator *sparse.CSR
}

// NewIrregularInterpolant builds the operator for targets[k][d], the
// coordinate of target k along dimension d.
func (l *Library) NewIrregularInterpolant(source Mesh, targets [][]float64) (ii *IrregularInterpolant) {
	var (
		dim  = source.Dim()
		nt   = len(targets)
		rows = make([]utils.Matrix, dim)
	)
	for d := 0; d < dim; d++ {
		coords := make([]float64, nt)
		for k, pt := range targets {
			if len(pt) != dim {
				panic(fmt.Errorf("target point %d has %d coordinates, mesh is %d dimensional", k, len(pt), dim))
			}
			coords[k] = pt[d]
		}
		rows[d] = l.InterpolationMatrix(source.Slice(d), coords)
	}
	dok := sparse.NewDOK(max(nt, 1), source.NumberOfGridPoints())
	type entry struct {
		offset int
		value  float64
	}
	for k := 0; k < nt; k++ {
		// Expand the product one dimension at a time, skipping zeros.
		entries := []entry{{0, 1}}
		stride := 1
		for d := 0; d < dim; d++ {
			var (
				n    = source.Extents(d)
				row  = rows[d].Data()[k*n : (k+1)*n]
				next []entry
			)
			for _, e := range entries {
				for j, val := range row {
					if val == 0 {
						continue
					}
					next = append(next, entry{e.offset + j*stride, e.value * val})
				}
			}
			entries = next
			stride *= n
		}
		for _, e := range entries {
			dok.Set(k, e.offset, e.value)
		}
	}
	ii = &IrregularInterpolant{
		source:   source,
		nTargets: nt,
		operator: dok.ToCSR(),
	}
	return
}

func NewIrregularInterpolant(source Mesh, targets [][]float64) *IrregularInterpolant {
	return Default.NewIrregularInterpolant(source, targets)
}

func (ii *IrregularInterpolant) NumberOfTargets() int { return ii.nTargets }
func (ii *IrregularInterpolant) NNZ() int             { return ii.operator.NNZ() }

// Interpolate returns one value per target point.
func (ii *IrregularInterpolant) Interpolate(data []float64) (result []float64) {
	if len(data) != ii.source.NumberOfGridPoints() {
		panic(fmt.Errorf("data length %d does not match mesh %v", len(data), ii.source))
	}
	result = make([]float64, ii.nTargets)
	ii.operator.DoNonZero(func(i, j int, v float64) {
		result[i] += v * data[j]
	})
	return
}
