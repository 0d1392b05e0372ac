package spectral

import (
	"fmt"

	"github.com/notargets/gospectral/utils"
)

// ApplyMatrices applies matrices[d] along dimension d of data, laid out with
// dimension 0 fastest. A zero Matrix (nil M) leaves its dimension unchanged.
// It returns the transformed data and its extents.
func ApplyMatrices(matrices []utils.Matrix, data []float64, extents []int) (result []float64, resultExtents []int) {
	if len(matrices) != len(extents) {
		panic(fmt.Errorf("need one matrix per dimension: %d matrices, %d extents", len(matrices), len(extents)))
	}
	var (
		size = 1
	)
	for _, e := range extents {
		size *= e
	}
	if size != len(data) {
		panic(fmt.Errorf("data length %d does not match extents %v", len(data), extents))
	}
	resultExtents = append([]int(nil), extents...)
	result = append([]float64(nil), data...)
	for d, M := range matrices {
		if M.M == nil {
			continue
		}
		var (
			nr, nc = M.Dims()
			mData  = M.Data()
			stride = 1
			outer  = 1
		)
		if nc != resultExtents[d] {
			panic(fmt.Errorf("matrix for dimension %d has %d columns, extent is %d", d, nc, resultExtents[d]))
		}
		for dd := 0; dd < d; dd++ {
			stride *= resultExtents[dd]
		}
		for dd := d + 1; dd < len(resultExtents); dd++ {
			outer *= resultExtents[dd]
		}
		out := make([]float64, stride*nr*outer)
		for o := 0; o < outer; o++ {
			for s := 0; s < stride; s++ {
				for i := 0; i < nr; i++ {
					var sum float64
					for j, mij := range mData[i*nc : (i+1)*nc] {
						sum += mij * result[s+stride*(j+nc*o)]
					}
					out[s+stride*(i+nr*o)] = sum
				}
			}
		}
		resultExtents[d] = nr
		result = out
	}
	return
}

// RegularGrid interpolates data from the collocation points of one mesh to
// the collocation points of another mesh of the same dimension, one
// interpolation matrix per dimension.
type RegularGrid struct {
	source, target Mesh
	matrices       []utils.Matrix
}

func (l *Library) NewRegularGrid(source, target Mesh) (rg *RegularGrid) {
	if source.Dim() != target.Dim() {
		panic(fmt.Errorf("regular grid interpolation needs meshes of the same dimension: %v -> %v", source, target))
	}
	rg = &RegularGrid{
		source:   source,
		target:   target,
		matrices: make([]utils.Matrix, source.Dim()),
	}
	for d := 0; d < source.Dim(); d++ {
		src, tgt := source.Slice(d), target.Slice(d)
		if src.Equal(tgt) {
			continue
		}
		rg.matrices[d] = l.InterpolationMatrix(src, l.CollocationPoints(tgt).Data())
	}
	return
}

func NewRegularGrid(source, target Mesh) *RegularGrid {
	return Default.NewRegularGrid(source, target)
}

func (rg *RegularGrid) Interpolate(data []float64) (result []float64) {
	result, _ = ApplyMatrices(rg.matrices, data, rg.source.AllExtents())
	return
}

func (rg *RegularGrid) Target() Mesh { return rg.target }
