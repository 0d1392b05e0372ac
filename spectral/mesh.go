package spectral

import (
	"fmt"
	"strings"
)

// Mesh describes the discretization of an element, one (basis, quadrature,
// extent) triple per dimension. Values are immutable, storage order has
// dimension 0 varying fastest.
type Mesh struct {
	extents     []int
	bases       []Basis
	quadratures []Quadrature
}

const MaxMeshDim = 3

func NewMesh(extents []int, bases []Basis, quadratures []Quadrature) (m Mesh) {
	var (
		dim = len(extents)
	)
	if dim < 1 || dim > MaxMeshDim {
		panic(fmt.Errorf("mesh dimension must be between 1 and %d, have %d", MaxMeshDim, dim))
	}
	if len(bases) != dim || len(quadratures) != dim {
		panic(fmt.Errorf("mesh needs one basis and quadrature per dimension: %d extents, %d bases, %d quadratures",
			dim, len(bases), len(quadratures)))
	}
	for d := 0; d < dim; d++ {
		checkNumberOfPoints(bases[d], quadratures[d], extents[d])
	}
	m = Mesh{
		extents:     append([]int(nil), extents...),
		bases:       append([]Basis(nil), bases...),
		quadratures: append([]Quadrature(nil), quadratures...),
	}
	return
}

func NewMesh1D(extent int, b Basis, q Quadrature) Mesh {
	return NewMesh([]int{extent}, []Basis{b}, []Quadrature{q})
}

func NewUniformMesh(dim, extent int, b Basis, q Quadrature) Mesh {
	var (
		extents     = make([]int, dim)
		bases       = make([]Basis, dim)
		quadratures = make([]Quadrature, dim)
	)
	for d := 0; d < dim; d++ {
		extents[d], bases[d], quadratures[d] = extent, b, q
	}
	return NewMesh(extents, bases, quadratures)
}

func (m Mesh) Dim() int                    { return len(m.extents) }
func (m Mesh) Extents(d int) int           { return m.extents[d] }
func (m Mesh) Basis(d int) Basis           { return m.bases[d] }
func (m Mesh) Quadrature(d int) Quadrature { return m.quadratures[d] }

func (m Mesh) AllExtents() []int {
	return append([]int(nil), m.extents...)
}

func (m Mesh) NumberOfGridPoints() (n int) {
	n = 1
	for _, e := range m.extents {
		n *= e
	}
	return
}

// Slice returns the one dimensional mesh of dimension d.
func (m Mesh) Slice(d int) Mesh {
	if d < 0 || d >= m.Dim() {
		panic(fmt.Errorf("slice dimension %d out of range for a %d dimensional mesh", d, m.Dim()))
	}
	return Mesh{
		extents:     []int{m.extents[d]},
		bases:       []Basis{m.bases[d]},
		quadratures: []Quadrature{m.quadratures[d]},
	}
}

// StorageIndex maps a per dimension index to the flat offset.
func (m Mesh) StorageIndex(index []int) (offset int) {
	stride := 1
	for d, i := range index {
		offset += i * stride
		stride *= m.extents[d]
	}
	return
}

func (m Mesh) Equal(o Mesh) bool {
	if m.Dim() != o.Dim() {
		return false
	}
	for d := range m.extents {
		if m.extents[d] != o.extents[d] || m.bases[d] != o.bases[d] || m.quadratures[d] != o.quadratures[d] {
			return false
		}
	}
	return true
}

func (m Mesh) String() string {
	var parts []string
	for d := range m.extents {
		parts = append(parts, fmt.Sprintf("%d(%v,%v)", m.extents[d], m.bases[d], m.quadratures[d]))
	}
	return "[" + strings.Join(parts, " x ") + "]"
}

func (m Mesh) mustBeOneDimensional() {
	if m.Dim() != 1 {
		panic(fmt.Errorf("spectral quantities need a one dimensional mesh, have %v", m))
	}
}
