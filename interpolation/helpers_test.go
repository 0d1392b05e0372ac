package interpolation

import (
	"github.com/notargets/gospectral/spectral"
)

// Two unit elements side by side covering [-1,1]x[-1,1].
var testBoxes = BoxElements{
	{ID: 0, Lower: []float64{-1, -1}, Upper: []float64{0, 1}},
	{ID: 1, Lower: []float64{0, -1}, Upper: []float64{1, 1}},
}

var testMesh = spectral.NewUniformMesh(2, 5, spectral.Legendre, spectral.GaussLobatto)

// testField is resolved exactly by testMesh.
func testField(x []float64, t float64) float64 {
	return 1 + t + x[0]*x[1] - 2*x[0]*x[0]*x[0] + x[1]*x[1]*x[1]*x[1]
}

// elementData samples testField at the collocation points of one box.
func elementData(b Box, t float64) VolumeData {
	var (
		xi   = spectral.CollocationPoints(testMesh.Slice(0)).Data()
		eta  = spectral.CollocationPoints(testMesh.Slice(1)).Data()
		u    = make([]float64, testMesh.NumberOfGridPoints())
		phys = func(d int, r float64) float64 {
			return b.Lower[d] + 0.5*(r+1)*(b.Upper[d]-b.Lower[d])
		}
	)
	for j, s := range eta {
		for i, r := range xi {
			u[testMesh.StorageIndex([]int{i, j})] = testField([]float64{phys(0, r), phys(1, s)}, t)
		}
	}
	return VolumeData{Mesh: testMesh, Vars: map[string][]float64{"u": u}}
}

type pointList [][]float64

func (pl pointList) Len() int { return len(pl) }

func (pl pointList) Coordinates() [][]float64 {
	coords := make([][]float64, len(pl))
	for k, x := range pl {
		coords[k] = append([]float64(nil), x...)
	}
	return coords
}
