package interpolation

import (
	"fmt"
	"math"

	"github.com/notargets/gospectral/spectral"
	"github.com/notargets/gospectral/utils"
)

// TargetPoints generates the physical coordinates of an interpolation
// target. Coordinates returns a fresh slice on every call.
type TargetPoints interface {
	Coordinates() [][]float64
	Len() int
}

// LineSegment is NumberOfPoints uniformly spaced points from Begin to End,
// both included.
type LineSegment struct {
	Begin, End     []float64
	NumberOfPoints int
}

func NewLineSegment(begin, end []float64, numberOfPoints int) (ls LineSegment, err error) {
	ls = LineSegment{
		Begin:          append([]float64(nil), begin...),
		End:            append([]float64(nil), end...),
		NumberOfPoints: numberOfPoints,
	}
	err = ls.Validate()
	return
}

func (ls LineSegment) Validate() error {
	switch {
	case len(ls.Begin) == 0 || len(ls.Begin) != len(ls.End):
		return fmt.Errorf("LineSegment expects begin %v and end %v of the same non zero dimension", ls.Begin, ls.End)
	case ls.NumberOfPoints < 2:
		return fmt.Errorf("LineSegment expects at least 2 points, have %d", ls.NumberOfPoints)
	}
	return nil
}

func (ls LineSegment) Len() int { return ls.NumberOfPoints }

func (ls LineSegment) Coordinates() (coords [][]float64) {
	var (
		s = utils.Linspace(0, 1, ls.NumberOfPoints)
	)
	coords = make([][]float64, ls.NumberOfPoints)
	for k := range coords {
		coords[k] = make([]float64, len(ls.Begin))
		for d := range ls.Begin {
			coords[k][d] = ls.Begin[d] + s[k]*(ls.End[d]-ls.Begin[d])
		}
	}
	return
}

// WedgeSectionTorus is a section of a torus about the z axis, bounded in
// radius and in polar angle theta and covering the full azimuth. Radial and
// theta points are uniform or Legendre Gauss-Lobatto points mapped onto
// the interval, phi points are uniform on [0, 2π). Radius varies fastest,
// then theta, then phi.
type WedgeSectionTorus struct {
	MinRadius, MaxRadius float64
	MinTheta, MaxTheta   float64

	NumberOfRadialPoints int
	NumberOfThetaPoints  int
	NumberOfPhiPoints    int

	UniformRadialGrid bool
	UniformThetaGrid  bool
}

func NewWedgeSectionTorus(minRadius, maxRadius, minTheta, maxTheta float64,
	nRadial, nTheta, nPhi int, uniformRadial, uniformTheta bool) (wst WedgeSectionTorus, err error) {
	wst = WedgeSectionTorus{
		MinRadius:            minRadius,
		MaxRadius:            maxRadius,
		MinTheta:             minTheta,
		MaxTheta:             maxTheta,
		NumberOfRadialPoints: nRadial,
		NumberOfThetaPoints:  nTheta,
		NumberOfPhiPoints:    nPhi,
		UniformRadialGrid:    uniformRadial,
		UniformThetaGrid:     uniformTheta,
	}
	err = wst.Validate()
	return
}

func (wst WedgeSectionTorus) Validate() error {
	switch {
	case !(wst.MinRadius < wst.MaxRadius):
		return fmt.Errorf("WedgeSectionTorus expects min_radius < max_radius, have %v >= %v", wst.MinRadius, wst.MaxRadius)
	case wst.MinRadius < 0:
		return fmt.Errorf("WedgeSectionTorus expects a non negative min_radius, have %v", wst.MinRadius)
	case !(wst.MinTheta < wst.MaxTheta):
		return fmt.Errorf("WedgeSectionTorus expects min_theta < max_theta, have %v >= %v", wst.MinTheta, wst.MaxTheta)
	case wst.MinTheta < 0 || wst.MaxTheta > math.Pi:
		return fmt.Errorf("WedgeSectionTorus expects theta within [0, π], have [%v, %v]", wst.MinTheta, wst.MaxTheta)
	case wst.NumberOfPhiPoints < 1:
		return fmt.Errorf("WedgeSectionTorus expects at least 1 phi point, have %d", wst.NumberOfPhiPoints)
	}
	if err := checkGridPoints("radial", wst.NumberOfRadialPoints, wst.UniformRadialGrid); err != nil {
		return err
	}
	return checkGridPoints("theta", wst.NumberOfThetaPoints, wst.UniformThetaGrid)
}

func checkGridPoints(label string, n int, uniform bool) error {
	if n < 2 {
		return fmt.Errorf("WedgeSectionTorus expects at least 2 %s points, have %d", label, n)
	}
	if max := spectral.MaximumNumberOfPoints(spectral.Legendre); !uniform && n > max {
		return fmt.Errorf("WedgeSectionTorus supports at most %d non uniform %s points, have %d", max, label, n)
	}
	return nil
}

func (wst WedgeSectionTorus) Len() int {
	return wst.NumberOfRadialPoints * wst.NumberOfThetaPoints * wst.NumberOfPhiPoints
}

func (wst WedgeSectionTorus) Coordinates() (coords [][]float64) {
	var (
		r     = gridPoints(wst.MinRadius, wst.MaxRadius, wst.NumberOfRadialPoints, wst.UniformRadialGrid)
		theta = gridPoints(wst.MinTheta, wst.MaxTheta, wst.NumberOfThetaPoints, wst.UniformThetaGrid)
		nPhi  = wst.NumberOfPhiPoints
	)
	coords = make([][]float64, 0, wst.Len())
	for k := 0; k < nPhi; k++ {
		phi := 2 * math.Pi * float64(k) / float64(nPhi)
		sinPhi, cosPhi := math.Sincos(phi)
		for _, th := range theta {
			sinTheta, cosTheta := math.Sincos(th)
			for _, rad := range r {
				coords = append(coords, []float64{
					rad * sinTheta * cosPhi,
					rad * sinTheta * sinPhi,
					rad * cosTheta,
				})
			}
		}
	}
	return
}

// gridPoints maps either uniform or Legendre Gauss-Lobatto points onto [a, b].
func gridPoints(a, b float64, n int, uniform bool) (x []float64) {
	if uniform {
		return utils.Linspace(a, b, n)
	}
	xi := spectral.CollocationPoints(spectral.NewMesh1D(n, spectral.Legendre, spectral.GaussLobatto)).Data()
	x = make([]float64, n)
	for i, v := range xi {
		x[i] = a + 0.5*(v+1)*(b-a)
	}
	return
}
