package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gospectral/interpolation"
	"github.com/notargets/gospectral/spectral"
)

var input = []byte(`
Title: "Two element slab"
Mesh:
  Basis: legendre
  Quadrature: gauss-lobatto
  Extents: [5, 4]
Elements:
  - ID: 0
    Lower: [-1, -1]
    Upper: [0, 1]
  - ID: 1
    Lower: [0, -1]
    Upper: [1, 1]
Targets:
  - Tag: centerline
    LineSegment:
      Begin: [-1, 0]
      End: [1, 0]
      NumberOfPoints: 9
TemporalIDs: [0, 0.5, 1]
Field:
  Terms:
    - Coefficient: 2
      Powers: [1, 0]
    - Coefficient: -1
      Powers: [2, 3]
      TimePower: 1
`)

func TestParse(t *testing.T) {
	var ip InterpolationParameters
	require.NoError(t, ip.Parse(input))
	assert.Equal(t, "Two element slab", ip.Title)
	assert.Equal(t, []float64{0, 0.5, 1}, ip.TemporalIDs)
	assert.Equal(t, "u", ip.Field.Name)

	m, err := ip.BuildMesh()
	require.NoError(t, err)
	assert.True(t, m.Equal(spectral.NewMesh([]int{5, 4},
		[]spectral.Basis{spectral.Legendre, spectral.Legendre},
		[]spectral.Quadrature{spectral.GaussLobatto, spectral.GaussLobatto})))

	be, err := ip.BuildElements()
	require.NoError(t, err)
	id, _, ok := be.Locate([]float64{0.5, 0})
	assert.True(t, ok)
	assert.Equal(t, interpolation.ElementID(1), id)

	targets, err := ip.BuildTargets()
	require.NoError(t, err)
	require.Contains(t, targets, "centerline")
	assert.Equal(t, 9, targets["centerline"].Len())

	// 2x - t x^2 y^3
	assert.InDelta(t, 2*0.5-0.5*0.25*8, ip.Field.Evaluate([]float64{0.5, 2}, 0.5), 1.e-15)
	assert.NotPanics(t, ip.Print)
}

func TestParseErrors(t *testing.T) {
	var cases = map[string]string{
		"basis": `
Mesh: {Basis: fourier, Quadrature: gauss, Extents: [3]}
Elements: [{ID: 0, Lower: [0], Upper: [1]}]
Targets: [{Tag: a, LineSegment: {Begin: [0], End: [1], NumberOfPoints: 3}}]
TemporalIDs: [0]`,
		"extent": `
Mesh: {Basis: legendre, Quadrature: gausslobatto, Extents: [1]}
Elements: [{ID: 0, Lower: [0], Upper: [1]}]
Targets: [{Tag: a, LineSegment: {Begin: [0], End: [1], NumberOfPoints: 3}}]
TemporalIDs: [0]`,
		"element dimension": `
Mesh: {Basis: legendre, Quadrature: gauss, Extents: [3]}
Elements: [{ID: 0, Lower: [0, 0], Upper: [1, 1]}]
Targets: [{Tag: a, LineSegment: {Begin: [0], End: [1], NumberOfPoints: 3}}]
TemporalIDs: [0]`,
		"two generators": `
Mesh: {Basis: legendre, Quadrature: gauss, Extents: [3]}
Elements: [{ID: 0, Lower: [0], Upper: [1]}]
Targets:
  - Tag: a
    LineSegment: {Begin: [0], End: [1], NumberOfPoints: 3}
    WedgeSectionTorus: {MinRadius: 1, MaxRadius: 2, MinTheta: 0, MaxTheta: 1,
      NumberOfRadialPoints: 3, NumberOfThetaPoints: 3, NumberOfPhiPoints: 3}
TemporalIDs: [0]`,
		"torus": `
Mesh: {Basis: chebyshev, Quadrature: gauss, Extents: [3, 3, 3]}
Elements: [{ID: 0, Lower: [0, 0, 0], Upper: [1, 1, 1]}]
Targets:
  - Tag: a
    WedgeSectionTorus: {MinRadius: 2, MaxRadius: 1, MinTheta: 0, MaxTheta: 1,
      NumberOfRadialPoints: 3, NumberOfThetaPoints: 3, NumberOfPhiPoints: 3}
TemporalIDs: [0]`,
		"temporal ids": `
Mesh: {Basis: legendre, Quadrature: gauss, Extents: [3]}
Elements: [{ID: 0, Lower: [0], Upper: [1]}]
Targets: [{Tag: a, LineSegment: {Begin: [0], End: [1], NumberOfPoints: 3}}]`,
		"field": `
Mesh: {Basis: legendre, Quadrature: gauss, Extents: [3]}
Elements: [{ID: 0, Lower: [0], Upper: [1]}]
Targets: [{Tag: a, LineSegment: {Begin: [0], End: [1], NumberOfPoints: 3}}]
TemporalIDs: [0]
Field: {Terms: [{Coefficient: 1, Powers: [1, 1]}]}`,
		"yaml": `Mesh: [`,
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			var ip InterpolationParameters
			assert.Error(t, ip.Parse([]byte(text)))
		})
	}
	{ // A valid torus target
		var ip InterpolationParameters
		require.NoError(t, ip.Parse([]byte(`
Mesh: {Basis: chebyshev, Quadrature: gauss, Extents: [3, 3, 3]}
Elements: [{ID: 0, Lower: [-3, -3, -3], Upper: [3, 3, 3]}]
Targets:
  - Tag: torus
    WedgeSectionTorus: {MinRadius: 1, MaxRadius: 2, MinTheta: 0.5, MaxTheta: 2,
      NumberOfRadialPoints: 3, NumberOfThetaPoints: 4, NumberOfPhiPoints: 5,
      UniformRadialGrid: true}
TemporalIDs: [0]`)))
		targets, err := ip.BuildTargets()
		require.NoError(t, err)
		assert.Equal(t, 60, targets["torus"].Len())
	}
}
