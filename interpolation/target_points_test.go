package interpolation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineSegment(t *testing.T) {
	ls, err := NewLineSegment([]float64{-1, 0}, []float64{1, 2}, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, ls.Len())
	coords := ls.Coordinates()
	assert.Len(t, coords, 5)
	assert.Equal(t, []float64{-1, 0}, coords[0])
	assert.InDeltaSlice(t, []float64{0, 1}, coords[2], 1.e-15)
	assert.Equal(t, []float64{1, 2}, coords[4])
	// Fresh coordinates on every call
	coords[0][0] = 10
	assert.Equal(t, -1., ls.Coordinates()[0][0])

	_, err = NewLineSegment([]float64{0}, []float64{1, 1}, 5)
	assert.Error(t, err)
	_, err = NewLineSegment(nil, nil, 5)
	assert.Error(t, err)
	_, err = NewLineSegment([]float64{0}, []float64{1}, 1)
	assert.Error(t, err)
}

func TestWedgeSectionTorus(t *testing.T) {
	{ // Option validation
		_, err := NewWedgeSectionTorus(2, 1, 0.5, 1, 3, 3, 4, true, true)
		assert.ErrorContains(t, err, "min_radius < max_radius")
		_, err = NewWedgeSectionTorus(1, 1, 0.5, 1, 3, 3, 4, true, true)
		assert.ErrorContains(t, err, "min_radius < max_radius")
		_, err = NewWedgeSectionTorus(1, 2, 1, 0.5, 3, 3, 4, true, true)
		assert.ErrorContains(t, err, "min_theta < max_theta")
		_, err = NewWedgeSectionTorus(1, 2, 0.5, 4, 3, 3, 4, true, true)
		assert.Error(t, err)
		_, err = NewWedgeSectionTorus(-1, 2, 0.5, 1, 3, 3, 4, true, true)
		assert.Error(t, err)
		_, err = NewWedgeSectionTorus(1, 2, 0.5, 1, 1, 3, 4, true, true)
		assert.ErrorContains(t, err, "radial")
		_, err = NewWedgeSectionTorus(1, 2, 0.5, 1, 3, 3, 0, true, true)
		assert.ErrorContains(t, err, "phi")
		_, err = NewWedgeSectionTorus(1, 2, 0.5, 1, 3, 21, 4, true, false)
		assert.ErrorContains(t, err, "theta")
		_, err = NewWedgeSectionTorus(1, 2, 0.5, 1, 3, 21, 4, true, true)
		assert.NoError(t, err)
	}
	{ // Uniform grids, radius fastest then theta then phi
		wst, err := NewWedgeSectionTorus(1, 2, math.Pi/4, math.Pi/2, 3, 2, 4, true, true)
		require.NoError(t, err)
		coords := wst.Coordinates()
		require.Len(t, coords, wst.Len())
		assert.Equal(t, 24, wst.Len())
		s := math.Sqrt(0.5)
		assert.InDeltaSlice(t, []float64{s, 0, s}, coords[0], 1.e-15)
		assert.InDeltaSlice(t, []float64{1.5 * s, 0, 1.5 * s}, coords[1], 1.e-15)
		assert.InDeltaSlice(t, []float64{2 * s, 0, 2 * s}, coords[2], 1.e-15)
		assert.InDeltaSlice(t, []float64{1, 0, 0}, coords[3], 1.e-15)
		// Second phi plane is at phi = π/2
		assert.InDeltaSlice(t, []float64{0, s, s}, coords[6], 1.e-15)
		for _, x := range coords {
			r := math.Sqrt(x[0]*x[0] + x[1]*x[1] + x[2]*x[2])
			assert.True(t, r >= 1-1.e-14 && r <= 2+1.e-14)
		}
	}
	{ // Legendre Gauss-Lobatto radial points include both ends with a
		// midpoint for odd counts
		wst, err := NewWedgeSectionTorus(1, 3, 0, math.Pi, 5, 3, 1, false, true)
		require.NoError(t, err)
		coords := wst.Coordinates()
		// theta = 0 is the z axis
		radii := []float64{coords[0][2], coords[1][2], coords[2][2], coords[3][2], coords[4][2]}
		assert.InDelta(t, 1., radii[0], 1.e-15)
		assert.InDelta(t, 2., radii[2], 1.e-15)
		assert.InDelta(t, 3., radii[4], 1.e-15)
		assert.InDelta(t, 2-math.Sqrt(3./7), radii[1], 1.e-14)
		assert.InDelta(t, 2+math.Sqrt(3./7), radii[3], 1.e-14)
	}
}

func TestBoxElements(t *testing.T) {
	be, err := NewBoxElements(testBoxes...)
	require.NoError(t, err)
	{
		id, xi, ok := be.Locate([]float64{-0.5, 0.5})
		assert.True(t, ok)
		assert.Equal(t, ElementID(0), id)
		assert.InDeltaSlice(t, []float64{0, 0.5}, xi, 1.e-15)
	}
	{ // The shared face belongs to the first box
		id, xi, ok := be.Locate([]float64{0, 0})
		assert.True(t, ok)
		assert.Equal(t, ElementID(0), id)
		assert.Equal(t, []float64{1, 0}, xi)
	}
	{ // Roundoff outside the boundary snaps onto it
		id, xi, ok := be.Locate([]float64{1 + 1.e-14, -1})
		assert.True(t, ok)
		assert.Equal(t, ElementID(1), id)
		assert.Equal(t, []float64{1, -1}, xi)
	}
	{
		_, _, ok := be.Locate([]float64{1.5, 0})
		assert.False(t, ok)
	}
	assert.Panics(t, func() { be.Locate([]float64{0}) })

	_, err = NewBoxElements(Box{ID: 0, Lower: []float64{0, 0}, Upper: []float64{1}})
	assert.Error(t, err)
	_, err = NewBoxElements(Box{ID: 0, Lower: []float64{0, 1}, Upper: []float64{1, 1}})
	assert.Error(t, err)
	_, err = NewBoxElements(testBoxes[0], Box{ID: 0, Lower: []float64{5, 5}, Upper: []float64{6, 6}})
	assert.ErrorContains(t, err, "duplicate")
	_, err = NewBoxElements(testBoxes[0], Box{ID: 2, Lower: []float64{5}, Upper: []float64{6}})
	assert.Error(t, err)
}
