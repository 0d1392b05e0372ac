package interpolation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gospectral/spectral"
)

func TestInterpolatorCleanUp(t *testing.T) {
	var (
		ip = NewInterpolator[float64](nil, testBoxes, nil, "A", "B", "C")
		id = 12. / 13
	)
	ip.ReceiveVolumeData(id, 0, elementData(testBoxes[0], id))
	assert.Equal(t, []float64{id}, ip.BufferedTemporalIDs())
	for _, tag := range ip.Tags() {
		assert.Empty(t, ip.CompletedTemporalIDs(tag))
	}

	assert.False(t, ip.CleanUp("A", id))
	assert.Equal(t, []float64{id}, ip.BufferedTemporalIDs())
	assert.Equal(t, []float64{id}, ip.CompletedTemporalIDs("A"))
	assert.Empty(t, ip.CompletedTemporalIDs("B"))
	assert.Empty(t, ip.CompletedTemporalIDs("C"))

	// Repeating a clean up changes nothing
	assert.False(t, ip.CleanUp("A", id))
	assert.Equal(t, []float64{id}, ip.BufferedTemporalIDs())

	assert.False(t, ip.CleanUp("C", id))
	assert.Equal(t, []float64{id}, ip.BufferedTemporalIDs())
	assert.Equal(t, []float64{id}, ip.CompletedTemporalIDs("C"))
	assert.Empty(t, ip.CompletedTemporalIDs("B"))

	assert.True(t, ip.CleanUp("B", id))
	assert.Empty(t, ip.BufferedTemporalIDs())
	for _, tag := range ip.Tags() {
		assert.Empty(t, ip.CompletedTemporalIDs(tag))
	}
	assert.True(t, ip.IsPurged(id))

	// Late data for a purged id is dropped
	assert.Empty(t, ip.ReceiveVolumeData(id, 1, elementData(testBoxes[1], id)))
	assert.Empty(t, ip.BufferedTemporalIDs())

	assert.Panics(t, func() { ip.CleanUp("D", id) })
	assert.Panics(t, func() { NewInterpolator[float64](nil, testBoxes, nil, "A", "A") })
}

func TestInterpolatorDataOrder(t *testing.T) {
	var (
		targets = [][]float64{
			{-0.7, 0.2},  // element 0
			{0.3, -0.9},  // element 1
			{2, 0},       // outside
			{-0.1, 0.95}, // element 0
		}
		check = func(t *testing.T, id float64, values []InterpolatedValues[float64]) {
			got := make(map[int]float64)
			var nan []int
			for _, v := range values {
				assert.Equal(t, "A", v.Tag)
				assert.Equal(t, id, v.ID)
				if v.Vars == nil {
					nan = append(nan, v.Indices...)
					continue
				}
				for i, k := range v.Indices {
					got[k] = v.Vars["u"][i]
				}
			}
			assert.Equal(t, []int{2}, nan)
			require.Len(t, got, 3)
			for _, k := range []int{0, 1, 3} {
				assert.InDelta(t, testField(targets[k], id), got[k], 1.e-12)
			}
		}
	)
	t.Run("points first", func(t *testing.T) {
		ip := NewInterpolator[float64](spectral.NewLibrary(), testBoxes, nil, "A")
		var values []InterpolatedValues[float64]
		values = append(values, ip.ReceivePoints("A", 1, targets)...)
		// Only the unlocated point can be answered so far
		require.Len(t, values, 1)
		values = append(values, ip.ReceiveVolumeData(1, 1, elementData(testBoxes[1], 1))...)
		require.Len(t, values, 2)
		assert.Equal(t, []int{1}, values[1].Indices)
		values = append(values, ip.ReceiveVolumeData(1, 0, elementData(testBoxes[0], 1))...)
		check(t, 1, values)
		// Duplicate points are ignored
		assert.Empty(t, ip.ReceivePoints("A", 1, targets))
	})
	t.Run("data first", func(t *testing.T) {
		ip := NewInterpolator[float64](nil, testBoxes, nil, "A")
		assert.Empty(t, ip.ReceiveVolumeData(2, 0, elementData(testBoxes[0], 2)))
		assert.Empty(t, ip.ReceiveVolumeData(2, 1, elementData(testBoxes[1], 2)))
		check(t, 2, ip.ReceivePoints("A", 2, targets))
		// Every element was served at once, the points are still known
		assert.Empty(t, ip.ReceivePoints("A", 2, targets))
	})
	t.Run("mixed", func(t *testing.T) {
		ip := NewInterpolator[float64](nil, testBoxes, nil, "A")
		var values []InterpolatedValues[float64]
		values = append(values, ip.ReceiveVolumeData(3, 0, elementData(testBoxes[0], 3))...)
		values = append(values, ip.ReceivePoints("A", 3, targets)...)
		// Element 0 and the unlocated point
		require.Len(t, values, 2)
		values = append(values, ip.ReceiveVolumeData(3, 1, elementData(testBoxes[1], 3))...)
		check(t, 3, values)
		assert.Empty(t, ip.ReceivePoints("A", 3, targets))
		// Completing the id on the only tag purges it
		assert.True(t, ip.CleanUp("A", 3))
		assert.Empty(t, ip.ReceivePoints("A", 3, targets))
	})
	t.Run("bad input", func(t *testing.T) {
		ip := NewInterpolator[float64](nil, testBoxes, nil, "A")
		assert.Panics(t, func() { ip.ReceivePoints("B", 1, targets) })
		bad := elementData(testBoxes[0], 1)
		bad.Vars["u"] = bad.Vars["u"][1:]
		assert.Panics(t, func() { ip.ReceiveVolumeData(1, 0, bad) })
		assert.Panics(t, func() { ip.Handle(AddTemporalIDs[float64]{Tag: "A"}) })
	})
}

func TestInterpolatorAllPointsOutside(t *testing.T) {
	ip := NewInterpolator[int](nil, testBoxes, nil, "A")
	values := ip.ReceivePoints("A", 0, [][]float64{{5, 5}, {-5, 0}})
	require.Len(t, values, 1)
	assert.Equal(t, []int{0, 1}, values[0].Indices)

	tg := NewTarget[int]("A", pointList{{5, 5}, {-5, 0}})
	tg.AddTemporalIDs([]int{0})
	tg.ComputeTargetPoints(0)
	assert.True(t, tg.ReceiveValues(0, values[0].Indices, values[0].Vars))
	vars, ok := tg.Results(0)
	assert.True(t, ok)
	assert.Empty(t, vars)
	assert.True(t, ip.CleanUp("A", 0))
	// Data arriving after the id completed everywhere is not buffered
	assert.Empty(t, ip.ReceiveVolumeData(0, 0, elementData(testBoxes[0], 0)))
	assert.Empty(t, ip.BufferedTemporalIDs())
}
