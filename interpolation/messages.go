package interpolation

import (
	"cmp"
	"fmt"

	"github.com/notargets/gospectral/spectral"
)

type ElementID int

// VolumeData is the field data of one element at one temporal id, each
// variable stored on the collocation points of Mesh.
type VolumeData struct {
	Mesh spectral.Mesh
	Vars map[string][]float64
}

func (vd VolumeData) check() {
	n := vd.Mesh.NumberOfGridPoints()
	for name, data := range vd.Vars {
		if len(data) != n {
			panic(fmt.Errorf("volume variable %q has %d values, mesh %v has %d points", name, len(data), vd.Mesh, n))
		}
	}
}

// Address names the actor a Message is delivered to, either the interpolator
// or the target with the given tag.
type Address struct {
	Interpolator bool
	Tag          string
}

var InterpolatorAddress = Address{Interpolator: true}

func TargetAddress(tag string) Address { return Address{Tag: tag} }

func (a Address) String() string {
	if a.Interpolator {
		return "interpolator"
	}
	return "target/" + a.Tag
}

// Message is one of the five messages exchanged between the driver, the
// elements, the targets and the interpolator.
type Message[T cmp.Ordered] interface {
	Recipient() Address
}

// AddTemporalIDs asks a target to interpolate at the given ids. Sent by the
// evolution driver.
type AddTemporalIDs[T cmp.Ordered] struct {
	Tag string
	IDs []T
}

// ReceivePoints carries the coordinates of a target's points for one id to
// the interpolator.
type ReceivePoints[T cmp.Ordered] struct {
	Tag    string
	ID     T
	Coords [][]float64
}

// ReceiveVolumeData delivers one element's data for one id to the
// interpolator.
type ReceiveVolumeData[T cmp.Ordered] struct {
	ID      T
	Element ElementID
	Data    VolumeData
}

// InterpolatedValues returns values at a subset of a target's points, in the
// order of Indices. Points no element contains carry NaN.
type InterpolatedValues[T cmp.Ordered] struct {
	Tag     string
	ID      T
	Indices []int
	Vars    map[string][]float64
}

// CleanUp tells the interpolator that a target has everything it needs for
// an id.
type CleanUp[T cmp.Ordered] struct {
	Tag string
	ID  T
}

func (m AddTemporalIDs[T]) Recipient() Address     { return TargetAddress(m.Tag) }
func (m ReceivePoints[T]) Recipient() Address      { return InterpolatorAddress }
func (m ReceiveVolumeData[T]) Recipient() Address  { return InterpolatorAddress }
func (m InterpolatedValues[T]) Recipient() Address { return TargetAddress(m.Tag) }
func (m CleanUp[T]) Recipient() Address            { return InterpolatorAddress }
