package interpolation

import (
	"fmt"

	"github.com/notargets/gospectral/utils"
)

// ElementLocator finds the element containing a point and the point's
// logical coordinates in [-1,1]^D within that element.
type ElementLocator interface {
	Locate(x []float64) (id ElementID, logical []float64, ok bool)
}

// Box is an axis aligned element.
type Box struct {
	ID           ElementID
	Lower, Upper []float64
}

// BoxElements locates points in a set of axis aligned boxes, each mapped
// affinely onto the logical cube. Boxes are searched in order and the first
// one containing the point claims it, so points on a shared face go to the
// earlier box.
type BoxElements []Box

func NewBoxElements(boxes ...Box) (be BoxElements, err error) {
	seen := make(map[ElementID]bool)
	for i, b := range boxes {
		switch {
		case len(b.Lower) == 0 || len(b.Lower) != len(b.Upper):
			err = fmt.Errorf("box %d: lower %v and upper %v corners must have the same non zero dimension",
				i, b.Lower, b.Upper)
		case len(b.Lower) != len(boxes[0].Lower):
			err = fmt.Errorf("box %d is %d dimensional, box 0 is %d dimensional", i, len(b.Lower), len(boxes[0].Lower))
		case seen[b.ID]:
			err = fmt.Errorf("box %d: duplicate element id %d", i, b.ID)
		}
		if err != nil {
			return nil, err
		}
		for d := range b.Lower {
			if !(b.Lower[d] < b.Upper[d]) {
				return nil, fmt.Errorf("box %d: lower corner %v must be below upper corner %v", i, b.Lower, b.Upper)
			}
		}
		seen[b.ID] = true
	}
	be = append(BoxElements(nil), boxes...)
	return
}

func (be BoxElements) Locate(x []float64) (id ElementID, logical []float64, ok bool) {
	for _, b := range be {
		if len(x) != len(b.Lower) {
			panic(fmt.Errorf("point %v does not match the %d dimensional elements", x, len(b.Lower)))
		}
		if logical, ok = b.logical(x); ok {
			return b.ID, logical, true
		}
	}
	return
}

func (b Box) logical(x []float64) (xi []float64, ok bool) {
	xi = make([]float64, len(x))
	for d := range x {
		r := 2*(x[d]-b.Lower[d])/(b.Upper[d]-b.Lower[d]) - 1
		switch {
		case r < -1-utils.NODETOL || r > 1+utils.NODETOL:
			return nil, false
		case r < -1:
			r = -1
		case r > 1:
			r = 1
		}
		xi[d] = r
	}
	return xi, true
}
