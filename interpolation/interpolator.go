package interpolation

import (
	"cmp"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/notargets/gospectral/spectral"
)

// Holder is the per target tag state kept by the interpolator: the ids whose
// points have arrived, the points still waiting for element data, and the
// temporal ids the target has reported complete.
type Holder[T cmp.Ordered] struct {
	received  map[T]struct{}
	requests  map[T]map[ElementID]*elementPoints
	completed map[T]struct{}
}

type elementPoints struct {
	indices []int
	logical [][]float64
}

func newHolder[T cmp.Ordered]() *Holder[T] {
	return &Holder[T]{
		received:  make(map[T]struct{}),
		requests:  make(map[T]map[ElementID]*elementPoints),
		completed: make(map[T]struct{}),
	}
}

// Interpolator buffers element volume data per temporal id and interpolates
// it to target points as soon as both the points and the data of an element
// are present. The buffer for an id is purged once every registered target
// has cleaned it up.
type Interpolator[T cmp.Ordered] struct {
	library *spectral.Library
	locator ElementLocator
	logger  *slog.Logger
	volume  map[T]map[ElementID]VolumeData
	holders map[string]*Holder[T]
	// purged keeps one entry per cleaned up id for the life of the
	// interpolator so late points and data are never buffered again.
	purged  map[T]struct{}
}

func NewInterpolator[T cmp.Ordered](library *spectral.Library, locator ElementLocator, logger *slog.Logger,
	tags ...string) (ip *Interpolator[T]) {
	if library == nil {
		library = spectral.Default
	}
	if logger == nil {
		logger = slog.Default()
	}
	ip = &Interpolator[T]{
		library: library,
		locator: locator,
		logger:  logger,
		volume:  make(map[T]map[ElementID]VolumeData),
		holders: make(map[string]*Holder[T], len(tags)),
		purged:  make(map[T]struct{}),
	}
	for _, tag := range tags {
		if _, dup := ip.holders[tag]; dup {
			panic(fmt.Errorf("duplicate interpolation target tag %q", tag))
		}
		ip.holders[tag] = newHolder[T]()
	}
	return
}

func (ip *Interpolator[T]) holder(tag string) *Holder[T] {
	h, ok := ip.holders[tag]
	if !ok {
		panic(fmt.Errorf("interpolation target tag %q is not registered with the interpolator", tag))
	}
	return h
}

// ReceivePoints locates a target's points and interpolates every element
// whose data is already buffered. Points outside every element are returned
// at once without values, which leaves them NaN at the target.
func (ip *Interpolator[T]) ReceivePoints(tag string, id T, coords [][]float64) (out []InterpolatedValues[T]) {
	h := ip.holder(tag)
	if _, ok := ip.purged[id]; ok {
		ip.logger.Warn("points received for purged temporal id", "tag", tag, "temporal_id", id)
		return
	}
	if _, ok := h.received[id]; ok {
		ip.logger.Warn("duplicate points received", "tag", tag, "temporal_id", id)
		return
	}
	h.received[id] = struct{}{}
	var (
		groups     = make(map[ElementID]*elementPoints)
		unlocated  []int
		elementIDs []ElementID
	)
	for k, x := range coords {
		elem, logical, ok := ip.locator.Locate(x)
		if !ok {
			unlocated = append(unlocated, k)
			continue
		}
		g := groups[elem]
		if g == nil {
			g = &elementPoints{}
			groups[elem] = g
			elementIDs = append(elementIDs, elem)
		}
		g.indices = append(g.indices, k)
		g.logical = append(g.logical, logical)
	}
	if len(unlocated) != 0 {
		ip.logger.Warn("target points outside of every element", "tag", tag, "temporal_id", id, "count", len(unlocated))
		out = append(out, InterpolatedValues[T]{Tag: tag, ID: id, Indices: unlocated})
	}
	slices.Sort(elementIDs)
	for _, elem := range elementIDs {
		if data, ok := ip.volume[id][elem]; ok {
			out = append(out, ip.interpolate(tag, id, data, groups[elem]))
			delete(groups, elem)
		}
	}
	if len(groups) != 0 {
		h.requests[id] = groups
	}
	return
}

// ReceiveVolumeData buffers one element's data and interpolates it to every
// target waiting on that element. Data for a purged id is dropped.
func (ip *Interpolator[T]) ReceiveVolumeData(id T, elem ElementID, data VolumeData) (out []InterpolatedValues[T]) {
	if _, ok := ip.purged[id]; ok {
		ip.logger.Debug("dropping volume data for purged temporal id", "temporal_id", id, "element", elem)
		return
	}
	data.check()
	buf := ip.volume[id]
	if buf == nil {
		buf = make(map[ElementID]VolumeData)
		ip.volume[id] = buf
	}
	buf[elem] = data
	for _, tag := range slices.Sorted(maps.Keys(ip.holders)) {
		h := ip.holders[tag]
		groups := h.requests[id]
		if g, ok := groups[elem]; ok {
			out = append(out, ip.interpolate(tag, id, data, g))
			delete(groups, elem)
			if len(groups) == 0 {
				delete(h.requests, id)
			}
		}
	}
	return
}

// CleanUp records that tag has completed id. Once every registered tag has
// done so the buffered data for id is purged and CleanUp returns true,
// otherwise nothing else changes.
func (ip *Interpolator[T]) CleanUp(tag string, id T) (purged bool) {
	h := ip.holder(tag)
	h.completed[id] = struct{}{}
	delete(h.requests, id)
	for _, hh := range ip.holders {
		if _, ok := hh.completed[id]; !ok {
			return false
		}
	}
	delete(ip.volume, id)
	for _, hh := range ip.holders {
		delete(hh.completed, id)
		delete(hh.received, id)
	}
	ip.purged[id] = struct{}{}
	ip.logger.Debug("purged volume data", "temporal_id", id)
	return true
}

func (ip *Interpolator[T]) interpolate(tag string, id T, data VolumeData, g *elementPoints) InterpolatedValues[T] {
	var (
		ii   = ip.library.NewIrregularInterpolant(data.Mesh, g.logical)
		vars = make(map[string][]float64, len(data.Vars))
	)
	for name, values := range data.Vars {
		vars[name] = ii.Interpolate(values)
	}
	return InterpolatedValues[T]{Tag: tag, ID: id, Indices: g.indices, Vars: vars}
}

// Handle applies one message and returns the messages it produces.
func (ip *Interpolator[T]) Handle(msg Message[T]) (out []Message[T]) {
	var values []InterpolatedValues[T]
	switch m := msg.(type) {
	case ReceivePoints[T]:
		values = ip.ReceivePoints(m.Tag, m.ID, m.Coords)
	case ReceiveVolumeData[T]:
		values = ip.ReceiveVolumeData(m.ID, m.Element, m.Data)
	case CleanUp[T]:
		ip.CleanUp(m.Tag, m.ID)
	default:
		panic(fmt.Errorf("interpolator: unexpected message %T", msg))
	}
	for _, v := range values {
		out = append(out, v)
	}
	return
}

// BufferedTemporalIDs returns the ids with buffered volume data in
// increasing order.
func (ip *Interpolator[T]) BufferedTemporalIDs() []T {
	return slices.Sorted(maps.Keys(ip.volume))
}

// CompletedTemporalIDs returns the ids tag has cleaned up that are still
// waiting on other tags.
func (ip *Interpolator[T]) CompletedTemporalIDs(tag string) []T {
	return slices.Sorted(maps.Keys(ip.holder(tag).completed))
}

func (ip *Interpolator[T]) IsPurged(id T) bool {
	_, ok := ip.purged[id]
	return ok
}

func (ip *Interpolator[T]) Tags() []string {
	return slices.Sorted(maps.Keys(ip.holders))
}
