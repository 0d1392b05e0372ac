package interpolation

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// State is the progress of one temporal id at a target. Handle moves a new id
// from Pending to AwaitingData within the same message, so Pending is only
// observable between direct calls to AddTemporalIDs and ComputeTargetPoints,
// never through System.State.
type State uint8

const (
	Unknown State = iota
	Pending
	AwaitingData
	Completed
)

var statePrintNames = []string{"Unknown", "Pending", "AwaitingData", "Completed"}

func (s State) String() string {
	if int(s) >= len(statePrintNames) {
		return fmt.Sprintf("State(%d)", uint8(s))
	}
	return statePrintNames[s]
}

// Target tracks one interpolation target: the FIFO of temporal ids still
// waiting for data, the state of every id it has been given, the point
// indices already filled per id and the values received for them.
type Target[T cmp.Ordered] struct {
	tag     string
	points  TargetPoints
	nPoints int
	queue   []T
	states  map[T]State
	filled  map[T]map[int]struct{}
	results map[T]map[string][]float64
}

func NewTarget[T cmp.Ordered](tag string, points TargetPoints) *Target[T] {
	if points.Len() < 1 {
		panic(fmt.Errorf("target %q has no points", tag))
	}
	return &Target[T]{
		tag:     tag,
		points:  points,
		nPoints: points.Len(),
		states:  make(map[T]State),
		filled:  make(map[T]map[int]struct{}),
		results: make(map[T]map[string][]float64),
	}
}

func (tg *Target[T]) Tag() string { return tg.tag }

// AddTemporalIDs appends the ids not yet known to the target to the pending
// queue, in order and without duplicates, and returns them. Known ids,
// including completed ones, are left untouched.
func (tg *Target[T]) AddTemporalIDs(ids []T) (added []T) {
	for _, id := range ids {
		if tg.states[id] != Unknown {
			continue
		}
		tg.states[id] = Pending
		tg.queue = append(tg.queue, id)
		added = append(added, id)
	}
	return
}

// ComputeTargetPoints moves a pending id to AwaitingData and returns the
// points to send to the interpolator.
func (tg *Target[T]) ComputeTargetPoints(id T) [][]float64 {
	if st := tg.states[id]; st != Pending {
		panic(fmt.Errorf("target %q: computing points for temporal id %v in state %v", tg.tag, id, st))
	}
	tg.states[id] = AwaitingData
	tg.filled[id] = make(map[int]struct{}, tg.nPoints)
	return tg.points.Coordinates()
}

// ReceiveValues stores interpolated values for an id and reports whether
// every point of the target has now been filled. On completion the id leaves
// the queue and its scratch state is released. Values for an id that is not
// awaiting data are ignored.
func (tg *Target[T]) ReceiveValues(id T, indices []int, vars map[string][]float64) (complete bool) {
	if tg.states[id] != AwaitingData {
		return false
	}
	var (
		filled = tg.filled[id]
		res    = tg.results[id]
	)
	for _, k := range indices {
		if k < 0 || k >= tg.nPoints {
			panic(fmt.Errorf("target %q: point index %d out of range [0, %d)", tg.tag, k, tg.nPoints))
		}
	}
	if res == nil {
		res = make(map[string][]float64, len(vars))
		tg.results[id] = res
	}
	for name, values := range vars {
		if len(values) != len(indices) {
			panic(fmt.Errorf("target %q: variable %q has %d values for %d indices", tg.tag, name, len(values), len(indices)))
		}
		dst := res[name]
		if dst == nil {
			dst = make([]float64, tg.nPoints)
			for i := range dst {
				dst[i] = math.NaN()
			}
			res[name] = dst
		}
		for i, k := range indices {
			dst[k] = values[i]
		}
	}
	for _, k := range indices {
		filled[k] = struct{}{}
	}
	if len(filled) < tg.nPoints {
		return false
	}
	tg.states[id] = Completed
	delete(tg.filled, id)
	if i := slices.Index(tg.queue, id); i >= 0 {
		tg.queue = slices.Delete(tg.queue, i, i+1)
	}
	return true
}

// Pending returns the queue of ids that have not completed, oldest first.
func (tg *Target[T]) Pending() []T { return slices.Clone(tg.queue) }

// Completed returns the completed ids in increasing order.
func (tg *Target[T]) Completed() (ids []T) {
	for id, st := range tg.states {
		if st == Completed {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return
}

func (tg *Target[T]) State(id T) State { return tg.states[id] }

// FilledIndices returns the point indices received so far for an id that is
// awaiting data.
func (tg *Target[T]) FilledIndices(id T) (indices []int) {
	for k := range tg.filled[id] {
		indices = append(indices, k)
	}
	slices.Sort(indices)
	return
}

// Results returns the values of every variable at every target point for a
// completed id.
func (tg *Target[T]) Results(id T) (vars map[string][]float64, ok bool) {
	if tg.states[id] != Completed {
		return nil, false
	}
	vars = make(map[string][]float64, len(tg.results[id]))
	for name, values := range tg.results[id] {
		vars[name] = slices.Clone(values)
	}
	return vars, true
}

// Handle applies one message and returns the messages it produces. An
// AddTemporalIDs message computes and sends points for each newly added id,
// an InterpolatedValues message that completes an id sends CleanUp.
func (tg *Target[T]) Handle(msg Message[T]) (out []Message[T]) {
	switch m := msg.(type) {
	case AddTemporalIDs[T]:
		for _, id := range tg.AddTemporalIDs(m.IDs) {
			out = append(out, ReceivePoints[T]{Tag: tg.tag, ID: id, Coords: tg.ComputeTargetPoints(id)})
		}
	case InterpolatedValues[T]:
		if tg.ReceiveValues(m.ID, m.Indices, m.Vars) {
			out = append(out, CleanUp[T]{Tag: tg.tag, ID: m.ID})
		}
	default:
		panic(fmt.Errorf("target %q: unexpected message %T", tg.tag, msg))
	}
	return
}
