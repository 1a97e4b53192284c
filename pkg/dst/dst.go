package dst

import (
	"sync"

	"github.com/cakeflow/cake/pkg/transform"
	"github.com/cakeflow/cake/pkg/value"
)

// TransformIdx stably identifies a transform instance within a Graph. Once
// minted it is never reused, even after the instance is removed.
type TransformIdx int

// OutputId stably identifies a sink, independent of whether it is currently
// attached to a producer port. Once minted it is never reused.
type OutputId int

// Output identifies a producer port: the output-th output of the transform
// at Transform.
type Output struct {
	Transform TransformIdx
	Output    int
}

// Input identifies a consumer port: the input-th input of the transform at
// Transform.
type Input struct {
	Transform TransformIdx
	Input     int
}

type defaultSlot struct {
	value value.Value
	has   bool
}

type transformInstance struct {
	t        *transform.Transform
	defaults []defaultSlot
}

func newTransformInstance(t *transform.Transform) *transformInstance {
	defaults := make([]defaultSlot, len(t.Inputs))
	for i, in := range t.Inputs {
		if in.HasDefault {
			defaults[i] = defaultSlot{value: in.Default, has: true}
		}
	}
	return &transformInstance{t: t, defaults: defaults}
}

// Graph is the dataflow DAG: transforms, edges between their ports, named
// output sinks, and a per-producer-port result cache. The zero value is not
// valid; use New.
type Graph struct {
	structMu sync.RWMutex

	transforms map[TransformIdx]*transformInstance
	nextTIdx   TransformIdx

	// edges maps a producer Output to the set of Inputs it drives.
	edges map[Output]map[Input]struct{}
	// drivenBy maps a driven Input back to its single producer Output, used
	// to enforce input exclusivity in O(1) and to disconnect in reverse.
	drivenBy map[Input]Output

	outputs   map[OutputId]*Output
	nextOID   OutputId

	cache map[Output]*cacheSlot
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		transforms: make(map[TransformIdx]*transformInstance),
		edges:      make(map[Output]map[Input]struct{}),
		drivenBy:   make(map[Input]Output),
		outputs:    make(map[OutputId]*Output),
		cache:      make(map[Output]*cacheSlot),
	}
}

// TransformCount returns the number of live transforms. The Builder itself
// never caps this; a host enforcing config.MaxTransforms checks this before
// calling AddTransform.
func (g *Graph) TransformCount() int {
	g.structMu.RLock()
	defer g.structMu.RUnlock()
	return len(g.transforms)
}

// EdgeCount returns the number of live edges. The Builder itself never caps
// this; a host enforcing config.MaxEdges checks this before calling Connect.
func (g *Graph) EdgeCount() int {
	g.structMu.RLock()
	defer g.structMu.RUnlock()
	return len(g.drivenBy)
}

// transformAt is an internal, lock-free accessor; callers must hold
// structMu.
func (g *Graph) transformAt(idx TransformIdx) (*transformInstance, bool) {
	inst, ok := g.transforms[idx]
	return inst, ok
}

// Descriptor returns the transform.Transform currently backing idx. Used
// by Compute to start a Caller and by Serialization to recover a Function
// reference's name or a Constant's baked-in values.
func (g *Graph) Descriptor(idx TransformIdx) (*transform.Transform, bool) {
	g.structMu.RLock()
	defer g.structMu.RUnlock()
	inst, ok := g.transforms[idx]
	if !ok {
		return nil, false
	}
	return inst.t, true
}

// InputSource resolves what feeds input i of transform idx: either the
// producer Output driving it via an edge, or its per-instance default
// value. exists is false if idx/i do not exist; when the input exists but
// has neither a producer nor a default, exists is true and both hasEdge and
// hasDefault are false (the input is effectively unfed).
func (g *Graph) InputSource(idx TransformIdx, i int) (producer Output, hasEdge bool, def value.Value, hasDefault bool, exists bool) {
	g.structMu.RLock()
	defer g.structMu.RUnlock()

	inst, ok := g.transforms[idx]
	if !ok || !inst.t.InputExists(i) {
		return Output{}, false, value.Value{}, false, false
	}
	exists = true
	if producer, hasEdge = g.drivenBy[Input{Transform: idx, Input: i}]; hasEdge {
		return producer, true, value.Value{}, false, true
	}
	d := inst.defaults[i]
	return Output{}, false, d.value, d.has, true
}
