package dst

import (
	"fmt"

	"github.com/cakeflow/cake/pkg/transform"
	"github.com/cakeflow/cake/pkg/value"
)

// AddTransform installs t into the graph, borrowing the given descriptor by
// reference (typically one resolved from a shared Registry). It returns the
// freshly minted TransformIdx. Replacing the instance's constant values
// later (SetConstant) never mutates the shared descriptor; see
// AddOwnedTransform for the stricter, always-private variant.
func (g *Graph) AddTransform(t *transform.Transform) TransformIdx {
	g.structMu.Lock()
	defer g.structMu.Unlock()

	idx := g.nextTIdx
	g.nextTIdx++
	g.transforms[idx] = newTransformInstance(t)
	return idx
}

// AddOwnedTransform installs a private copy of t into the graph, so this
// instance can never alias state with any other instance built from the
// same descriptor (including other owned instances of the same
// descriptor).
func (g *Graph) AddOwnedTransform(t *transform.Transform) TransformIdx {
	clone := *t
	clone.Inputs = append([]transform.Input(nil), t.Inputs...)
	clone.Outputs = append([]value.Type(nil), t.Outputs...)
	return g.AddTransform(&clone)
}

// RemoveTransform deletes the transform at idx, detaching every edge that
// touches it (as producer or consumer), clearing its cache entries and those
// of every transform downstream of it, and detaching any sink currently
// pointing at one of its output ports. It is a no-op if idx does not exist.
func (g *Graph) RemoveTransform(idx TransformIdx) {
	g.structMu.Lock()
	defer g.structMu.Unlock()
	g.removeTransformLocked(idx)
}

func (g *Graph) removeTransformLocked(idx TransformIdx) {
	inst, ok := g.transforms[idx]
	if !ok {
		return
	}

	// Clear cached values of this transform and everything downstream while
	// the outgoing edges still exist to walk.
	g.invalidateForward(idx)

	// Detach outgoing edges (this transform as producer).
	for oi := range inst.t.Outputs {
		o := Output{Transform: idx, Output: oi}
		for in := range g.edges[o] {
			delete(g.drivenBy, in)
		}
		delete(g.edges, o)
		delete(g.cache, o)
	}

	// Detach incoming edges (this transform as consumer).
	for ii := range inst.t.Inputs {
		in := Input{Transform: idx, Input: ii}
		if producer, driven := g.drivenBy[in]; driven {
			delete(g.edges[producer], in)
			delete(g.drivenBy, in)
		}
	}

	// Detach any sink pointing at one of this transform's output ports.
	for oid, attached := range g.outputs {
		if attached != nil && attached.Transform == idx {
			g.outputs[oid] = nil
		}
	}

	delete(g.transforms, idx)
}

// Connect adds an edge from producer output o to consumer input i. It
// fails with ErrInvalidOutput/ErrInvalidInput if either port does not
// exist, ErrIncompatibleTypes if their type tags differ, ErrDuplicateEdge
// if i already has a producer, or ErrCycle if the edge would create a
// cycle. The graph is left unchanged on any error.
func (g *Graph) Connect(o Output, i Input) error {
	g.structMu.Lock()
	defer g.structMu.Unlock()

	producer, ok := g.transforms[o.Transform]
	if !ok || !producer.t.OutputExists(o.Output) {
		return fmt.Errorf("%w: %+v", ErrInvalidOutput, o)
	}
	consumer, ok := g.transforms[i.Transform]
	if !ok || !consumer.t.InputExists(i.Input) {
		return fmt.Errorf("%w: %+v", ErrInvalidInput, i)
	}
	if !value.Compatible(producer.t.OutputType(o.Output), consumer.t.InputType(i.Input)) {
		return fmt.Errorf("%w: %+v -> %+v", ErrIncompatibleTypes, o, i)
	}
	if _, driven := g.drivenBy[i]; driven {
		return fmt.Errorf("%w: %+v", ErrDuplicateEdge, i)
	}
	if g.reachable(i.Transform, o.Transform) {
		return fmt.Errorf("%w: %+v -> %+v", ErrCycle, o, i)
	}

	if g.edges[o] == nil {
		g.edges[o] = make(map[Input]struct{})
	}
	g.edges[o][i] = struct{}{}
	g.drivenBy[i] = o

	g.invalidateForward(i.Transform)
	return nil
}

// reachable reports whether to is reachable from from by walking forward
// through edges — i.e. whether a path from -> ... -> to exists. Connect
// uses it, with from/to swapped to the consumer/producer, to detect that a
// new edge would close a cycle.
func (g *Graph) reachable(from, to TransformIdx) bool {
	if from == to {
		return true
	}
	visited := make(map[TransformIdx]bool)
	stack := []TransformIdx{from}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[cur] {
			continue
		}
		visited[cur] = true
		if cur == to {
			return true
		}
		inst, ok := g.transforms[cur]
		if !ok {
			continue
		}
		for oi := range inst.t.Outputs {
			for in := range g.edges[Output{Transform: cur, Output: oi}] {
				if !visited[in.Transform] {
					stack = append(stack, in.Transform)
				}
			}
		}
	}
	return false
}

// Disconnect removes the edge from o to i, if one exists. It is a no-op
// (returning ErrNoEdge) if i is not currently driven by o.
func (g *Graph) Disconnect(o Output, i Input) error {
	g.structMu.Lock()
	defer g.structMu.Unlock()

	producer, driven := g.drivenBy[i]
	if !driven || producer != o {
		return fmt.Errorf("%w: %+v -> %+v", ErrNoEdge, o, i)
	}
	delete(g.edges[o], i)
	delete(g.drivenBy, i)
	g.invalidateForward(i.Transform)
	return nil
}

// CreateOutput mints a fresh, detached sink and returns its id.
func (g *Graph) CreateOutput() OutputId {
	g.structMu.Lock()
	defer g.structMu.Unlock()

	id := g.nextOID
	g.nextOID++
	g.outputs[id] = nil
	return id
}

// AttachOutput points the sink id at producer port o. It fails with
// ErrOutputIDNotFound if id does not exist, or ErrInvalidOutput if o does
// not name an existing port.
func (g *Graph) AttachOutput(id OutputId, o Output) error {
	g.structMu.Lock()
	defer g.structMu.Unlock()

	if _, exists := g.outputs[id]; !exists {
		return fmt.Errorf("%w: %d", ErrOutputIDNotFound, id)
	}
	inst, ok := g.transforms[o.Transform]
	if !ok || !inst.t.OutputExists(o.Output) {
		return fmt.Errorf("%w: %+v", ErrInvalidOutput, o)
	}
	cp := o
	g.outputs[id] = &cp
	return nil
}

// UpdateOutput atomically re-points an existing sink at a new producer
// port; equivalent to detaching then attaching.
func (g *Graph) UpdateOutput(id OutputId, o Output) error {
	return g.AttachOutput(id, o)
}

// RemoveOutput deletes sink id. It is a no-op if id does not exist.
func (g *Graph) RemoveOutput(id OutputId) {
	g.structMu.Lock()
	defer g.structMu.Unlock()
	delete(g.outputs, id)
}

// ResolveOutput returns the producer port currently attached to sink id, or
// ok=false if id does not exist or is detached.
func (g *Graph) ResolveOutput(id OutputId) (o Output, ok bool) {
	g.structMu.RLock()
	defer g.structMu.RUnlock()

	attached, exists := g.outputs[id]
	if !exists || attached == nil {
		return Output{}, false
	}
	return *attached, true
}

// GetDefaultInputs returns the current default-value overrides for idx's
// inputs, in declared order. An element's second return value is false if
// no default is set for that input.
func (g *Graph) GetDefaultInputs(idx TransformIdx) ([]value.Value, []bool, error) {
	g.structMu.RLock()
	defer g.structMu.RUnlock()

	inst, ok := g.transforms[idx]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %d", ErrTransformNotFound, idx)
	}
	values := make([]value.Value, len(inst.defaults))
	has := make([]bool, len(inst.defaults))
	for i, d := range inst.defaults {
		values[i] = d.value
		has[i] = d.has
	}
	return values, has, nil
}

// WriteDefault overrides the default value of idx's i-th input. The new
// value's type must match the transform's declared input type. This clears
// the cache for idx and everything downstream, since an unconnected input
// now resolves to a different value.
func (g *Graph) WriteDefault(idx TransformIdx, i int, v value.Value) error {
	g.structMu.Lock()
	defer g.structMu.Unlock()

	inst, ok := g.transforms[idx]
	if !ok {
		return fmt.Errorf("%w: %d", ErrTransformNotFound, idx)
	}
	if !inst.t.InputExists(i) {
		return fmt.Errorf("%w: %+v", ErrInvalidInput, Input{Transform: idx, Input: i})
	}
	if !value.Compatible(v.Type(), inst.t.InputType(i)) {
		return fmt.Errorf("%w: input %d", ErrDefaultTypeMismatch, i)
	}
	inst.defaults[i] = defaultSlot{value: v, has: true}
	g.invalidateForward(idx)
	return nil
}

// SetConstant replaces a constant transform instance's output values. It
// never mutates the descriptor shared with other instances: it installs a
// fresh, instance-private transform.Transform derived from the original
// (same name and output type tags) with the new values baked in.
func (g *Graph) SetConstant(idx TransformIdx, values []value.Value) error {
	g.structMu.Lock()
	defer g.structMu.Unlock()

	inst, ok := g.transforms[idx]
	if !ok {
		return fmt.Errorf("%w: %d", ErrTransformNotFound, idx)
	}
	if !inst.t.IsConstant() {
		return fmt.Errorf("%w: transform %d is not a constant", ErrConstantArity, idx)
	}
	if len(values) != len(inst.t.Outputs) {
		return fmt.Errorf("%w: %d", ErrConstantArity, idx)
	}
	for i, v := range values {
		if !value.Compatible(v.Type(), inst.t.Outputs[i]) {
			return fmt.Errorf("%w: output %d", ErrDefaultTypeMismatch, i)
		}
	}
	fresh, err := transform.NewConstant(inst.t.Name, values)
	if err != nil {
		return err
	}
	inst.t = fresh
	g.invalidateForward(idx)
	return nil
}
