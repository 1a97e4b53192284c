package transform

import (
	"fmt"

	"github.com/cakeflow/cake/pkg/value"
)

// Input describes one declared input port: its required type and an
// optional default value used when the port is left unconnected.
type Input struct {
	Type    value.Type
	Default value.Value
	HasDefault bool
}

// Result is the outcome of computing a single declared output: either a
// Value of the declared type, or an algorithm-reported error. The zero
// value of Result is never valid; use Ok or Fail to construct one.
type Result struct {
	Value value.Value
	Err   error
}

// Ok wraps a successful output value.
func Ok(v value.Value) Result { return Result{Value: v} }

// Fail wraps an algorithm-reported failure for a single output slot.
func Fail(err error) Result { return Result{Err: err} }

// Algorithm is a pure function from fed input values (in declared order) to
// one Result per declared output (in declared order). It must return a
// slice whose length equals the number of declared outputs, and every
// successful Result's Value must carry the corresponding declared output
// type.
type Algorithm func(inputs []value.Value) []Result

// Transform is the immutable descriptor of a typed node. Two kinds exist:
// function transforms carry an Algorithm over their declared Inputs;
// constant transforms carry no inputs and a fixed set of output values
// produced by a trivial algorithm closed over them. NewFunction also accepts
// zero inputs, and such a function transform reports IsConstant.
type Transform struct {
	Name    string
	Inputs  []Input
	Outputs []value.Type
	Run     Algorithm
}

// NewFunction builds a function Transform. The algorithm is trusted to
// respect Outputs; callers that violate this contract will see
// ErrAlgorithmArity or a later type mismatch surfaced by the evaluator.
func NewFunction(name string, inputs []Input, outputs []value.Type, run Algorithm) (*Transform, error) {
	if len(outputs) == 0 {
		return nil, ErrNoOutputs
	}
	for i, in := range inputs {
		if in.HasDefault && !value.Compatible(in.Default.Type(), in.Type) {
			return nil, fmt.Errorf("%w: input %d", ErrDefaultTypeMismatch, i)
		}
	}
	return &Transform{Name: name, Inputs: inputs, Outputs: outputs, Run: run}, nil
}

// NewConstant builds a zero-input Transform whose declared outputs are
// exactly the given values, in order. Its type tags are derived from the
// values themselves.
func NewConstant(name string, values []value.Value) (*Transform, error) {
	if len(values) == 0 {
		return nil, ErrNoOutputs
	}
	outputs := make([]value.Type, len(values))
	for i, v := range values {
		outputs[i] = v.Type()
	}
	captured := append([]value.Value(nil), values...)
	run := func(_ []value.Value) []Result {
		out := make([]Result, len(captured))
		for i, v := range captured {
			out[i] = Ok(v)
		}
		return out
	}
	return &Transform{Name: name, Inputs: nil, Outputs: outputs, Run: run}, nil
}

// IsConstant reports whether t takes no inputs.
func (t *Transform) IsConstant() bool {
	return len(t.Inputs) == 0
}

// InputExists reports whether input index i is declared.
func (t *Transform) InputExists(i int) bool {
	return i >= 0 && i < len(t.Inputs)
}

// OutputExists reports whether output index i is declared.
func (t *Transform) OutputExists(i int) bool {
	return i >= 0 && i < len(t.Outputs)
}

// InputType returns the declared type of input i. Callers must have
// checked InputExists; out-of-range access is a programming error and
// panics, matching the treatment of bounds violations elsewhere in the
// package.
func (t *Transform) InputType(i int) value.Type {
	return t.Inputs[i].Type
}

// OutputType returns the declared type of output i.
func (t *Transform) OutputType(i int) value.Type {
	return t.Outputs[i]
}

// Start begins a new invocation in the feeding phase.
func (t *Transform) Start() *Caller {
	return &Caller{
		transform: t,
		fed:       make([]value.Value, 0, len(t.Inputs)),
	}
}

// Caller drives the two-phase feed/call protocol for a single invocation of
// a Transform. It is not safe for concurrent use; each goroutine that wants
// to invoke a transform must Start its own Caller.
type Caller struct {
	transform *Transform
	fed       []value.Value
	called    bool
}

// Feed appends the next input value, in declared order. It fails with
// ErrWrongType if v's type does not match the next declared input, or
// ErrArityMismatch if every declared input has already been fed.
func (c *Caller) Feed(v value.Value) error {
	if c.called {
		return ErrAlreadyCalled
	}
	i := len(c.fed)
	if i >= len(c.transform.Inputs) {
		return ErrArityMismatch
	}
	want := c.transform.Inputs[i].Type
	if !value.Compatible(v.Type(), want) {
		return fmt.Errorf("%w: input %d wants %s, got %s", ErrWrongType, i, want.FriendlyName(), v.Type().FriendlyName())
	}
	c.fed = append(c.fed, v)
	return nil
}

// Call runs the algorithm once every declared input has been fed, and
// returns one Result per declared output. It fails with ErrNotFullyFed
// (which wraps ErrArityMismatch) if fewer than the declared number of
// inputs were fed, and ErrAlgorithmArity
// if the underlying algorithm violated its output-count contract.
func (c *Caller) Call() ([]Result, error) {
	if c.called {
		return nil, ErrAlreadyCalled
	}
	if len(c.fed) != len(c.transform.Inputs) {
		return nil, ErrNotFullyFed
	}
	c.called = true
	results := c.transform.Run(c.fed)
	if len(results) != len(c.transform.Outputs) {
		return nil, ErrAlgorithmArity
	}
	return results, nil
}
