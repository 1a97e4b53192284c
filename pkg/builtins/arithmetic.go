package builtins

import (
	"github.com/cakeflow/cake/pkg/registry"
	"github.com/cakeflow/cake/pkg/transform"
	"github.com/cakeflow/cake/pkg/value"
)

// get1 is a zero-input constant transform producing Integer(1).
func get1() (*transform.Transform, error) {
	return transform.NewConstant("get1", []value.Value{value.NewInt(1)})
}

// plus1 adds one to its single Number input.
func plus1() (*transform.Transform, error) {
	return transform.NewFunction("plus1",
		[]transform.Input{{Type: value.Number}},
		[]value.Type{value.Number},
		func(inputs []value.Value) []transform.Result {
			return []transform.Result{transform.Ok(value.NewNumber(value.Float64(inputs[0]) + 1))}
		},
	)
}

// minus1 subtracts one from its single Number input.
func minus1() (*transform.Transform, error) {
	return transform.NewFunction("minus1",
		[]transform.Input{{Type: value.Number}},
		[]value.Type{value.Number},
		func(inputs []value.Value) []transform.Result {
			return []transform.Result{transform.Ok(value.NewNumber(value.Float64(inputs[0]) - 1))}
		},
	)
}

// add sums two Number inputs.
func add() (*transform.Transform, error) {
	return transform.NewFunction("add",
		[]transform.Input{{Type: value.Number}, {Type: value.Number}},
		[]value.Type{value.Number},
		func(inputs []value.Value) []transform.Result {
			return []transform.Result{transform.Ok(value.NewNumber(value.Float64(inputs[0]) + value.Float64(inputs[1])))}
		},
	)
}

// multiply multiplies two Number inputs.
func multiply() (*transform.Transform, error) {
	return transform.NewFunction("multiply",
		[]transform.Input{{Type: value.Number}, {Type: value.Number}},
		[]value.Type{value.Number},
		func(inputs []value.Value) []transform.Result {
			return []transform.Result{transform.Ok(value.NewNumber(value.Float64(inputs[0]) * value.Float64(inputs[1])))}
		},
	)
}

// concat joins two String inputs.
func concat() (*transform.Transform, error) {
	return transform.NewFunction("concat",
		[]transform.Input{{Type: value.String}, {Type: value.String}},
		[]value.Type{value.String},
		func(inputs []value.Value) []transform.Result {
			return []transform.Result{transform.Ok(value.NewString(value.String_(inputs[0]) + value.String_(inputs[1])))}
		},
	)
}

// RegisterArithmetic registers the fixed-arity example transforms
// (get1, plus1, minus1, add, multiply, concat) into r.
func RegisterArithmetic(r *registry.Registry) error {
	builders := []func() (*transform.Transform, error){get1, plus1, minus1, add, multiply, concat}
	for _, build := range builders {
		t, err := build()
		if err != nil {
			return err
		}
		if err := r.Register(t); err != nil {
			return err
		}
	}
	return nil
}
