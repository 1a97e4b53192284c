package builtins

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/cakeflow/cake/pkg/registry"
	"github.com/cakeflow/cake/pkg/transform"
	"github.com/cakeflow/cake/pkg/value"
)

// NewExpression builds a Number-valued function Transform whose algorithm
// is a compiled expr-lang/expr formula. bindings names the declared Number
// inputs in declared input order (bindings[i] is bound to the value fed to
// input i, whatever order the formula mentions them in); formula is compiled
// once at construction time and reused on every invocation.
//
// This lets a host register ad hoc arithmetic transforms — "a*2+b", say —
// from a config-supplied string instead of writing a Go Algorithm per
// shape.
func NewExpression(name string, bindings []string, formula string) (*transform.Transform, error) {
	if formula == "" {
		return nil, ErrEmptyFormula
	}
	if len(bindings) == 0 {
		return nil, ErrNoBindings
	}

	typeEnv := make(map[string]float64, len(bindings))
	for _, b := range bindings {
		typeEnv[b] = 0
	}

	program, err := expr.Compile(formula, expr.Env(typeEnv), expr.AsFloat64())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompileFailed, err)
	}

	inputs := make([]transform.Input, len(bindings))
	for i := range bindings {
		inputs[i] = transform.Input{Type: value.Number}
	}

	run := evaluator(program, bindings)

	return transform.NewFunction(name, inputs, []value.Type{value.Number}, run)
}

func evaluator(program *vm.Program, bindings []string) transform.Algorithm {
	return func(inputs []value.Value) []transform.Result {
		env := make(map[string]float64, len(bindings))
		for i, name := range bindings {
			env[name] = value.Float64(inputs[i])
		}

		out, err := expr.Run(program, env)
		if err != nil {
			return []transform.Result{transform.Fail(fmt.Errorf("%w: %v", ErrEvalFailed, err))}
		}
		f, ok := out.(float64)
		if !ok {
			return []transform.Result{transform.Fail(ErrNotNumber)}
		}
		return []transform.Result{transform.Ok(value.NewNumber(f))}
	}
}

// RegisterExpression compiles formula under name with the given bindings
// and registers it into r.
func RegisterExpression(r *registry.Registry, name string, bindings []string, formula string) error {
	t, err := NewExpression(name, bindings, formula)
	if err != nil {
		return err
	}
	return r.Register(t)
}
