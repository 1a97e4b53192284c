package builtins

import "errors"

var (
	// ErrEmptyFormula is returned by NewExpression when given an empty
	// formula string.
	ErrEmptyFormula = errors.New("builtins: formula must not be empty")
	// ErrNoBindings is returned by NewExpression when given no named
	// input bindings; a formula with no inputs should be a constant
	// instead.
	ErrNoBindings = errors.New("builtins: expression transform needs at least one binding")
	// ErrCompileFailed wraps an expr-lang/expr compilation error.
	ErrCompileFailed = errors.New("builtins: expression compilation failed")
	// ErrEvalFailed wraps an expr-lang/expr evaluation error.
	ErrEvalFailed = errors.New("builtins: expression evaluation failed")
	// ErrNotNumber is returned when an expression transform's formula
	// evaluates to something other than a number.
	ErrNotNumber = errors.New("builtins: expression result is not a number")
)
