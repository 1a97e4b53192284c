package transform

import (
	"errors"
	"fmt"
)

// Sentinel errors for the feed/call protocol and transform descriptor
// validation.
var (
	ErrWrongType       = errors.New("transform: fed value does not match declared input type")
	ErrArityMismatch   = errors.New("transform: wrong number of inputs fed")
	ErrAlreadyCalled   = errors.New("transform: caller already called")
	ErrNotFullyFed     = fmt.Errorf("%w: call before all inputs were fed", ErrArityMismatch)
	ErrNoOutputs       = errors.New("transform: descriptor must declare at least one output")
	ErrAlgorithmArity  = errors.New("transform: algorithm returned wrong number of outputs")
	ErrDefaultTypeMismatch = errors.New("transform: default value does not match declared input type")
)
