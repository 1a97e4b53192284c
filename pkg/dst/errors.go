package dst

import "errors"

// Sentinel errors for graph structural operations. The graph is left
// unchanged whenever one of these is returned.
var (
	ErrInvalidOutput      = errors.New("dst: output port does not exist")
	ErrInvalidInput       = errors.New("dst: input port does not exist")
	ErrIncompatibleTypes  = errors.New("dst: producer and consumer port types are incompatible")
	ErrDuplicateEdge      = errors.New("dst: input port is already driven by an edge")
	ErrCycle              = errors.New("dst: edge would introduce a cycle")
	ErrTransformNotFound  = errors.New("dst: transform index does not exist")
	ErrOutputIDNotFound   = errors.New("dst: output id does not exist")
	ErrNoEdge             = errors.New("dst: no edge exists between the given ports")
	ErrDefaultTypeMismatch = errors.New("dst: default value does not match declared input type")
	ErrConstantArity      = errors.New("dst: constant value count does not match transform outputs")
)
