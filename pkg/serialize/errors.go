package serialize

import "errors"

var (
	// ErrUnknownTransformKind is returned on import when a transform
	// record's Kind is neither "function" nor "constant".
	ErrUnknownTransformKind = errors.New("serialize: unknown transform kind")
	// ErrUnresolvedTransform is returned on import when a function
	// record's Name is not found in the supplied registry.
	ErrUnresolvedTransform = errors.New("serialize: unresolved transform name")
	// ErrUnknownValueKind is returned when decoding a value record whose
	// Kind is not one of "number", "string", "bool".
	ErrUnknownValueKind = errors.New("serialize: unknown value kind")
	// ErrDanglingReference is returned on import when an edge or output
	// record refers to a transform index not present in the document.
	ErrDanglingReference = errors.New("serialize: dangling transform reference")
)
