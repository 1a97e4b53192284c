package registry

import "errors"

// Sentinel errors for registry operations.
var (
	ErrAlreadyRegistered = errors.New("registry: transform already registered under this name")
	ErrNotFound          = errors.New("registry: no transform registered under this name")
)
