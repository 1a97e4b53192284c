package config

import "errors"

// Sentinel errors for configuration validation.
var (
	ErrInvalidMaxTransforms       = errors.New("invalid max transforms: must be non-negative")
	ErrInvalidMaxEdges            = errors.New("invalid max edges: must be non-negative")
	ErrInvalidComputeTimeout      = errors.New("invalid compute timeout: must be non-negative")
	ErrInvalidMaxComputeConcurrency = errors.New("invalid max compute concurrency: must be non-negative")
)
