package value

import "errors"

// Sentinel errors for value conversion helpers.
var (
	ErrWrongType  = errors.New("value: wrong type for requested conversion")
	ErrNullValue  = errors.New("value: unexpected null value")
)
