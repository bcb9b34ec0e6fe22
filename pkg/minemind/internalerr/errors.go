package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrContradiction = errors.New("contradictory knowledge")
	ErrOutOfBounds   = errors.New("cell out of bounds")
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrNotFound      = errors.New("not found")
)
