package tensor

import "errors"

// Precondition errors. Callers match them with errors.Is; every returned error wraps one.
var (
	ErrShapeMismatch   = errors.New("shape mismatch")
	ErrUnsupportedType = errors.New("unsupported data type")
	ErrInvalidArgument = errors.New("invalid argument")
)
