package usecase

import "errors"

// ErrPRNExists is returned when another user already registered the PRN number.
var ErrPRNExists = errors.New("prn number already exists")

// ValidationError carries per-field messages for invalid profile input.
type ValidationError struct {
	Fields map[string]string
}

// Error implements the error interface.
func (e *ValidationError) Error() string { return "invalid profile data" }

// AsValidation unwraps err into a *ValidationError when possible.
func AsValidation(err error) (*ValidationError, bool) {
	var v *ValidationError
	ok := errors.As(err, &v)
	return v, ok
}
