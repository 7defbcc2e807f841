package ising

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter indicates a size, temperature or count outside its domain.
	ErrInvalidParameter = errors.New("ising: invalid parameter")
	// ErrNonFinite indicates a NaN or infinite temperature, which leaves the
	// Boltzmann factor undefined.
	ErrNonFinite = errors.New("ising: non-finite value")
	// ErrInvalidSpin indicates a spin value other than +1 or -1.
	ErrInvalidSpin = errors.New("ising: spin must be +1 or -1")
)

// ParamError reports which parameter was rejected. It wraps one of the
// sentinel errors above.
type ParamError struct {
	Field string
	Value any
	Err   error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%v: %s=%v", e.Err, e.Field, e.Value)
}

func (e *ParamError) Unwrap() error { return e.Err }

func paramErr(field string, value any, err error) error {
	return &ParamError{Field: field, Value: value, Err: err}
}
