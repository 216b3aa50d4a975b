package main

import (
	"errors"
	"fmt"
)

// Failure classes. Every operation failure wraps exactly one of these so callers
// can classify with errors.Is; the message carries the concrete condition.
var (
	ErrAuthorization = errors.New("authorization error")
	ErrValidation    = errors.New("validation error")
	ErrStateConflict = errors.New("state conflict")
	ErrCapacity      = errors.New("capacity exceeded")
	ErrStaleness     = errors.New("stale input")
)

func authorizationErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrAuthorization, fmt.Sprintf(format, args...))
}

func validationErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func stateConflictErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrStateConflict, fmt.Sprintf(format, args...))
}

func capacityErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrCapacity, fmt.Sprintf(format, args...))
}

func stalenessErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrStaleness, fmt.Sprintf(format, args...))
}
