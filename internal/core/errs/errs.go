// Package errs holds the error taxonomy shared by the core services.
// Callers match with errors.Is; the HTTP adapter maps each sentinel to a status.
package errs

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")
	ErrStorage    = errors.New("storage failure")
)

// StorageError wraps a driver error so it matches both ErrStorage and the cause.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Op, ErrStorage, e.Err)
}

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

func (e *StorageError) Unwrap() error { return e.Err }

// Storage wraps err as a StorageError. A nil err stays nil.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// Validation returns an ErrValidation carrying a human readable reason.
func Validation(reason string) error {
	return fmt.Errorf("%w: %s", ErrValidation, reason)
}
