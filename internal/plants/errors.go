package plants

import (
	"errors"
	"fmt"
)

// Error kinds. Use errors.Is against these to decide how to report a
// registry failure; the typed errors below carry the details.
var (
	ErrValidation  = errors.New("invalid plant field")
	ErrNotFound    = errors.New("plant not found")
	ErrPersistence = errors.New("plant store failure")
)

// ValidationError reports a bad field value on add or update.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is matches ErrValidation.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFoundError reports an operation on an unknown plant ID.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("plant %q not found", e.ID)
}

// Is matches ErrNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// PersistenceError wraps a failure of the underlying store.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s plants: %v", e.Op, e.Err)
}

// Is matches ErrPersistence.
func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

// Unwrap exposes the store error.
func (e *PersistenceError) Unwrap() error { return e.Err }
