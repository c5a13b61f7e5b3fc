package todo

import "fmt"

// ValidationError reports rejected user input.
// Use errors.Is(err, ErrValidation) for simple checks, or errors.As to read
// the offending Field.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

// Unwrap exposes both ErrValidation and the field-level cause.
func (e *ValidationError) Unwrap() []error {
	return []error{ErrValidation, e.Err}
}

// Storage operations reported by StorageError.
const (
	OpRead  = "read"
	OpWrite = "write"
)

// StorageError reports a backend failure or an unreadable collection.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Key, e.Err)
}

// Unwrap exposes ErrStorageRead or ErrStorageWrite along with the cause.
func (e *StorageError) Unwrap() []error {
	if e.Op == OpWrite {
		return []error{ErrStorageWrite, e.Err}
	}
	return []error{ErrStorageRead, e.Err}
}
