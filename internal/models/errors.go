package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for the blog service. Handlers map these to HTTP statuses;
// everything else collapses to a generic 500.
var (
	// ErrNotFound means the id did not resolve to an existing post
	ErrNotFound = errors.New("blog not found")

	// ErrDuplicateTitle means a post with the same title already exists
	ErrDuplicateTitle = errors.New("a blog with this title already exists")
)

// ValidationError reports a missing or invalid request field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError for the given field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// StorageError wraps an unexpected document-store or file-store failure.
// Its detail is logged server-side and never sent to the client.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps err with the failing operation name
func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}
