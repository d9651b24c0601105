package application

import (
	"errors"
	"fmt"

	"imgtag/internal/domain"
)

// Sentinel errors for common conditions
var (
	ErrNotFound          = errors.New("not found")
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrValidationFailed  = errors.New("validation failed")
	ErrNotConfirmed      = errors.New("operation not confirmed")
	ErrOutsideSentinel   = errors.New("path is outside the sorted-view subtree")

	// ErrInvalidPolicy re-exports the domain sentinel so adapters can
	// match it without importing domain.
	ErrInvalidPolicy = domain.ErrInvalidPolicy
)

// ValidationError represents an input validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// MetadataError represents a tag store failure on one file. It is
// recorded per file and never aborts a batch.
type MetadataError struct {
	Path   string
	Op     string // "read" or "write"
	Reason error
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("cannot %s tags on %s: %v", e.Op, e.Path, e.Reason)
}

func (e *MetadataError) Unwrap() error {
	return e.Reason
}

// FilesystemError represents a copy/link/remove failure on one item.
type FilesystemError struct {
	Path   string
	Op     string
	Reason error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Reason)
}

func (e *FilesystemError) Unwrap() error {
	return e.Reason
}

// ValidationFailure blocks a CSV import unless explicitly overridden.
type ValidationFailure struct {
	File   string
	Errors int
}

func (e *ValidationFailure) Error() string {
	return fmt.Sprintf("%s failed validation with %d error(s)", e.File, e.Errors)
}

func (e *ValidationFailure) Is(target error) bool {
	return target == ErrValidationFailed
}
