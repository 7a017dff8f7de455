package errors

import (
	"fmt"
	"time"
)

// ErrorCategory classifies different types of errors that can occur
// while persisting or restoring accumulator state. This helps in proper
// error handling and debugging of the system.
type ErrorCategory int

const (
	// ErrorStorage indicates errors related to underlying storage operations
	// such as file I/O, disk space, permissions, or filesystem issues.
	ErrorStorage ErrorCategory = iota + 1

	// ErrorCompression indicates errors during snapshot compression or
	// decompression, such as corrupt compressed data.
	ErrorCompression

	// ErrorEncoding indicates a snapshot that cannot be encoded or decoded,
	// such as a truncated frame, unknown version or integrity mismatch.
	ErrorEncoding

	// ErrorArgument indicates a caller supplied value that the engine rejects.
	ErrorArgument
)

// String returns the string representation of the error category.
func (c ErrorCategory) String() string {
	switch c {
	case ErrorStorage:
		return "storage"
	case ErrorCompression:
		return "compression"
	case ErrorEncoding:
		return "encoding"
	case ErrorArgument:
		return "argument"
	default:
		return "unknown"
	}
}

// Error is a categorized failure of a named operation.
type Error struct {
	Err       error
	Operation string
	Timestamp time.Time
	Category  ErrorCategory
}

// New wraps err as a categorized Error stamped with the current time.
func New(category ErrorCategory, operation string, err error) *Error {
	return &Error{Err: err, Operation: operation, Category: category, Timestamp: time.Now()}
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%v] %s: %v", e.Category, e.Operation, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsRetryAble returns whether errors of this category can be retried.
// This helps callers decide whether to retry failed operations.
func (e *Error) IsRetryAble() bool {
	switch e.Category {
	case ErrorStorage:
		// Storage errors might be temporary (e.g., disk full, locked file).
		return true
	default:
		return false
	}
}
