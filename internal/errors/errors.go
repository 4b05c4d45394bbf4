package errors

import "fmt"

// ErrorCode represents a beegen error code.
type ErrorCode string

const (
	ErrInvalidRequest    ErrorCode = "INVALID_REQUEST"    // bad input parameters
	ErrInvalidDictionary ErrorCode = "INVALID_DICTIONARY" // dictionary unreadable or unusable
	ErrSamplingExhausted ErrorCode = "SAMPLING_EXHAUSTED" // attempt budget spent without an accepted puzzle
	ErrIDCollision       ErrorCode = "ID_COLLISION"       // puzzle ID collisions persisted past the retry budget
	ErrNotFound          ErrorCode = "NOT_FOUND"          // batch file or word mark missing
	ErrInternal          ErrorCode = "INTERNAL"           // unexpected failure
)

// GenError represents a structured error with code, message, and details.
type GenError struct {
	Code    ErrorCode
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *GenError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates an error for invalid request parameters.
func NewInvalidRequest(msg string) *GenError {
	return &GenError{
		Code:    ErrInvalidRequest,
		Message: msg,
	}
}

// NewInvalidDictionary creates an error for an unreadable or unusable dictionary.
func NewInvalidDictionary(msg string) *GenError {
	return &GenError{
		Code:    ErrInvalidDictionary,
		Message: msg,
	}
}

// NewSamplingExhausted creates an error for when the per-slot attempt budget
// is spent without producing an accepted puzzle. The run fails as a whole;
// the current dictionary cannot satisfy the constraints.
func NewSamplingExhausted(slot, attempts int) *GenError {
	return &GenError{
		Code:    ErrSamplingExhausted,
		Message: fmt.Sprintf("no acceptable puzzle for slot %d after %d attempts", slot, attempts),
		Details: map[string]any{"slot": slot, "attempts": attempts},
	}
}

// NewIDCollision creates an error for persistent puzzle ID collisions.
func NewIDCollision(id string, retries int) *GenError {
	return &GenError{
		Code:    ErrIDCollision,
		Message: fmt.Sprintf("puzzle ID %q still collides after %d retries", id, retries),
		Details: map[string]any{"id": id, "retries": retries},
	}
}

// NewNotFound creates an error for a missing file or record.
func NewNotFound(identifier string) *GenError {
	return &GenError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewInternal creates an error for unexpected internal failures.
func NewInternal(err error) *GenError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &GenError{
		Code:    ErrInternal,
		Message: msg,
	}
}

// Is checks if an error is a GenError with the given code.
func Is(err error, code ErrorCode) bool {
	if gErr, ok := err.(*GenError); ok {
		return gErr.Code == code
	}
	return false
}
