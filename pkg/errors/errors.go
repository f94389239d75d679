package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies an error category for stable matching in callers
// and tests.
type ErrorCode string

const (
	// ErrUnknown is the fallback code for errors raised outside this package.
	ErrUnknown ErrorCode = "UNKNOWN"

	// ErrRuleParse indicates a rules document is malformed or does not
	// match the expected {rules: [...]} envelope.
	ErrRuleParse ErrorCode = "RULE_PARSE"

	// ErrFileAccess indicates a filesystem read failed: an unreadable
	// file, an unreadable directory entry, or a broken directory walk.
	ErrFileAccess ErrorCode = "FILE_ACCESS"

	// ErrInvalidInput indicates a supplied input path is neither a file
	// nor a directory.
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// ErrConfigLoad indicates the configuration could not be read or parsed.
	ErrConfigLoad ErrorCode = "CONFIG_LOAD"
)

// QuarryError is a structured error carrying a code, a message and
// arbitrary details such as the path the error is attributed to.
type QuarryError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface.
func (e *QuarryError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface.
func (e *QuarryError) Unwrap() error {
	return e.Wrapped
}

// Is matches two QuarryErrors by code.
func (e *QuarryError) Is(target error) bool {
	var targetErr *QuarryError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new QuarryError with the given code and message.
func New(code ErrorCode, message string) *QuarryError {
	return &QuarryError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new QuarryError with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) *QuarryError {
	return &QuarryError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a QuarryError. Returns nil when err
// is nil.
func Wrap(err error, code ErrorCode, message string) *QuarryError {
	if err == nil {
		return nil
	}
	return &QuarryError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *QuarryError {
	if err == nil {
		return nil
	}
	return &QuarryError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error.
func (e *QuarryError) WithDetail(key string, value interface{}) *QuarryError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code anywhere in
// its chain.
func IsErrorCode(err error, code ErrorCode) bool {
	var quarryErr *QuarryError
	if errors.As(err, &quarryErr) {
		return quarryErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if it
// is not a QuarryError.
func GetErrorCode(err error) ErrorCode {
	var quarryErr *QuarryError
	if errors.As(err, &quarryErr) {
		return quarryErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if it is not
// a QuarryError.
func GetErrorDetails(err error) map[string]interface{} {
	var quarryErr *QuarryError
	if errors.As(err, &quarryErr) {
		return quarryErr.Details
	}
	return nil
}
