// Package errors provides coded errors for repokit.
//
// Every error that crosses a package boundary carries an ErrorCode so that
// callers and tests can match on a stable value instead of message text.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Topology errors
	ErrTopologyUnknown ErrorCode = "TOPOLOGY_UNKNOWN"
	ErrFileUnknown     ErrorCode = "FILE_UNKNOWN"

	// Serialization errors
	ErrJSONParse     ErrorCode = "JSON_PARSE"
	ErrJSONStringify ErrorCode = "JSON_STRINGIFY"
	ErrYAMLParse     ErrorCode = "YAML_PARSE"
	ErrYAMLEncode    ErrorCode = "YAML_ENCODE"
	ErrEncode        ErrorCode = "ENCODE"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrFileRemove ErrorCode = "FILE_REMOVE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
)

// RepokitError represents a structured error with code and details
type RepokitError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *RepokitError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *RepokitError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a RepokitError with the same code
func (e *RepokitError) Is(target error) bool {
	var targetErr *RepokitError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new RepokitError with the given code and message
func New(code ErrorCode, message string) *RepokitError {
	return &RepokitError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new RepokitError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *RepokitError {
	return &RepokitError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error. A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) *RepokitError {
	if err == nil {
		return nil
	}
	return &RepokitError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *RepokitError {
	if err == nil {
		return nil
	}
	return &RepokitError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *RepokitError) WithDetail(key string, value interface{}) *RepokitError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var repoErr *RepokitError
	if errors.As(err, &repoErr) {
		return repoErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a RepokitError
func GetErrorCode(err error) ErrorCode {
	var repoErr *RepokitError
	if errors.As(err, &repoErr) {
		return repoErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a RepokitError
func GetErrorDetails(err error) map[string]interface{} {
	var repoErr *RepokitError
	if errors.As(err, &repoErr) {
		return repoErr.Details
	}
	return nil
}
