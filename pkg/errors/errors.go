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

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Task file and dispatch errors
	ErrTaskFile         ErrorCode = "TASK_FILE"
	ErrUnknownDirective ErrorCode = "UNKNOWN_DIRECTIVE"

	// Directive item errors
	ErrUnknownComponent ErrorCode = "UNKNOWN_COMPONENT"
	ErrBlankPackage     ErrorCode = "BLANK_PACKAGE"
	ErrMalformedSpec    ErrorCode = "MALFORMED_SPEC"
	ErrInvalidOption    ErrorCode = "INVALID_OPTION"

	// Execution errors
	ErrCommandStart  ErrorCode = "COMMAND_START"
	ErrCommandFailed ErrorCode = "COMMAND_FAILED"
	ErrBootstrap     ErrorCode = "BOOTSTRAP"
)

// DotbrewError represents a structured error with code and details
type DotbrewError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DotbrewError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DotbrewError) Unwrap() error {
	return e.Wrapped
}

// Is matches any DotbrewError carrying the same code
func (e *DotbrewError) Is(target error) bool {
	var targetErr *DotbrewError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DotbrewError with the given code and message
func New(code ErrorCode, message string) *DotbrewError {
	return &DotbrewError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DotbrewError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DotbrewError {
	return &DotbrewError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a DotbrewError
func Wrap(err error, code ErrorCode, message string) *DotbrewError {
	if err == nil {
		return nil
	}
	return &DotbrewError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DotbrewError {
	if err == nil {
		return nil
	}
	return &DotbrewError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *DotbrewError) WithDetail(key string, value interface{}) *DotbrewError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var dbErr *DotbrewError
	if errors.As(err, &dbErr) {
		return dbErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a DotbrewError
func GetErrorCode(err error) ErrorCode {
	var dbErr *DotbrewError
	if errors.As(err, &dbErr) {
		return dbErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a DotbrewError
func GetErrorDetails(err error) map[string]interface{} {
	var dbErr *DotbrewError
	if errors.As(err, &dbErr) {
		return dbErr.Details
	}
	return nil
}
