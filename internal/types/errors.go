package types

import (
	"errors"
	"fmt"
)

// ErrorCode is a namespaced, machine-readable error code.
type ErrorCode string

// Configuration error codes
const (
	CONFIG_LOAD_FAILED       ErrorCode = "CONFIG_LOAD_FAILED"
	CONFIG_PARSE_FAILED      ErrorCode = "CONFIG_PARSE_FAILED"
	CONFIG_VALIDATION_FAILED ErrorCode = "CONFIG_VALIDATION_FAILED"
	CONFIG_NOT_FOUND         ErrorCode = "CONFIG_NOT_FOUND"
)

// NetError is a structured error carrying a code, a message and an optional cause.
// Retryable hints callers that the same operation may succeed when repeated.
type NetError struct {
	Code      ErrorCode
	Message   string
	Retryable bool
	Cause     error
}

// Error formats as "[CODE] message" or "[CODE] message: cause".
func (e *NetError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *NetError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a NetError with the same code.
func (e *NetError) Is(target error) bool {
	var netErr *NetError
	if errors.As(target, &netErr) {
		return e.Code == netErr.Code
	}
	return false
}

// NewError creates a non-retryable NetError.
func NewError(code ErrorCode, message string) *NetError {
	return &NetError{Code: code, Message: message}
}

// NewRetryableError creates a retryable NetError for transient failures.
func NewRetryableError(code ErrorCode, message string) *NetError {
	return &NetError{Code: code, Message: message, Retryable: true}
}

// WrapError creates a non-retryable NetError around cause.
func WrapError(code ErrorCode, message string, cause error) *NetError {
	return &NetError{Code: code, Message: message, Cause: cause}
}

// WrapRetryableError creates a retryable NetError around cause.
func WrapRetryableError(code ErrorCode, message string, cause error) *NetError {
	return &NetError{Code: code, Message: message, Retryable: true, Cause: cause}
}

// CodeOf returns the code of the outermost NetError in err's chain, or "" if there is none.
func CodeOf(err error) ErrorCode {
	var netErr *NetError
	if errors.As(err, &netErr) {
		return netErr.Code
	}
	return ""
}

// IsRetryable reports whether any NetError in err's chain is marked retryable.
func IsRetryable(err error) bool {
	for err != nil {
		var netErr *NetError
		if !errors.As(err, &netErr) {
			return false
		}
		if netErr.Retryable {
			return true
		}
		err = netErr.Cause
	}
	return false
}
