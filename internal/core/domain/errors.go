package domain

import (
	"errors"
	"fmt"
	"strings"
)

// DomainError represents a domain error with a structured error code.
// Codes have the form RM-<AREA>-<NNNN>. A number in the 4xxx range blames
// the client; 5xxx is a server fault.
type DomainError struct {
	Code    string // Error code (e.g., "RM-REST-5000")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Details != "" {
		msg += ": " + e.Details
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is matches another DomainError by code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return code == "" || de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// IsClientError reports whether err is a DomainError blaming the client.
// Such errors are answered on the connection, which stays open.
func IsClientError(err error) bool {
	code := GetErrorCode(err)
	i := strings.LastIndexByte(code, '-')
	return i >= 0 && i+1 < len(code) && code[i+1] == '4'
}

// Configuration errors, raised once at construction.
var (
	// ErrInvalidConfig indicates restore configuration could not be accepted.
	ErrInvalidConfig = NewDomainError("RM-CONF-4000", "invalid restore configuration")
)

// Restoration errors. These indicate defects, not protocol outcomes:
// unknown and expired tokens are reported to clients, not returned.
var (
	// ErrTokenConflict indicates a freshly generated token was already registered.
	ErrTokenConflict = NewDomainError("RM-REST-5000", "restoration token conflict")

	// ErrTokenGeneration indicates the random source failed.
	ErrTokenGeneration = NewDomainError("RM-REST-5001", "restoration token generation failed")

	// ErrSessionMissing indicates an event arrived without a session.
	ErrSessionMissing = NewDomainError("RM-REST-5002", "event has no session")
)

// System errors.
var (
	// ErrInternal indicates an internal fault, usually a failed send.
	ErrInternal = NewDomainError("RM-SYS-5000", "internal error")

	// ErrRateLimited indicates a connection exceeded its message rate.
	ErrRateLimited = NewDomainError("RM-SYS-4290", "too many messages")

	// ErrBadRequest indicates a malformed application command.
	ErrBadRequest = NewDomainError("RM-SYS-4000", "bad request")
)
