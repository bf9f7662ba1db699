// Package domainerrors provides coded errors for the domain layer. Services
// return these; the HTTP layer translates codes into status codes and JSON
// envelopes without inspecting error strings.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a domain error for transport mapping and logging.
type Code string

const (
	// CodeValidation marks field-level input failures. Errors with this code
	// usually carry a Fields map naming each offending field.
	CodeValidation Code = "validation_error"
	// CodeBadRequest marks malformed requests that never reached validation
	// (unparseable body, missing route parameter).
	CodeBadRequest Code = "bad_request"
	// CodeNotFound marks lookups for records that do not exist.
	CodeNotFound Code = "not_found"
	// CodeConflict marks duplicate submissions: a candidate already created
	// today, or onboarding already submitted.
	CodeConflict Code = "conflict"
	// CodeForbidden marks onboarding actions attempted on a candidate whose
	// latest selection status is not Selected.
	CodeForbidden Code = "forbidden"
	// CodeUnavailable marks a backing store failure. Fatal for the request;
	// retry policy belongs to the caller.
	CodeUnavailable Code = "storage_unavailable"
	// CodeInternal is the fallback for unexpected failures.
	CodeInternal Code = "internal_error"
)

// Error is a coded domain error. Fields is populated only for validation
// errors and is surfaced verbatim to the caller, per field.
type Error struct {
	Code    Code
	Message string
	Fields  map[string]string
	wrapped error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.wrapped }

// New builds a coded error with a human-readable message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, wrapped: cause}
}

// Validation builds a field-level validation error. The map keys are field
// names and values are messages for the caller to display as-is.
func Validation(fields map[string]string) *Error {
	return &Error{Code: CodeValidation, Message: "validation failed", Fields: fields}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// FieldsOf returns the field map from a validation error, or nil.
func FieldsOf(err error) map[string]string {
	var de *Error
	if errors.As(err, &de) {
		return de.Fields
	}
	return nil
}

// ToHTTPStatus maps a domain code to the HTTP status the transport layer
// should respond with.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeValidation, CodeBadRequest:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeForbidden:
		return http.StatusForbidden
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
