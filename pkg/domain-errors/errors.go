// Package domainerrors defines coded errors shared by services and transports.
//
// Services return these errors so the HTTP layer can translate them into a status
// code and a client-safe message without inspecting storage or driver details.
package domainerrors

import (
	"errors"
	"net/http"
)

// Code classifies an error for transport translation.
type Code string

const (
	CodeValidation  Code = "validation_error"
	CodeBadRequest  Code = "bad_request"
	CodeNotFound    Code = "not_found"
	CodeRateLimited Code = "rate_limited"
	CodeInternal    Code = "internal_error"
)

// Error is a domain error carrying a code, a client-facing message and an
// optional wrapped cause that is never exposed to clients.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a domain error without a cause.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and client-facing message to a cause.
func Wrap(err error, code Code, message string) error {
	return &Error{Code: code, Message: message, Err: err}
}

// As returns the first domain error in err's chain.
func As(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// HasCode reports whether err's chain contains a domain error with the given code.
func HasCode(err error, code Code) bool {
	de, ok := As(err)
	return ok && de.Code == code
}

// ToHTTPStatus maps a code to the HTTP status used for it.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeValidation, CodeBadRequest:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
