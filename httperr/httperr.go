// Package httperr defines the application error taxonomy. Every error that
// crosses a handler boundary is one of these, so handlers can map failures to
// HTTP statuses without inspecting provider internals.
package httperr

import (
	"fmt"
	"net/http"
)

// Error is an application error with an HTTP status code.
type Error struct {
	Code    int    `json:"-"`
	Message string `json:"error"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// InvalidInput is a client-correctable 400: bad amount, bad email, missing
// disclosure field, unrecognized enum value.
func InvalidInput(message string) *Error {
	return &Error{Code: http.StatusBadRequest, Message: message}
}

// ServiceUnavailable is a 503 for a missing integration. Retrying from the
// same client won't help; an operator has to configure the service.
func ServiceUnavailable(message string) *Error {
	return &Error{Code: http.StatusServiceUnavailable, Message: message}
}

// Upstream is a 500 for an unexpected provider failure. The wrapped error is
// logged but never returned to the caller.
func Upstream(message string, err error) *Error {
	return &Error{Code: http.StatusInternalServerError, Message: message, Err: err}
}

// SignatureInvalid is a 400 for webhook signature or body failures.
func SignatureInvalid(err error) *Error {
	return &Error{Code: http.StatusBadRequest, Message: "invalid signature", Err: err}
}

// From coerces any error into an *Error, defaulting to a sanitized 500.
func From(err error) *Error {
	if appErr, ok := err.(*Error); ok {
		return appErr
	}
	return &Error{Code: http.StatusInternalServerError, Message: "internal server error", Err: err}
}
