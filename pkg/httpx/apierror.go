package httpx

import (
	"fmt"
	"net/http"
)

// APIError is the uniform error body every endpoint returns on failure:
//
//	{"error": "Conflict", "message": "Email already exists", "statusCode": 409, "field": "email"}
//
// Field is only present on conflict and validation errors that map to a
// single form field. It implements the error interface so handlers and the
// SDK can share the type.
type APIError struct {
	Err        string `json:"error"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	Field      string `json:"field,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Err, e.StatusCode, e.Message)
}

// WriteError writes the error to an HTTP response writer as JSON.
func (e *APIError) WriteError(w http.ResponseWriter) {
	WriteJSON(w, e.StatusCode, e)
}

func newAPIError(code int, message string) *APIError {
	return &APIError{
		Err:        http.StatusText(code),
		Message:    message,
		StatusCode: code,
	}
}

// BadRequest is a 400 with a request-scoped message.
func BadRequest(message string) *APIError {
	return newAPIError(http.StatusBadRequest, message)
}

// Unauthorized is a 401. The message is intentionally generic for
// credential failures so the API never confirms which part was wrong.
func Unauthorized(message string) *APIError {
	return newAPIError(http.StatusUnauthorized, message)
}

// Forbidden is a 403.
func Forbidden(message string) *APIError {
	return newAPIError(http.StatusForbidden, message)
}

// NotFound is a 404, also used for expired or already-used action tokens.
func NotFound(message string) *APIError {
	return newAPIError(http.StatusNotFound, message)
}

// Conflict is a 409 carrying the conflicting field so clients can attach the
// message to the right form input instead of string-matching the message.
func Conflict(message, field string) *APIError {
	e := newAPIError(http.StatusConflict, message)
	e.Field = field
	return e
}

// Internal is a 500 with a generic message; details stay in the server log.
func Internal() *APIError {
	return newAPIError(http.StatusInternalServerError, "Something went wrong")
}
