package consolesdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError is the uniform error body the console backend returns on failure:
//
//	{"error": "Conflict", "message": "Email already exists", "statusCode": 409, "field": "email"}
//
// Every SDK operation normalizes non-2xx responses into this type, including
// responses whose body could not be parsed.
type APIError struct {
	StatusCode int    `json:"statusCode"`
	Err        string `json:"error"`
	Message    string `json:"message"`
	Field      string `json:"field,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Err, e.StatusCode, e.Message)
}

// IsStatus reports whether err is an APIError with the given HTTP status.
func IsStatus(err error, statusCode int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == statusCode
}

// FieldOf returns the form field an error belongs to, so callers can attach
// the message to the right input instead of a global notification. Falls back
// to matching well-known conflict messages for backends that do not send the
// field indicator.
func FieldOf(err error) (field, message string, ok bool) {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return "", "", false
	}
	if apiErr.Field != "" {
		return apiErr.Field, apiErr.Message, true
	}

	// Compatibility shim for servers predating the field indicator.
	switch apiErr.Message {
	case "Email already exists":
		return "email", apiErr.Message, true
	case "Username already exists":
		return "username", apiErr.Message, true
	case "Password is incorrect":
		return "password", apiErr.Message, true
	}
	return "", "", false
}

// parseErrorResponse turns a non-2xx response into an *APIError. Responses
// without a parsable body still produce a typed error from the status code.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.StatusCode != 0 {
		return &apiErr
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Err:        http.StatusText(resp.StatusCode),
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
