package transport

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors classifying API failures. Match with errors.Is().
var (
	// ErrUnauthorized indicates a 401 that survived the refresh-retry protocol.
	ErrUnauthorized = errors.New("transport: unauthorized")
	// ErrForbidden indicates the server refused the operation (403).
	ErrForbidden = errors.New("transport: forbidden")
	// ErrNotFound indicates the requested resource does not exist (404).
	ErrNotFound = errors.New("transport: not found")
	// ErrValidation indicates the server rejected the input (other 4xx).
	ErrValidation = errors.New("transport: validation failed")
	// ErrServer indicates a backend fault (5xx). Safe to retry manually.
	ErrServer = errors.New("transport: server fault")
	// ErrNetwork indicates the request never produced a response.
	ErrNetwork = errors.New("transport: network failure")
)

// APIError carries the HTTP status and server-provided message for a failed
// request. Use errors.As() to extract it and errors.Is() against the
// sentinels above to classify it:
//
//	var apiErr *transport.APIError
//	if errors.As(err, &apiErr) {
//		fmt.Println(apiErr.StatusCode, apiErr.Message)
//	}
//	if errors.Is(err, transport.ErrNotFound) {
//		// resource missing
//	}
type APIError struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Message is the error message from the response envelope, verbatim.
	Message string

	kind error
}

// Error returns a string representation of the API error.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error: status %d", e.StatusCode)
}

// Unwrap returns the classification sentinel for use with errors.Is().
func (e *APIError) Unwrap() error { return e.kind }

// newAPIError builds an APIError classified per the status code.
func newAPIError(status int, message string) *APIError {
	e := &APIError{StatusCode: status, Message: message}
	switch {
	case status == http.StatusUnauthorized:
		e.kind = ErrUnauthorized
	case status == http.StatusForbidden:
		e.kind = ErrForbidden
	case status == http.StatusNotFound:
		e.kind = ErrNotFound
	case status >= 400 && status < 500:
		e.kind = ErrValidation
	default:
		e.kind = ErrServer
	}
	return e
}
