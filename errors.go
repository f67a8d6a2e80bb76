package videotube

import (
	"videotube/store"
	"videotube/transport"
)

// Error handling types exported for library users.
//
// All error types support the standard error handling patterns:
//
// Using errors.Is() for sentinel errors:
//
//	if errors.Is(err, videotube.ErrUnauthorized) {
//		fmt.Println("session invalid")
//	}
//
// Using errors.As() for wrapped errors:
//
//	var apiErr *videotube.APIError
//	if errors.As(err, &apiErr) {
//		fmt.Printf("request failed: %d %s\n", apiErr.StatusCode, apiErr.Message)
//	}

// APIError carries the HTTP status and server message of a failed request.
type APIError = transport.APIError

// Sentinel errors exported from sub-packages.
var (
	// ErrUnauthorized indicates a 401 that survived the refresh-retry
	// protocol; the session has been cleared.
	ErrUnauthorized = transport.ErrUnauthorized
	// ErrForbidden indicates the server refused the operation.
	ErrForbidden = transport.ErrForbidden
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = transport.ErrNotFound
	// ErrValidation indicates the server rejected the input.
	ErrValidation = transport.ErrValidation
	// ErrServer indicates a backend fault; safe to retry manually.
	ErrServer = transport.ErrServer
	// ErrNetwork indicates the request never produced a response.
	ErrNetwork = transport.ErrNetwork

	// ErrNotAuthenticated indicates a mutating operation was attempted
	// without an active session; no request was issued.
	ErrNotAuthenticated = store.ErrNotAuthenticated
	// ErrDuplicateVideo indicates an add to a playlist that already
	// contains the video.
	ErrDuplicateVideo = store.ErrDuplicateVideo
)
