package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrNetwork is the sentinel wrapped around transport-level failures
	// (DNS, connection refused, timeout). Never retried by this layer.
	ErrNetwork = errors.New("network error")

	// ErrAuthenticationExpired means the session could not be kept alive:
	// the token is expired or rejected and no refresh was possible. The
	// credential bundle has been cleared.
	ErrAuthenticationExpired = errors.New("authentication expired")

	// ErrPermissionDenied is returned on 403. Credentials remain intact:
	// the user is authenticated but lacks rights for this resource.
	ErrPermissionDenied = errors.New("permission denied")
)

// HTTPError is the catch-all for non-2xx responses not handled by the 401
// or 403 paths. Message carries the server's error message when the body
// was parseable.
type HTTPError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *HTTPError) Error() string {
	return e.Message
}

// newHTTPError builds an HTTPError, extracting the server message from the
// response body. A body that fails to parse is treated as empty so the
// status code is never masked by a body-shape surprise.
func newHTTPError(status int, body []byte) *HTTPError {
	message := fmt.Sprintf("Request failed with status %d", status)

	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		message = parsed.Message
	}

	return &HTTPError{StatusCode: status, Message: message, Body: body}
}
