package apierrors

import (
	"errors"
	"fmt"
	"net/http"

	panelerrors "github.com/jrsteele09/panel-console/internal/errors"
)

// HTTPError is returned by the session client for every response with a
// status of 400 or above.
type HTTPError struct {
	StatusCode int
	Data       any    // decoded JSON body, nil when the body is not JSON
	Body       []byte // raw response body
	Message    string // top-level message, e.g. "Request failed with status code 422"
}

// NewHTTPError builds the error for a failed response.
func NewHTTPError(statusCode int, data any, body []byte) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Data:       data,
		Body:       body,
		Message:    fmt.Sprintf("Request failed with status code %d", statusCode),
	}
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("Request failed with status code %d", e.StatusCode)
}

// Unwrap lets errors.Is(err, ErrSessionExpired) match a 401, after which the
// client has already torn the stored session down.
func (e *HTTPError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return panelerrors.ErrSessionExpired
	}
	return nil
}

// field returns data[key] when the response body is a JSON object.
func (e *HTTPError) field(key string) (any, bool) {
	m, ok := e.Data.(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok := m[key]
	return v, ok
}

// IsUnauthorized reports whether err carries an HTTP 401 response.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// StatusCode returns the response status carried by err, or 0.
func StatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}
