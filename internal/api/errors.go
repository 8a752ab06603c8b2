package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

// ErrInvalidCredentials is returned when the token exchange rejects the
// client ID / secret pair (HTTP 400 or 401).
var ErrInvalidCredentials = errors.New("invalid credentials: check your client ID and secret")

// AuthError is any other failure of the token exchange.
type AuthError struct {
	StatusCode int
	Message    string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed: %s (status %d)", e.Message, e.StatusCode)
}

// NotFoundError identifies a missing remote resource instead of dumping the
// raw 404 response at the user.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// APIError carries a non-2xx response. The body is kept verbatim for
// debugging; when it holds a JSON message field, that is surfaced first.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if msg := gjson.Get(e.Body, "message").String(); msg != "" {
		return fmt.Sprintf("remote API error (status %d): %s: %s", e.StatusCode, msg, e.Body)
	}
	return fmt.Sprintf("remote API error (status %d): %s", e.StatusCode, e.Body)
}

// asNotFound rewrites a 404 APIError into a NotFoundError naming the
// resource. Other errors pass through unchanged.
func asNotFound(err error, resource string, id interface{}) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return &NotFoundError{Resource: resource, ID: fmt.Sprint(id)}
	}
	return err
}
