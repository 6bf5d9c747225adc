package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound marks 404 responses so callers can render a not-found view
// instead of a generic failure.
var ErrNotFound = errors.New("not found")

// ErrUnauthorized marks 401 responses. The client has already cleared the
// local session by the time a caller sees this.
var ErrUnauthorized = errors.New("unauthorized")

// ErrNoSession is returned for operations that need a logged-in identity
// before any request is made.
var ErrNoSession = errors.New("not logged in")

// Error is a backend-reported failure. Message is the backend's own message
// when the payload carried one.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed: %s", http.StatusText(e.Status))
}

func (e *Error) Unwrap() error {
	switch e.Status {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized:
		return ErrUnauthorized
	}
	return nil
}
