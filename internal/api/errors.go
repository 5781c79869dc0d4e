package api

import (
	"errors"
	"fmt"
)

// Error is a non-2xx response from the remote service.
type Error struct {
	StatusCode int
	// Message is the server's "message" field, empty if the body had none.
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("status %d", e.StatusCode)
}

// Message returns the human-readable message carried by err, or fallback if
// err is not a server rejection with a message. Transport failures and
// timeouts always yield fallback.
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
