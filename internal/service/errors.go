package service

import (
	"errors"
	"fmt"
	"net/http"
)

// RequestFailedError is the single error type for remote failures: any
// non-success response or transport failure.
// Message is the response body text as returned by the service, or a
// status fallback when the body was empty.
type RequestFailedError struct {
	StatusCode int // 0 for transport failures
	Message    string
	Err        error
}

// RequestFailed builds a RequestFailedError from a status and body text.
func RequestFailed(status int, body string) *RequestFailedError {
	if body == "" {
		body = fmt.Sprintf("Request failed: %d", status)
	}
	return &RequestFailedError{StatusCode: status, Message: body}
}

func (e *RequestFailedError) Error() string { return e.Message }

func (e *RequestFailedError) Unwrap() error { return e.Err }

// IsAuth reports whether the service rejected the credentials.
func (e *RequestFailedError) IsAuth() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsClient reports whether the service rejected the request itself (4xx).
func (e *RequestFailedError) IsClient() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// Message returns the user-visible text of err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var rf *RequestFailedError
	if errors.As(err, &rf) {
		return rf.Message
	}
	return err.Error()
}
