// Package exitcode defines exit codes for the CLI.
package exitcode

import (
	"errors"

	"taskdeck/internal/service"
)

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, validation, rejected request).
	UserError = 1

	// AuthError indicates an auth/config error.
	AuthError = 2

	// BackendError indicates a backend/API/network error.
	BackendError = 3
)

// ForError maps an operation error to an exit code.
func ForError(err error) int {
	if err == nil {
		return Success
	}
	var rf *service.RequestFailedError
	if !errors.As(err, &rf) {
		return UserError
	}
	switch {
	case rf.IsAuth():
		return AuthError
	case rf.IsClient():
		return UserError
	default:
		return BackendError
	}
}
