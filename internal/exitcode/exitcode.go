// Package exitcode defines the process exit codes of the tasktracker CLI.
package exitcode

const (
	// Success means the command completed.
	Success = 0

	// UserError covers bad arguments and input that fails validation.
	UserError = 1

	// AuthError covers a missing session and rejected signup or login.
	AuthError = 2

	// BackendError covers task operations that ended with an error in
	// the task store.
	BackendError = 3
)
