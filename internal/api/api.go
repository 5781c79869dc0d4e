// Package api defines the contract the client core expects of the remote
// task-tracking service, and an HTTP implementation of it.
package api

import "context"

// Client defines the remote operations used by the session manager and the
// task store. Neither of them talks HTTP directly.
//
// Task operations take the bearer token explicitly; the client itself is
// stateless and never reads the credential cache.
type Client interface {
	// Signup registers a new account. It does not authenticate.
	Signup(ctx context.Context, req SignupRequest) error

	// Login exchanges credentials for a token and user ID.
	Login(ctx context.Context, req LoginRequest) (LoginResult, error)

	// ListTasks returns all tasks of userID in server order.
	ListTasks(ctx context.Context, creds Credentials) ([]Task, error)

	// CreateTask creates a task for creds.UserID and returns it with its
	// server-assigned ID.
	CreateTask(ctx context.Context, creds Credentials, in TaskInput) (Task, error)

	// UpdateTask replaces the task's title, description and completion flag
	// and returns the stored record.
	UpdateTask(ctx context.Context, creds Credentials, id int64, in TaskInput) (Task, error)

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, creds Credentials, id int64) error
}
