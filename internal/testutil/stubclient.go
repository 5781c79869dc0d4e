package testutil

import (
	"context"
	"sync"

	"tasktracker/internal/api"
)

// Call records one invocation of a StubClient method.
type Call struct {
	Method string
	Creds  api.Credentials
	TaskID int64
	Input  api.TaskInput
}

// StubClient is an api.Client whose behaviour is set per method.
// A nil hook returns the zero value and no error.
type StubClient struct {
	mu    sync.Mutex
	calls []Call

	SignupFn func(ctx context.Context, req api.SignupRequest) error
	LoginFn  func(ctx context.Context, req api.LoginRequest) (api.LoginResult, error)
	ListFn   func(ctx context.Context, creds api.Credentials) ([]api.Task, error)
	CreateFn func(ctx context.Context, creds api.Credentials, in api.TaskInput) (api.Task, error)
	UpdateFn func(ctx context.Context, creds api.Credentials, id int64, in api.TaskInput) (api.Task, error)
	DeleteFn func(ctx context.Context, creds api.Credentials, id int64) error
}

// Calls returns the recorded invocations in order.
func (s *StubClient) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

func (s *StubClient) record(c Call) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, c)
}

// Signup implements api.Client.
func (s *StubClient) Signup(ctx context.Context, req api.SignupRequest) error {
	s.record(Call{Method: "Signup"})
	if s.SignupFn == nil {
		return nil
	}
	return s.SignupFn(ctx, req)
}

// Login implements api.Client.
func (s *StubClient) Login(ctx context.Context, req api.LoginRequest) (api.LoginResult, error) {
	s.record(Call{Method: "Login"})
	if s.LoginFn == nil {
		return api.LoginResult{}, nil
	}
	return s.LoginFn(ctx, req)
}

// ListTasks implements api.Client.
func (s *StubClient) ListTasks(ctx context.Context, creds api.Credentials) ([]api.Task, error) {
	s.record(Call{Method: "ListTasks", Creds: creds})
	if s.ListFn == nil {
		return []api.Task{}, nil
	}
	return s.ListFn(ctx, creds)
}

// CreateTask implements api.Client.
func (s *StubClient) CreateTask(ctx context.Context, creds api.Credentials, in api.TaskInput) (api.Task, error) {
	s.record(Call{Method: "CreateTask", Creds: creds, Input: in})
	if s.CreateFn == nil {
		return api.Task{}, nil
	}
	return s.CreateFn(ctx, creds, in)
}

// UpdateTask implements api.Client.
func (s *StubClient) UpdateTask(ctx context.Context, creds api.Credentials, id int64, in api.TaskInput) (api.Task, error) {
	s.record(Call{Method: "UpdateTask", Creds: creds, TaskID: id, Input: in})
	if s.UpdateFn == nil {
		return api.Task{}, nil
	}
	return s.UpdateFn(ctx, creds, id, in)
}

// DeleteTask implements api.Client.
func (s *StubClient) DeleteTask(ctx context.Context, creds api.Credentials, id int64) error {
	s.record(Call{Method: "DeleteTask", Creds: creds, TaskID: id})
	if s.DeleteFn == nil {
		return nil
	}
	return s.DeleteFn(ctx, creds, id)
}
