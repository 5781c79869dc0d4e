// Package tasks holds the client's view of the current user's task
// collection and keeps it in sync with the remote service.
package tasks

import (
	"slices"

	"tasktracker/internal/api"
)

// State is a snapshot of the task collection. Tasks keeps server order.
// A failed operation sets Error and leaves Tasks at its last good value.
type State struct {
	Tasks     []api.Task
	IsLoading bool
	Error     string
}

// Fallback messages used when the server gives none.
const (
	msgFetchFailed  = "Failed to fetch tasks"
	msgCreateFailed = "Failed to create task"
	msgUpdateFailed = "Failed to update task"
	msgDeleteFailed = "Failed to delete task"
	msgToggleFailed = "Failed to toggle task"
)

// Find returns the task with the given id.
func (s State) Find(id int64) (api.Task, bool) {
	i := slices.IndexFunc(s.Tasks, func(t api.Task) bool { return t.ID == id })
	if i < 0 {
		return api.Task{}, false
	}
	return s.Tasks[i], true
}

// Counts returns the number of pending and completed tasks.
func (s State) Counts() (pending, completed int) {
	for _, t := range s.Tasks {
		if t.Completed {
			completed++
		} else {
			pending++
		}
	}
	return pending, completed
}

// Transitions never alias the caller's slice; every change to Tasks
// produces a fresh backing array so earlier snapshots stay valid.

func started(s State) State {
	s.IsLoading = true
	s.Error = ""
	return s
}

func failed(s State, msg string) State {
	s.IsLoading = false
	s.Error = msg
	return s
}

func fetched(s State, tasks []api.Task) State {
	s.IsLoading = false
	s.Tasks = slices.Clone(tasks)
	if s.Tasks == nil {
		s.Tasks = []api.Task{}
	}
	return s
}

func created(s State, t api.Task) State {
	s.IsLoading = false
	s.Tasks = append(slices.Clone(s.Tasks), t)
	return s
}

// replaced swaps the first task whose id matches t.ID. An unknown id
// leaves the sequence untouched.
func replaced(s State, t api.Task) State {
	s.IsLoading = false
	i := slices.IndexFunc(s.Tasks, func(x api.Task) bool { return x.ID == t.ID })
	if i < 0 {
		return s
	}
	s.Tasks = slices.Clone(s.Tasks)
	s.Tasks[i] = t
	return s
}

func deleted(s State, id int64) State {
	s.IsLoading = false
	s.Tasks = slices.DeleteFunc(slices.Clone(s.Tasks), func(t api.Task) bool { return t.ID == id })
	return s
}

func errorCleared(s State) State {
	s.Error = ""
	return s
}
