package commands

import (
	"context"

	"tasktracker/internal/api"
	"tasktracker/internal/tasks"
)

// lookupTask refreshes the collection and returns the task with id.
// ok is false when the fetch failed (the state carries the error) or when
// no task has the id.
func lookupTask(ctx context.Context, store *tasks.Store, id int64) (api.Task, tasks.State, bool) {
	s := store.FetchAll(ctx)
	if s.Error != "" {
		return api.Task{}, s, false
	}
	task, ok := s.Find(id)
	return task, s, ok
}
