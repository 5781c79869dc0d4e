package tasks

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"tasktracker/internal/api"
	"tasktracker/internal/cache"
)

// Store runs task operations for the user whose credentials are in the
// cache. It only reads the cache.
//
// Operations never return errors: every failure lands in State.Error.
// There is no deduplication or cancellation of in-flight requests; the
// last response to arrive determines the final state.
type Store struct {
	client api.Client
	creds  cache.Reader
	logger *slog.Logger

	mu        sync.Mutex
	state     State
	listeners []func(State)
}

// NewStore creates a Store with an empty collection.
func NewStore(client api.Client, creds cache.Reader, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		client: client,
		creds:  creds,
		logger: logger.With(slog.String("component", "tasks")),
		state:  State{Tasks: []api.Task{}},
	}
}

// Snapshot returns the current state. The Tasks slice is a copy.
func (st *Store) Snapshot() State {
	st.mu.Lock()
	defer st.mu.Unlock()
	s := st.state
	s.Tasks = slices.Clone(s.Tasks)
	return s
}

// Subscribe registers fn to be called with the new state after every
// transition.
func (st *Store) Subscribe(fn func(State)) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.listeners = append(st.listeners, fn)
}

func (st *Store) apply(transition func(State) State) State {
	st.mu.Lock()
	st.state = transition(st.state)
	s := st.state
	s.Tasks = slices.Clone(s.Tasks)
	listeners := slices.Clone(st.listeners)
	st.mu.Unlock()

	for _, fn := range listeners {
		fn(s)
	}
	return s
}

// credentials reads the token and user id. Missing or unreadable values are
// passed on empty; the server rejects them.
func (st *Store) credentials(ctx context.Context) api.Credentials {
	token, _, err := st.creds.Get(ctx, cache.KeyToken)
	if err != nil {
		st.logger.Error("failed to read token", slog.String("error", err.Error()))
	}
	userID, _, err := st.creds.Get(ctx, cache.KeyUserID)
	if err != nil {
		st.logger.Error("failed to read user id", slog.String("error", err.Error()))
	}
	return api.Credentials{Token: token, UserID: userID}
}

func (st *Store) fail(op string, err error, fallback string) State {
	st.logger.Debug(op+" failed", slog.String("error", err.Error()))
	msg := api.Message(err, fallback)
	return st.apply(func(s State) State { return failed(s, msg) })
}

// FetchAll replaces the collection with the server's.
func (st *Store) FetchAll(ctx context.Context) State {
	st.apply(started)

	tasks, err := st.client.ListTasks(ctx, st.credentials(ctx))
	if err != nil {
		return st.fail("fetch", err, msgFetchFailed)
	}

	st.logger.Debug("tasks fetched", slog.Int("count", len(tasks)))
	return st.apply(func(s State) State { return fetched(s, tasks) })
}

// Create submits a new, not completed task and appends the server's copy.
func (st *Store) Create(ctx context.Context, title, description string) State {
	st.apply(started)

	in := api.TaskInput{Title: title, Description: description, Completed: false}
	task, err := st.client.CreateTask(ctx, st.credentials(ctx), in)
	if err != nil {
		return st.fail("create", err, msgCreateFailed)
	}

	st.logger.Debug("task created", slog.Int64("id", task.ID))
	return st.apply(func(s State) State { return created(s, task) })
}

// Update sends the full task fields and replaces the local copy. If no
// local task has the id the collection is left as is.
func (st *Store) Update(ctx context.Context, id int64, title, description string, completed bool) State {
	st.apply(started)

	in := api.TaskInput{Title: title, Description: description, Completed: completed}
	task, err := st.client.UpdateTask(ctx, st.credentials(ctx), id, in)
	if err != nil {
		return st.fail("update", err, msgUpdateFailed)
	}

	st.logger.Debug("task updated", slog.Int64("id", task.ID))
	return st.apply(func(s State) State { return replaced(s, task) })
}

// Delete removes the task on the server and locally.
func (st *Store) Delete(ctx context.Context, id int64) State {
	st.apply(started)

	if err := st.client.DeleteTask(ctx, st.credentials(ctx), id); err != nil {
		return st.fail("delete", err, msgDeleteFailed)
	}

	st.logger.Debug("task deleted", slog.Int64("id", id))
	return st.apply(func(s State) State { return deleted(s, id) })
}

// ToggleComplete flips completion. The new value is computed from the
// completed argument, not from the local copy.
func (st *Store) ToggleComplete(ctx context.Context, id int64, title, description string, completed bool) State {
	st.apply(started)

	in := api.TaskInput{Title: title, Description: description, Completed: !completed}
	task, err := st.client.UpdateTask(ctx, st.credentials(ctx), id, in)
	if err != nil {
		return st.fail("toggle", err, msgToggleFailed)
	}

	st.logger.Debug("task toggled", slog.Int64("id", task.ID), slog.Bool("completed", task.Completed))
	return st.apply(func(s State) State { return replaced(s, task) })
}

// ClearError acknowledges the current error.
func (st *Store) ClearError() State {
	return st.apply(errorCleared)
}
