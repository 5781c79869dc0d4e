package tasks_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasktracker/internal/api"
	"tasktracker/internal/cache"
	"tasktracker/internal/tasks"
	"tasktracker/internal/testutil"
)

func loggedInCache(t *testing.T) *cache.MemoryCache {
	t.Helper()
	c := cache.NewMemoryCache()
	require.NoError(t, c.Set(context.Background(), cache.KeyToken, "t1"))
	require.NoError(t, c.Set(context.Background(), cache.KeyUserID, "u1"))
	return c
}

func listing(tasks ...api.Task) func(context.Context, api.Credentials) ([]api.Task, error) {
	return func(context.Context, api.Credentials) ([]api.Task, error) {
		return tasks, nil
	}
}

func echoUpdate(_ context.Context, _ api.Credentials, id int64, in api.TaskInput) (api.Task, error) {
	return api.Task{ID: id, Title: in.Title, Description: in.Description, Completed: in.Completed}, nil
}

func TestNewStore_Empty(t *testing.T) {
	st := tasks.NewStore(&testutil.StubClient{}, cache.NewMemoryCache(), nil)

	s := st.Snapshot()

	assert.NotNil(t, s.Tasks)
	assert.Empty(t, s.Tasks)
	assert.False(t, s.IsLoading)
	assert.Empty(t, s.Error)
}

func TestFetchAll_ReplacesSequence(t *testing.T) {
	client := &testutil.StubClient{ListFn: listing(
		api.Task{ID: 2, Title: "b"},
		api.Task{ID: 1, Title: "a", Completed: true},
	)}
	st := tasks.NewStore(client, loggedInCache(t), nil)

	s := st.FetchAll(context.Background())

	require.Len(t, s.Tasks, 2)
	assert.Equal(t, int64(2), s.Tasks[0].ID, "server order kept")
	assert.Equal(t, int64(1), s.Tasks[1].ID)
	assert.False(t, s.IsLoading)
	assert.Empty(t, s.Error)

	calls := client.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, api.Credentials{Token: "t1", UserID: "u1"}, calls[0].Creds)
}

func TestFetchAll_EmptyResponse(t *testing.T) {
	client := &testutil.StubClient{ListFn: listing()}
	st := tasks.NewStore(client, loggedInCache(t), nil)

	s := st.FetchAll(context.Background())

	assert.NotNil(t, s.Tasks)
	assert.Empty(t, s.Tasks)
}

func TestFetchAll_FailureKeepsSequence(t *testing.T) {
	client := &testutil.StubClient{ListFn: listing(api.Task{ID: 1, Title: "a"})}
	st := tasks.NewStore(client, loggedInCache(t), nil)
	ctx := context.Background()
	st.FetchAll(ctx)

	client.ListFn = func(context.Context, api.Credentials) ([]api.Task, error) {
		return nil, errors.New("connection reset")
	}
	s := st.FetchAll(ctx)

	assert.Equal(t, "Failed to fetch tasks", s.Error)
	assert.False(t, s.IsLoading)
	assert.Equal(t, []api.Task{{ID: 1, Title: "a"}}, s.Tasks)
}

func TestFetchAll_ServerMessage(t *testing.T) {
	client := &testutil.StubClient{
		ListFn: func(context.Context, api.Credentials) ([]api.Task, error) {
			return nil, &api.Error{StatusCode: 500, Message: "User not found"}
		},
	}
	st := tasks.NewStore(client, loggedInCache(t), nil)

	s := st.FetchAll(context.Background())

	assert.Equal(t, "User not found", s.Error)
}

func TestCreate_AppendsServerTask(t *testing.T) {
	client := &testutil.StubClient{
		CreateFn: func(_ context.Context, _ api.Credentials, in api.TaskInput) (api.Task, error) {
			return api.Task{ID: 7, Title: in.Title, Description: in.Description, Completed: in.Completed}, nil
		},
	}
	st := tasks.NewStore(client, loggedInCache(t), nil)

	s := st.Create(context.Background(), "Buy milk", "")

	assert.Equal(t, []api.Task{{ID: 7, Title: "Buy milk", Completed: false}}, s.Tasks)
	calls := client.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, api.TaskInput{Title: "Buy milk", Completed: false}, calls[0].Input)
}

func TestCreate_Failure(t *testing.T) {
	client := &testutil.StubClient{
		ListFn: listing(api.Task{ID: 1, Title: "a"}),
		CreateFn: func(context.Context, api.Credentials, api.TaskInput) (api.Task, error) {
			return api.Task{}, &api.Error{StatusCode: 400}
		},
	}
	st := tasks.NewStore(client, loggedInCache(t), nil)
	ctx := context.Background()
	st.FetchAll(ctx)

	s := st.Create(ctx, "b", "")

	assert.Equal(t, "Failed to create task", s.Error)
	assert.Equal(t, []api.Task{{ID: 1, Title: "a"}}, s.Tasks)
}

func TestCreateThenFetch_NoDuplicate(t *testing.T) {
	created := api.Task{ID: 7, Title: "Buy milk"}
	client := &testutil.StubClient{
		CreateFn: func(context.Context, api.Credentials, api.TaskInput) (api.Task, error) {
			return created, nil
		},
		ListFn: listing(created),
	}
	st := tasks.NewStore(client, loggedInCache(t), nil)
	ctx := context.Background()

	st.Create(ctx, "Buy milk", "")
	s := st.FetchAll(ctx)

	assert.Equal(t, []api.Task{created}, s.Tasks)
}

func TestToggleComplete_SendsNegatedValue(t *testing.T) {
	client := &testutil.StubClient{
		ListFn:   listing(api.Task{ID: 7, Title: "Buy milk"}, api.Task{ID: 8, Title: "Walk"}),
		UpdateFn: echoUpdate,
	}
	st := tasks.NewStore(client, loggedInCache(t), nil)
	ctx := context.Background()
	st.FetchAll(ctx)

	s := st.ToggleComplete(ctx, 7, "Buy milk", "", false)

	calls := client.Calls()
	last := calls[len(calls)-1]
	assert.Equal(t, "UpdateTask", last.Method)
	assert.Equal(t, int64(7), last.TaskID)
	assert.Equal(t, api.TaskInput{Title: "Buy milk", Completed: true}, last.Input)

	assert.Equal(t, []api.Task{
		{ID: 7, Title: "Buy milk", Completed: true},
		{ID: 8, Title: "Walk"},
	}, s.Tasks)
}

func TestToggleComplete_UsesCallerValue(t *testing.T) {
	client := &testutil.StubClient{
		ListFn:   listing(api.Task{ID: 7, Title: "a", Completed: false}),
		UpdateFn: echoUpdate,
	}
	st := tasks.NewStore(client, loggedInCache(t), nil)
	ctx := context.Background()
	st.FetchAll(ctx)

	s := st.ToggleComplete(ctx, 7, "a", "", true)

	calls := client.Calls()
	assert.False(t, calls[len(calls)-1].Input.Completed)
	task, ok := s.Find(7)
	require.True(t, ok)
	assert.False(t, task.Completed)
}

func TestToggleComplete_Failure(t *testing.T) {
	client := &testutil.StubClient{
		ListFn: listing(api.Task{ID: 7, Title: "a"}),
		UpdateFn: func(context.Context, api.Credentials, int64, api.TaskInput) (api.Task, error) {
			return api.Task{}, errors.New("timeout")
		},
	}
	st := tasks.NewStore(client, loggedInCache(t), nil)
	ctx := context.Background()
	st.FetchAll(ctx)

	s := st.ToggleComplete(ctx, 7, "a", "", false)

	assert.Equal(t, "Failed to toggle task", s.Error)
	assert.Equal(t, []api.Task{{ID: 7, Title: "a"}}, s.Tasks)
}

func TestUpdate_ReplacesByID(t *testing.T) {
	client := &testutil.StubClient{
		ListFn:   listing(api.Task{ID: 1, Title: "a"}, api.Task{ID: 2, Title: "b"}),
		UpdateFn: echoUpdate,
	}
	st := tasks.NewStore(client, loggedInCache(t), nil)
	ctx := context.Background()
	st.FetchAll(ctx)

	s := st.Update(ctx, 2, "B", "desc", true)

	assert.Equal(t, []api.Task{
		{ID: 1, Title: "a"},
		{ID: 2, Title: "B", Description: "desc", Completed: true},
	}, s.Tasks)
}

func TestUpdate_UnknownIDIsNoop(t *testing.T) {
	client := &testutil.StubClient{
		ListFn:   listing(api.Task{ID: 1, Title: "a"}),
		UpdateFn: echoUpdate,
	}
	st := tasks.NewStore(client, loggedInCache(t), nil)
	ctx := context.Background()
	st.FetchAll(ctx)

	s := st.Update(ctx, 99, "x", "", false)

	assert.Equal(t, []api.Task{{ID: 1, Title: "a"}}, s.Tasks)
	assert.Empty(t, s.Error)
	assert.False(t, s.IsLoading)
}

func TestUpdate_Failure(t *testing.T) {
	client := &testutil.StubClient{
		UpdateFn: func(context.Context, api.Credentials, int64, api.TaskInput) (api.Task, error) {
			return api.Task{}, &api.Error{StatusCode: 500, Message: "Task not found"}
		},
	}
	st := tasks.NewStore(client, loggedInCache(t), nil)

	s := st.Update(context.Background(), 1, "x", "", false)
	assert.Equal(t, "Task not found", s.Error)

	client.UpdateFn = func(context.Context, api.Credentials, int64, api.TaskInput) (api.Task, error) {
		return api.Task{}, errors.New("boom")
	}
	s = st.Update(context.Background(), 1, "x", "", false)
	assert.Equal(t, "Failed to update task", s.Error)
}

func TestDelete_RemovesTask(t *testing.T) {
	client := &testutil.StubClient{ListFn: listing(api.Task{ID: 1}, api.Task{ID: 2}, api.Task{ID: 3})}
	st := tasks.NewStore(client, loggedInCache(t), nil)
	ctx := context.Background()
	st.FetchAll(ctx)

	s := st.Delete(ctx, 2)

	assert.Equal(t, []api.Task{{ID: 1}, {ID: 3}}, s.Tasks)
}

func TestDelete_Twice(t *testing.T) {
	client := &testutil.StubClient{ListFn: listing(api.Task{ID: 1}, api.Task{ID: 2})}
	st := tasks.NewStore(client, loggedInCache(t), nil)
	ctx := context.Background()
	st.FetchAll(ctx)

	first := st.Delete(ctx, 1)
	second := st.Delete(ctx, 1)

	assert.Equal(t, first.Tasks, second.Tasks)
	assert.Empty(t, second.Error)
}

func TestDelete_Failure(t *testing.T) {
	client := &testutil.StubClient{
		ListFn: listing(api.Task{ID: 1}),
		DeleteFn: func(context.Context, api.Credentials, int64) error {
			return &api.Error{StatusCode: 404}
		},
	}
	st := tasks.NewStore(client, loggedInCache(t), nil)
	ctx := context.Background()
	st.FetchAll(ctx)

	s := st.Delete(ctx, 1)

	assert.Equal(t, "Failed to delete task", s.Error)
	assert.Equal(t, []api.Task{{ID: 1}}, s.Tasks)
}

func TestOperations_SetLoadingAndClearError(t *testing.T) {
	client := &testutil.StubClient{
		ListFn: func(context.Context, api.Credentials) ([]api.Task, error) {
			return nil, errors.New("down")
		},
	}
	st := tasks.NewStore(client, loggedInCache(t), nil)
	ctx := context.Background()
	require.NotEmpty(t, st.FetchAll(ctx).Error)

	var seen []tasks.State
	st.Subscribe(func(s tasks.State) { seen = append(seen, s) })
	st.Create(ctx, "a", "")

	require.Len(t, seen, 2)
	assert.True(t, seen[0].IsLoading)
	assert.Empty(t, seen[0].Error)
	assert.False(t, seen[1].IsLoading)
}

func TestMissingCredentials_SentEmpty(t *testing.T) {
	client := &testutil.StubClient{
		ListFn: func(_ context.Context, creds api.Credentials) ([]api.Task, error) {
			if creds.Token == "" {
				return nil, &api.Error{StatusCode: 401, Message: "Unauthorized"}
			}
			return []api.Task{}, nil
		},
	}
	st := tasks.NewStore(client, cache.NewMemoryCache(), nil)

	s := st.FetchAll(context.Background())

	calls := client.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, api.Credentials{}, calls[0].Creds)
	assert.Equal(t, "Unauthorized", s.Error)
}

func TestCacheReadFailure_SentEmpty(t *testing.T) {
	c := cache.NewMemoryCache()
	c.GetErr = errors.New("corrupt")
	client := &testutil.StubClient{}
	st := tasks.NewStore(client, c, nil)

	st.FetchAll(context.Background())

	assert.Equal(t, api.Credentials{}, client.Calls()[0].Creds)
}

func TestClearError(t *testing.T) {
	client := &testutil.StubClient{
		ListFn: listing(api.Task{ID: 1}),
		DeleteFn: func(context.Context, api.Credentials, int64) error {
			return errors.New("x")
		},
	}
	st := tasks.NewStore(client, loggedInCache(t), nil)
	ctx := context.Background()
	st.FetchAll(ctx)
	require.NotEmpty(t, st.Delete(ctx, 1).Error)

	s := st.ClearError()

	assert.Empty(t, s.Error)
	assert.Equal(t, []api.Task{{ID: 1}}, s.Tasks)
}

func TestSnapshot_IsIsolated(t *testing.T) {
	client := &testutil.StubClient{ListFn: listing(api.Task{ID: 1, Title: "a"})}
	st := tasks.NewStore(client, loggedInCache(t), nil)
	st.FetchAll(context.Background())

	s := st.Snapshot()
	s.Tasks[0].Title = "mutated"

	assert.Equal(t, "a", st.Snapshot().Tasks[0].Title)
}

func TestCounts(t *testing.T) {
	s := tasks.State{Tasks: []api.Task{{ID: 1}, {ID: 2, Completed: true}, {ID: 3}}}

	pending, completed := s.Counts()

	assert.Equal(t, 2, pending)
	assert.Equal(t, 1, completed)
}

func TestFetchAll_OverlappingCallsLastCompletionWins(t *testing.T) {
	slowStarted := make(chan struct{})
	release := make(chan struct{})
	var n atomic.Int32
	client := &testutil.StubClient{ListFn: func(context.Context, api.Credentials) ([]api.Task, error) {
		if n.Add(1) == 1 {
			close(slowStarted)
			<-release
			return []api.Task{{ID: 1, Title: "slow"}}, nil
		}
		return []api.Task{{ID: 2, Title: "fast"}}, nil
	}}
	st := tasks.NewStore(client, loggedInCache(t), nil)
	ctx := context.Background()

	done := make(chan tasks.State)
	go func() { done <- st.FetchAll(ctx) }()
	<-slowStarted

	fast := st.FetchAll(ctx)
	assert.Equal(t, []api.Task{{ID: 2, Title: "fast"}}, fast.Tasks)

	close(release)
	slow := <-done

	assert.Equal(t, []api.Task{{ID: 1, Title: "slow"}}, slow.Tasks)
	assert.Equal(t, []api.Task{{ID: 1, Title: "slow"}}, st.Snapshot().Tasks)
	assert.False(t, st.Snapshot().IsLoading)
	assert.Len(t, client.Calls(), 2, "overlapping fetches are not merged")
}
