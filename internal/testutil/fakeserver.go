// Package testutil provides testing utilities.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"tasktracker/internal/api"
)

// Failure is an injected error response.
// An empty Message produces a response without a "message" field.
type Failure struct {
	Status  int
	Message string
}

// Route names accepted by FakeServer.Fail.
const (
	RouteSignup = "signup"
	RouteLogin  = "login"
	RouteList   = "list"
	RouteCreate = "create"
	RouteUpdate = "update"
	RouteDelete = "delete"
)

// RecordedRequest is a request received by FakeServer.
type RecordedRequest struct {
	Method        string
	Path          string
	Authorization string
	RequestID     string
	Body          []byte
}

type fakeUser struct {
	id       string
	username string
	email    string
	password string
}

// FakeServer is an in-memory implementation of the remote task service.
// It mirrors the REST contract under the /api prefix.
type FakeServer struct {
	mu       sync.Mutex
	router   chi.Router
	users    []fakeUser
	tokens   map[string]string     // token -> userID
	tasks    map[string][]api.Task // userID -> tasks, server order
	nextUser int
	nextTask int64
	requests []RecordedRequest

	// Fail maps a route name to an injected failure.
	Fail map[string]Failure
}

// NewFakeServer creates an empty FakeServer.
func NewFakeServer() *FakeServer {
	f := &FakeServer{
		tokens:   make(map[string]string),
		tasks:    make(map[string][]api.Task),
		nextUser: 1,
		nextTask: 1,
		Fail:     make(map[string]Failure),
	}

	r := chi.NewRouter()
	r.Use(f.record)
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/signup", f.handleSignup)
		r.Post("/auth/login", f.handleLogin)
		r.Group(func(r chi.Router) {
			r.Use(f.requireToken)
			// {id} is a user ID for GET/POST and a task ID for PUT/DELETE.
			r.Get("/tasks/{id}", f.handleList)
			r.Post("/tasks/{id}", f.handleCreate)
			r.Put("/tasks/{id}", f.handleUpdate)
			r.Delete("/tasks/{id}", f.handleDelete)
		})
	})
	f.router = r
	return f
}

// ServeHTTP implements http.Handler.
func (f *FakeServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.router.ServeHTTP(w, r)
}

// Start serves f on a local listener for the duration of the test and
// returns the API base URL.
func (f *FakeServer) Start(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return srv.URL + "/api"
}

// AddUser registers an account and returns its user ID.
func (f *FakeServer) AddUser(username, email, password string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.addUserLocked(username, email, password)
}

func (f *FakeServer) addUserLocked(username, email, password string) string {
	id := strconv.Itoa(f.nextUser)
	f.nextUser++
	f.users = append(f.users, fakeUser{id: id, username: username, email: email, password: password})
	return id
}

// IssueToken makes token valid for userID.
func (f *FakeServer) IssueToken(userID, token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[token] = userID
}

// RevokeToken invalidates token.
func (f *FakeServer) RevokeToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, token)
}

// AddTask stores a task for userID and returns it.
func (f *FakeServer) AddTask(userID, title, description string, completed bool) api.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	task := api.Task{ID: f.nextTask, Title: title, Description: description, Completed: completed}
	f.nextTask++
	f.tasks[userID] = append(f.tasks[userID], task)
	return task
}

// SetNextTaskID sets the ID assigned to the next created task.
func (f *FakeServer) SetNextTaskID(id int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextTask = id
}

// Tasks returns a copy of userID's tasks.
func (f *FakeServer) Tasks(userID string) []api.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]api.Task, len(f.tasks[userID]))
	copy(out, f.tasks[userID])
	return out
}

// Requests returns the requests received so far.
func (f *FakeServer) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]RecordedRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

func (f *FakeServer) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewReader(body))
		}
		f.mu.Lock()
		f.requests = append(f.requests, RecordedRequest{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			RequestID:     r.Header.Get("X-Request-ID"),
			Body:          body,
		})
		f.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (f *FakeServer) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		f.mu.Lock()
		_, ok := f.tokens[token]
		f.mu.Unlock()
		if token == "" || !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *FakeServer) injected(w http.ResponseWriter, route string) bool {
	f.mu.Lock()
	fail, ok := f.Fail[route]
	f.mu.Unlock()
	if !ok {
		return false
	}
	if fail.Message == "" {
		w.WriteHeader(fail.Status)
		return true
	}
	writeJSON(w, fail.Status, map[string]string{"message": fail.Message})
	return true
}

func (f *FakeServer) handleSignup(w http.ResponseWriter, r *http.Request) {
	if f.injected(w, RouteSignup) {
		return
	}
	var req api.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.email == req.Email {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Email already in use"})
			return
		}
	}
	f.addUserLocked(req.Username, req.Email, req.Password)
	writeJSON(w, http.StatusOK, map[string]string{"message": "User registered successfully"})
}

func (f *FakeServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	if f.injected(w, RouteLogin) {
		return
	}
	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.email == req.Email && u.password == req.Password {
			token := uuid.NewString()
			f.tokens[token] = u.id
			writeJSON(w, http.StatusOK, api.LoginResult{Token: token, UserID: u.id})
			return
		}
	}
	writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid email or password"})
}

func (f *FakeServer) handleList(w http.ResponseWriter, r *http.Request) {
	if f.injected(w, RouteList) {
		return
	}
	userID := chi.URLParam(r, "id")

	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.userExistsLocked(userID) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "User not found"})
		return
	}
	tasks := f.tasks[userID]
	if tasks == nil {
		tasks = []api.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (f *FakeServer) handleCreate(w http.ResponseWriter, r *http.Request) {
	if f.injected(w, RouteCreate) {
		return
	}
	userID := chi.URLParam(r, "id")
	var in api.TaskInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.userExistsLocked(userID) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "User not found"})
		return
	}
	task := api.Task{ID: f.nextTask, Title: in.Title, Description: in.Description, Completed: in.Completed}
	f.nextTask++
	f.tasks[userID] = append(f.tasks[userID], task)
	writeJSON(w, http.StatusOK, task)
}

func (f *FakeServer) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if f.injected(w, RouteUpdate) {
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid task id"})
		return
	}
	var in api.TaskInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for userID, tasks := range f.tasks {
		for i, t := range tasks {
			if t.ID == id {
				updated := api.Task{ID: id, Title: in.Title, Description: in.Description, Completed: in.Completed}
				f.tasks[userID][i] = updated
				writeJSON(w, http.StatusOK, updated)
				return
			}
		}
	}
	writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Task not found"})
}

func (f *FakeServer) handleDelete(w http.ResponseWriter, r *http.Request) {
	if f.injected(w, RouteDelete) {
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid task id"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for userID, tasks := range f.tasks {
		for i, t := range tasks {
			if t.ID == id {
				f.tasks[userID] = append(tasks[:i:i], tasks[i+1:]...)
				writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
				return
			}
		}
	}
	// Not found carries no body.
	w.WriteHeader(http.StatusNotFound)
}

func (f *FakeServer) userExistsLocked(id string) bool {
	for _, u := range f.users {
		if u.id == id {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
