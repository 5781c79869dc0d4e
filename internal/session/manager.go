package session

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"tasktracker/internal/api"
	"tasktracker/internal/cache"
)

// Manager runs session operations against the remote service and the
// credential cache. It is the only writer of the cache.
//
// Operations never return errors: every failure lands in State.Error.
// Concurrent operations are not serialized against each other; whichever
// finishes last determines the final state.
type Manager struct {
	client api.Client
	cache  cache.Cache
	logger *slog.Logger

	mu        sync.Mutex
	state     State
	listeners []func(State)
}

// NewManager creates a Manager with an empty (anonymous) session.
func NewManager(client api.Client, c cache.Cache, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Manager{
		client: client,
		cache:  c,
		logger: logger.With(slog.String("component", "session")),
	}
}

// Snapshot returns the current state.
func (m *Manager) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Subscribe registers fn to be called with the new state after every
// transition.
func (m *Manager) Subscribe(fn func(State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// apply runs a transition and notifies listeners outside the lock.
func (m *Manager) apply(transition func(State) State) State {
	m.mu.Lock()
	m.state = transition(m.state)
	s := m.state
	listeners := slices.Clone(m.listeners)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(s)
	}
	return s
}

// Signup registers an account. Success leaves the session anonymous.
func (m *Manager) Signup(ctx context.Context, username, email, password string) State {
	m.apply(started)

	err := m.client.Signup(ctx, api.SignupRequest{Username: username, Email: email, Password: password})
	if err != nil {
		m.logger.Debug("signup failed", slog.String("error", err.Error()))
		msg := api.Message(err, msgSignupFailed)
		return m.apply(func(s State) State { return signupFailed(s, msg) })
	}

	m.logger.Debug("signup succeeded")
	return m.apply(signupSucceeded)
}

// Login authenticates and persists the token and user ID.
func (m *Manager) Login(ctx context.Context, email, password string) State {
	m.apply(started)

	res, err := m.client.Login(ctx, api.LoginRequest{Email: email, Password: password})
	if err != nil {
		m.logger.Debug("login failed", slog.String("error", err.Error()))
		msg := api.Message(err, msgLoginFailed)
		return m.apply(func(s State) State { return loginFailed(s, msg) })
	}
	if res.Token == "" || res.UserID == "" {
		m.logger.Debug("login response missing credentials")
		return m.apply(func(s State) State { return loginFailed(s, msgLoginFailed) })
	}

	if err := m.cache.Set(ctx, cache.KeyToken, res.Token); err != nil {
		m.logger.Error("failed to cache token", slog.String("error", err.Error()))
		return m.apply(func(s State) State { return loginFailed(s, msgLoginFailed) })
	}
	if err := m.cache.Set(ctx, cache.KeyUserID, res.UserID); err != nil {
		m.logger.Error("failed to cache user id", slog.String("error", err.Error()))
		return m.apply(func(s State) State { return loginFailed(s, msgLoginFailed) })
	}

	m.logger.Debug("login succeeded", slog.String("user_id", res.UserID))
	return m.apply(func(s State) State { return loginSucceeded(s, res.Token, res.UserID) })
}

// Logout removes the cached token and user ID. The remembered email is
// left in the cache and carried into the new state.
func (m *Manager) Logout(ctx context.Context) State {
	saved, _, err := m.cache.Get(ctx, cache.KeyRememberedEmail)
	if err != nil {
		m.logger.Error("failed to read remembered email", slog.String("error", err.Error()))
		return m.apply(func(s State) State { return failed(s, msgLogoutFailed) })
	}
	for _, key := range []string{cache.KeyToken, cache.KeyUserID} {
		if err := m.cache.Delete(ctx, key); err != nil {
			m.logger.Error("failed to remove credential", slog.String("key", key), slog.String("error", err.Error()))
			return m.apply(func(s State) State { return failed(s, msgLogoutFailed) })
		}
	}

	m.logger.Debug("logged out")
	return m.apply(func(s State) State { return loggedOut(s, saved) })
}

// RestoreSession authenticates from cached credentials alone. The token is
// not verified with the server; an expired token surfaces on the first task
// operation.
func (m *Manager) RestoreSession(ctx context.Context) State {
	token, hasToken, err := m.cache.Get(ctx, cache.KeyToken)
	if err != nil {
		m.logger.Error("failed to read token", slog.String("error", err.Error()))
		return m.apply(notRestored)
	}
	userID, hasUser, err := m.cache.Get(ctx, cache.KeyUserID)
	if err != nil {
		m.logger.Error("failed to read user id", slog.String("error", err.Error()))
		return m.apply(notRestored)
	}
	if !hasToken || !hasUser || token == "" || userID == "" {
		m.logger.Debug("no session to restore")
		return m.apply(notRestored)
	}

	m.logger.Debug("session restored", slog.String("user_id", userID))
	return m.apply(func(s State) State { return restored(s, token, userID) })
}

// SetRememberedEmail persists email when remember is true and forgets it
// otherwise.
func (m *Manager) SetRememberedEmail(ctx context.Context, email string, remember bool) State {
	if !remember {
		if err := m.cache.Delete(ctx, cache.KeyRememberedEmail); err != nil {
			m.logger.Error("failed to forget email", slog.String("error", err.Error()))
			return m.apply(func(s State) State { return failed(s, msgSaveEmail) })
		}
		return m.apply(func(s State) State { return rememberedEmailSet(s, "") })
	}

	if err := m.cache.Set(ctx, cache.KeyRememberedEmail, email); err != nil {
		m.logger.Error("failed to remember email", slog.String("error", err.Error()))
		return m.apply(func(s State) State { return failed(s, msgSaveEmail) })
	}
	return m.apply(func(s State) State { return rememberedEmailSet(s, email) })
}

// GetRememberedEmail loads the remembered email into the state.
func (m *Manager) GetRememberedEmail(ctx context.Context) State {
	email, _, err := m.cache.Get(ctx, cache.KeyRememberedEmail)
	if err != nil {
		m.logger.Error("failed to load remembered email", slog.String("error", err.Error()))
		return m.apply(func(s State) State { return failed(s, msgLoadEmail) })
	}
	return m.apply(func(s State) State { return rememberedEmailSet(s, email) })
}

// ClearError acknowledges the current error.
func (m *Manager) ClearError() State {
	return m.apply(errorCleared)
}
