package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  Status
	}{
		{"empty", State{}, StatusAnonymous},
		{"loading", State{IsLoading: true}, StatusAuthenticating},
		{"error", State{Error: "Login failed"}, StatusAuthError},
		{"authenticated", State{Token: "t1", UserID: "u1", IsAuthenticated: true}, StatusAuthenticated},
		{"authenticated while loading", State{IsAuthenticated: true, IsLoading: true}, StatusAuthenticated},
		{"remembered email only", State{RememberedEmail: "a@b.com"}, StatusAnonymous},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.Status())
		})
	}
}

func TestTransitionsArePure(t *testing.T) {
	before := State{Error: "old", RememberedEmail: "a@b.com"}

	after := started(before)

	assert.Equal(t, "old", before.Error, "input must not be mutated")
	assert.True(t, after.IsLoading)
	assert.Empty(t, after.Error)
	assert.Equal(t, "a@b.com", after.RememberedEmail)
}

func TestLoginFailed_ResetsStaleAuthentication(t *testing.T) {
	s := State{Token: "t0", UserID: "u0", IsAuthenticated: true, IsLoading: true}

	s = loginFailed(s, "Invalid email or password")

	assert.False(t, s.IsAuthenticated)
	assert.Empty(t, s.Token)
	assert.Empty(t, s.UserID)
	assert.False(t, s.IsLoading)
	assert.Equal(t, "Invalid email or password", s.Error)
	assert.Equal(t, StatusAuthError, s.Status())
}

func TestLoggedOut_RememberedEmail(t *testing.T) {
	authed := State{Token: "t1", UserID: "u1", IsAuthenticated: true, RememberedEmail: "old@b.com"}

	s := loggedOut(authed, "a@b.com")
	assert.Equal(t, State{RememberedEmail: "a@b.com"}, s)

	s = loggedOut(authed, "")
	assert.Equal(t, State{RememberedEmail: "old@b.com"}, s, "in-memory value kept when cache has none")
}

func TestErrorCleared_OnlyTouchesError(t *testing.T) {
	s := State{Token: "t1", UserID: "u1", IsAuthenticated: true, Error: "x", RememberedEmail: "a@b.com"}

	got := errorCleared(s)

	s.Error = ""
	assert.Equal(t, s, got)
}
