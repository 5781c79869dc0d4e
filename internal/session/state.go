// Package session owns the authentication state of the client.
//
// State transitions are pure functions over State; Manager runs the
// operations that produce them and holds the only mutable copy.
package session

// Status is the externally visible phase of a session.
type Status string

const (
	StatusAnonymous      Status = "anonymous"
	StatusAuthenticating Status = "authenticating"
	StatusAuthenticated  Status = "authenticated"
	StatusAuthError      Status = "auth_error"
)

// State is a snapshot of the session. Empty strings mean absent.
//
// IsAuthenticated is true only when Token and UserID were set by a
// successful login or restore. RememberedEmail is independent of
// authentication and survives logout.
type State struct {
	Token           string
	UserID          string
	IsAuthenticated bool
	IsLoading       bool
	Error           string
	RememberedEmail string
}

// Status derives the session phase from the state flags.
func (s State) Status() Status {
	switch {
	case s.IsAuthenticated:
		return StatusAuthenticated
	case s.IsLoading:
		return StatusAuthenticating
	case s.Error != "":
		return StatusAuthError
	default:
		return StatusAnonymous
	}
}

// Fallback messages used when the server gives none.
const (
	msgSignupFailed = "Signup failed"
	msgLoginFailed  = "Login failed"
	msgLogoutFailed = "Logout failed"
	msgSaveEmail    = "Failed to save remembered email"
	msgLoadEmail    = "Failed to load remembered email"
)

// started marks a new signup or login attempt.
func started(s State) State {
	s.IsLoading = true
	s.Error = ""
	return s
}

func signupSucceeded(s State) State {
	s.IsLoading = false
	s.Error = ""
	return s
}

func signupFailed(s State, msg string) State {
	s.IsLoading = false
	s.Error = msg
	return s
}

func loginSucceeded(s State, token, userID string) State {
	s.IsLoading = false
	s.Token = token
	s.UserID = userID
	s.IsAuthenticated = true
	s.Error = ""
	return s
}

// loginFailed always drops authentication, even if a previous login left
// the session authenticated.
func loginFailed(s State, msg string) State {
	s.IsLoading = false
	s.Error = msg
	s.Token = ""
	s.UserID = ""
	s.IsAuthenticated = false
	return s
}

// loggedOut resets credentials. savedEmail is the cached remembered email;
// if the cache had none the in-memory value is kept.
func loggedOut(s State, savedEmail string) State {
	s.Token = ""
	s.UserID = ""
	s.IsAuthenticated = false
	if savedEmail != "" {
		s.RememberedEmail = savedEmail
	}
	return s
}

func restored(s State, token, userID string) State {
	s.Token = token
	s.UserID = userID
	s.IsAuthenticated = true
	return s
}

// notRestored is the normal outcome when no credentials are cached.
// It is not an error.
func notRestored(s State) State {
	s.Token = ""
	s.UserID = ""
	s.IsAuthenticated = false
	return s
}

func rememberedEmailSet(s State, email string) State {
	s.RememberedEmail = email
	return s
}

func failed(s State, msg string) State {
	s.Error = msg
	return s
}

func errorCleared(s State) State {
	s.Error = ""
	return s
}
