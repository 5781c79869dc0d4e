package api

// Task is a task record as stored by the remote service.
type Task struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// TaskInput is the body of create and update requests.
type TaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// Credentials identify the caller of a task operation.
// Empty values are sent as-is; the server rejects them.
type Credentials struct {
	Token  string
	UserID string
}

// SignupRequest is the body of POST /auth/signup.
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the successful response of POST /auth/login.
type LoginResult struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}
