package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the service root used when none is configured.
	DefaultBaseURL = "http://localhost:8080/api"

	// DefaultTimeout bounds a single HTTP exchange.
	DefaultTimeout = 10 * time.Second

	// maxErrorBody caps how much of an error response is read.
	maxErrorBody = 64 << 10

	userAgent = "tasktracker/1.0"
)

// HTTPClient implements Client over the service's JSON REST API.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying HTTP client (for testing or custom
// transports). Its Timeout and Transport are preserved on authenticated calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.httpClient = hc }
}

// WithRateLimit throttles outgoing requests to rps per second.
// A non-positive rps disables throttling.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *HTTPClient) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

// NewHTTPClient creates a client for the service rooted at baseURL.
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Signup implements Client.
func (c *HTTPClient) Signup(ctx context.Context, req SignupRequest) error {
	return c.do(ctx, c.httpClient, http.MethodPost, "/auth/signup", req, nil)
}

// Login implements Client.
func (c *HTTPClient) Login(ctx context.Context, req LoginRequest) (LoginResult, error) {
	var res LoginResult
	if err := c.do(ctx, c.httpClient, http.MethodPost, "/auth/login", req, &res); err != nil {
		return LoginResult{}, err
	}
	return res, nil
}

// ListTasks implements Client.
func (c *HTTPClient) ListTasks(ctx context.Context, creds Credentials) ([]Task, error) {
	var tasks []Task
	path := "/tasks/" + url.PathEscape(creds.UserID)
	if err := c.do(ctx, c.authed(creds), http.MethodGet, path, nil, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []Task{}
	}
	return tasks, nil
}

// CreateTask implements Client.
func (c *HTTPClient) CreateTask(ctx context.Context, creds Credentials, in TaskInput) (Task, error) {
	var task Task
	path := "/tasks/" + url.PathEscape(creds.UserID)
	if err := c.do(ctx, c.authed(creds), http.MethodPost, path, in, &task); err != nil {
		return Task{}, err
	}
	return task, nil
}

// UpdateTask implements Client.
func (c *HTTPClient) UpdateTask(ctx context.Context, creds Credentials, id int64, in TaskInput) (Task, error) {
	var task Task
	path := "/tasks/" + strconv.FormatInt(id, 10)
	if err := c.do(ctx, c.authed(creds), http.MethodPut, path, in, &task); err != nil {
		return Task{}, err
	}
	return task, nil
}

// DeleteTask implements Client.
func (c *HTTPClient) DeleteTask(ctx context.Context, creds Credentials, id int64) error {
	path := "/tasks/" + strconv.FormatInt(id, 10)
	return c.do(ctx, c.authed(creds), http.MethodDelete, path, nil, nil)
}

// authed returns an HTTP client that attaches creds.Token as a bearer token.
func (c *HTTPClient) authed(creds Credentials) *http.Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: creds.Token,
		TokenType:   "Bearer",
	})
	return &http.Client{
		Transport: &oauth2.Transport{
			Source: src,
			Base:   c.httpClient.Transport,
		},
		Timeout:       c.httpClient.Timeout,
		CheckRedirect: c.httpClient.CheckRedirect,
		Jar:           c.httpClient.Jar,
	}
}

// do performs one JSON exchange. body is encoded if non-nil; out is decoded
// from a 2xx response if non-nil.
func (c *HTTPClient) do(ctx context.Context, hc *http.Client, method, path string, body, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return wrapError(err)
		}
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			slog.String("request_id", requestID),
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return wrapError(err)
	}
	defer resp.Body.Close()

	c.logger.Debug("request completed",
		slog.String("request_id", requestID),
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// decodeError builds an *Error from a non-2xx response. A body that is not
// JSON or lacks "message" yields an Error with an empty Message.
func decodeError(resp *http.Response) error {
	apiErr := &Error{StatusCode: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return apiErr
	}

	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(data, &payload) == nil {
		apiErr.Message = payload.Message
	}
	return apiErr
}

// wrapError adds a short description to transport failures.
func wrapError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out: %w", err)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("request cancelled: %w", err)
	}
	return err
}
