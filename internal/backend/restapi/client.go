// Package restapi implements service.Service against the remote todo HTTP API.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"todosync/internal/config"
	"todosync/internal/logging"
	"todosync/internal/service"
)

const (
	// TasksPath is the task collection resource.
	TasksPath = "/tasks"

	// APITimeout is the default timeout for API calls.
	APITimeout = config.DefaultTimeout

	// RequestIDHeader carries a per-request correlation id.
	RequestIDHeader = "X-Request-Id"
)

// endpoint performs JSON round trips against one base URL.
type endpoint struct {
	http    *http.Client
	baseURL string
	timeout time.Duration
	logger  *log.Logger
}

// Client implements service.Service using the remote REST API.
type Client struct {
	endpoint
}

// Option configures a Client or Authenticator.
type Option func(*endpoint)

// WithTimeout overrides APITimeout.
func WithTimeout(d time.Duration) Option {
	return func(e *endpoint) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *log.Logger) Option {
	return func(e *endpoint) {
		if l != nil {
			e.logger = l
		}
	}
}

func newEndpoint(baseURL string, httpClient *http.Client, opts []Option) endpoint {
	e := endpoint{
		http:    httpClient,
		baseURL: baseURL,
		timeout: APITimeout,
		logger:  logging.Discard(),
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// New creates a client that authenticates every request with the bearer token.
func New(ctx context.Context, cfg *config.Config, token string, logger *log.Logger) (*Client, error) {
	if token == "" {
		return nil, service.ErrUnauthorized
	}
	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	httpClient := oauth2.NewClient(ctx, tokenSource)
	return NewWithHTTPClient(cfg.APIURL, httpClient, WithTimeout(cfg.Timeout.Duration), WithLogger(logger)), nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
// The HTTP client is responsible for authentication.
func NewWithHTTPClient(baseURL string, httpClient *http.Client, opts ...Option) *Client {
	return &Client{endpoint: newEndpoint(baseURL, httpClient, opts)}
}

// ListTasks accepts either a bare JSON array or an object wrapping the array under "tasks".
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, TasksPath, nil, &raw); err != nil {
		return nil, err
	}
	return decodeTaskList(raw)
}

// CreateTask creates a task and returns the server's copy.
func (c *Client) CreateTask(ctx context.Context, task service.NewTask) (service.Task, error) {
	var created service.Task
	if err := c.do(ctx, http.MethodPost, TasksPath, task, &created); err != nil {
		return service.Task{}, err
	}
	return checkTask(created)
}

// DeleteTask deletes a task. The response body is discarded.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, taskPath(id), nil, nil)
}

// SetStatus patches a task's status.
func (c *Client) SetStatus(ctx context.Context, id string, status service.Status) (service.Task, error) {
	var updated service.Task
	body := struct {
		Status service.Status `json:"status"`
	}{status}
	if err := c.do(ctx, http.MethodPatch, taskPath(id)+"/status", body, &updated); err != nil {
		return service.Task{}, err
	}
	return checkTask(updated)
}

// SetPriority patches a task's priority.
func (c *Client) SetPriority(ctx context.Context, id string, priority service.Priority) (service.Task, error) {
	var updated service.Task
	body := struct {
		Priority service.Priority `json:"priority"`
	}{priority}
	if err := c.do(ctx, http.MethodPatch, taskPath(id)+"/priority", body, &updated); err != nil {
		return service.Task{}, err
	}
	return checkTask(updated)
}

func taskPath(id string) string {
	return TasksPath + "/" + url.PathEscape(id)
}

// do sends body as JSON and decodes the response into out. A nil out discards the body.
func (e *endpoint) do(ctx context.Context, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, e.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)

	start := time.Now()
	res, err := e.http.Do(req)
	if err != nil {
		e.logger.Debug("request failed", "method", method, "path", path, "request_id", reqID, "err", err)
		return wrapError(err)
	}
	defer res.Body.Close()
	e.logger.Debug("request", "method", method, "path", path, "status", res.StatusCode,
		"request_id", reqID, "elapsed", time.Since(start))

	if err := googleapi.CheckResponse(res); err != nil {
		return wrapError(err)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return service.ErrTimeout
		}
		return fmt.Errorf("%w: %v", service.ErrMalformedResponse, err)
	}
	return nil
}

// decodeTaskList handles the two list shapes the API is known to return.
func decodeTaskList(raw json.RawMessage) ([]service.Task, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, service.ErrMalformedResponse
	}

	var tasks []service.Task
	switch raw[0] {
	case '[':
		if err := json.Unmarshal(raw, &tasks); err != nil {
			return nil, fmt.Errorf("%w: %v", service.ErrMalformedResponse, err)
		}
	case '{':
		var wrapped struct {
			Tasks []service.Task `json:"tasks"`
		}
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return nil, fmt.Errorf("%w: %v", service.ErrMalformedResponse, err)
		}
		tasks = wrapped.Tasks
	default:
		return nil, fmt.Errorf("%w: unexpected list body", service.ErrMalformedResponse)
	}

	if tasks == nil {
		tasks = []service.Task{}
	}
	return tasks, nil
}

// checkTask rejects task bodies without a server-assigned id.
func checkTask(t service.Task) (service.Task, error) {
	if t.ID == "" {
		return service.Task{}, fmt.Errorf("%w: task without _id", service.ErrMalformedResponse)
	}
	return t, nil
}

// wrapError maps transport and HTTP failures onto the service errors.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return service.ErrTimeout
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return service.ErrUnauthorized
		case http.StatusNotFound:
			return service.ErrNotFound
		}
		return fmt.Errorf("HTTP %d: %s", apiErr.Code, errorMessage(apiErr))
	}

	return err
}

// errorMessage prefers a message field from a JSON error body over the raw body.
func errorMessage(apiErr *googleapi.Error) string {
	if apiErr.Message != "" {
		return apiErr.Message
	}
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal([]byte(apiErr.Body), &body) == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	if apiErr.Body != "" {
		return apiErr.Body
	}
	return http.StatusText(apiErr.Code)
}
