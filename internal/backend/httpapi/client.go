// Package httpapi implements the service.Service interface over the task
// service's JSON HTTP API.
package httpapi

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
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"taskdeck/internal/config"
	"taskdeck/internal/service"
)

// RequestIDHeader carries a per-request id so server logs can be matched
// with client debug logs.
const RequestIDHeader = "X-Request-ID"

// Client implements service.Service against the remote task API.
// It issues exactly one HTTP call per method, with no retry and no timeout;
// cancellation is only through the caller's context.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	log     *slog.Logger
}

// New creates a client for cfg.BaseURL.
// If a token is stored, every request carries it as a bearer credential.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	token, err := cfg.LoadToken()
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	if token != nil {
		// oauth2 picks up the instrumented client as its base transport
		ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))
	}

	return NewWithHTTPClient(cfg.BaseURL, httpClient, cfg.Logger())
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, httpClient *http.Client, log *slog.Logger) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url: %q", baseURL)
	}
	if u.Path == "" {
		u.Path = "/"
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Client{baseURL: u, http: httpClient, log: log}, nil
}

// ListTasks implements service.Service.
func (c *Client) ListTasks(ctx context.Context, skip, limit int) (service.ListPage, error) {
	var page service.ListPage
	err := c.request(ctx, http.MethodGet, "tasks", pageQuery(skip, limit), nil, &page)
	return page, err
}

// SearchTasks implements service.Service.
func (c *Client) SearchTasks(ctx context.Context, query string, skip, limit int) (service.ListPage, error) {
	q := pageQuery(skip, limit)
	q.Set("query", query)

	var page service.ListPage
	err := c.request(ctx, http.MethodGet, "tasks/search", q, nil, &page)
	return page, err
}

// GetTask implements service.Service.
func (c *Client) GetTask(ctx context.Context, id int) (service.Task, error) {
	var task service.Task
	err := c.request(ctx, http.MethodGet, taskPath(id), nil, nil, &task)
	return task, err
}

// CreateTask implements service.Service.
func (c *Client) CreateTask(ctx context.Context, in service.NewTask) (service.Task, error) {
	var task service.Task
	err := c.request(ctx, http.MethodPost, "tasks", nil, in, &task)
	return task, err
}

// UpdateTask implements service.Service.
func (c *Client) UpdateTask(ctx context.Context, id int, patch service.TaskPatch) (service.Task, error) {
	var task service.Task
	err := c.request(ctx, http.MethodPut, taskPath(id), nil, patch, &task)
	return task, err
}

// DeleteTask implements service.Service.
func (c *Client) DeleteTask(ctx context.Context, id int) error {
	return c.request(ctx, http.MethodDelete, taskPath(id), nil, nil, nil)
}

// Health implements service.Service.
func (c *Client) Health(ctx context.Context) error {
	var status struct {
		Status string `json:"status"`
	}
	if err := c.request(ctx, http.MethodGet, "health", nil, nil, &status); err != nil {
		return err
	}
	if status.Status != "ok" {
		return &service.RequestFailedError{StatusCode: http.StatusOK, Message: fmt.Sprintf("unhealthy: %q", status.Status)}
	}
	return nil
}

// request performs one call. body, if non-nil, is sent as JSON; out, if
// non-nil, receives the decoded JSON response. A 204 response is never
// decoded. Every failure is a *service.RequestFailedError.
func (c *Client) request(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &service.RequestFailedError{Message: fmt.Sprintf("encode request: %v", err), Err: err}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return &service.RequestFailedError{Message: err.Error(), Err: err}
	}
	reqID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.DebugContext(ctx, "request failed",
			slog.String("method", method),
			slog.String("path", u.Path),
			slog.String("request_id", reqID),
			slog.Any("error", err),
		)
		return &service.RequestFailedError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	c.log.DebugContext(ctx, "request done",
		slog.String("method", method),
		slog.String("path", u.Path),
		slog.Int("status", resp.StatusCode),
		slog.String("request_id", reqID),
		slog.Duration("took", time.Since(start)),
	)

	if err := googleapi.CheckResponse(resp); err != nil {
		return responseError(resp.StatusCode, err)
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &service.RequestFailedError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("invalid response: %v", err),
			Err:        err,
		}
	}
	return nil
}

// responseError converts a non-2xx response into a RequestFailedError whose
// message is the response body text.
func responseError(status int, err error) *service.RequestFailedError {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return service.RequestFailed(status, strings.TrimSpace(gerr.Body))
	}
	return service.RequestFailed(status, "")
}

func pageQuery(skip, limit int) url.Values {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(skip))
	q.Set("limit", strconv.Itoa(limit))
	return q
}

func taskPath(id int) string {
	return "tasks/" + strconv.Itoa(id)
}
