package board

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"makeitall-backend/internal/logger"
	"makeitall-backend/internal/service"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// MutationResult is the server's verdict on a task mutation. Success false
// means the server rejected the mutation (authorization, validation or
// not-found), as opposed to a transport error.
type MutationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Client calls the task store endpoints on behalf of the board
type Client struct {
	http *resty.Client
	log  *logger.Logger
}

// NewClient creates a board API client for the given base URL and session token
func NewClient(baseURL, token string) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(token).
		SetHeader("Content-Type", "application/json")

	return &Client{
		http: httpClient,
		log:  logger.New(),
	}
}

// ListTasks fetches the caller-scoped task list for a project
func (c *Client) ListTasks(ctx context.Context, projectID uuid.UUID) ([]service.TaskResponse, error) {
	var result service.TaskListResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&result).
		Get(fmt.Sprintf("/api/v1/projects/%s/tasks", projectID))
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("list tasks: server returned %s", resp.Status())
	}
	return result.Tasks, nil
}

// CreateTask creates a task in a project
func (c *Client) CreateTask(ctx context.Context, projectID uuid.UUID, req *service.CreateTaskRequest) (MutationResult, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		Post(fmt.Sprintf("/api/v1/projects/%s/tasks", projectID))
	if err != nil {
		return MutationResult{}, fmt.Errorf("create task: %w", err)
	}
	return c.parseMutation(resp, false)
}

// UpdateStatus moves a task to a new status
func (c *Client) UpdateStatus(ctx context.Context, taskID uuid.UUID, newStatus string) (MutationResult, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"new_status": newStatus}).
		Patch(fmt.Sprintf("/api/v1/tasks/%s/status", taskID))
	if err != nil {
		return MutationResult{}, fmt.Errorf("update status: %w", err)
	}
	return c.parseMutation(resp, false)
}

// UpdatePriority changes a task's priority
func (c *Client) UpdatePriority(ctx context.Context, taskID uuid.UUID, priority string) (MutationResult, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"priority": priority}).
		Patch(fmt.Sprintf("/api/v1/tasks/%s/priority", taskID))
	if err != nil {
		return MutationResult{}, fmt.Errorf("update priority: %w", err)
	}
	return c.parseMutation(resp, false)
}

// DeleteTask deletes a task
func (c *Client) DeleteTask(ctx context.Context, taskID uuid.UUID) (MutationResult, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/api/v1/tasks/%s", taskID))
	if err != nil {
		return MutationResult{}, fmt.Errorf("delete task: %w", err)
	}
	return c.parseMutation(resp, true)
}

// parseMutation decodes the success envelope. A 2xx response with an empty
// or non-JSON body is ambiguous; the raw body is always logged for
// diagnosis. Only delete treats it as implicit success, a known leniency of
// the legacy endpoint. Everything else reports a parse error so the caller
// rolls back rather than guessing.
func (c *Client) parseMutation(resp *resty.Response, lenientEmpty bool) (MutationResult, error) {
	body := resp.Body()
	trimmed := strings.TrimSpace(string(body))

	var result MutationResult
	if trimmed != "" {
		if err := json.Unmarshal(body, &result); err == nil {
			if !result.Success && result.Message == "" {
				result.Message = resp.Status()
			}
			return result, nil
		}
	}

	c.log.WithFields(map[string]interface{}{
		"status":   resp.StatusCode(),
		"raw_body": trimmed,
	}).Warn("ambiguous mutation response")

	if resp.IsSuccess() && lenientEmpty {
		return MutationResult{Success: true}, nil
	}
	if resp.IsError() {
		return MutationResult{Success: false, Message: resp.Status()}, nil
	}
	return MutationResult{}, fmt.Errorf("unparseable response body (status %d)", resp.StatusCode())
}
