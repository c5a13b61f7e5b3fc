package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/amonks/todos/todo"
)

// Client calls the todo HTTP API.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client for the given address or URL.
func NewClient(addr string) *Client {
	baseURL := strings.TrimRight(addr, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}
	return &Client{baseURL: baseURL, client: &http.Client{}}
}

// List returns every todo in insertion order.
func (c *Client) List(ctx context.Context) ([]todo.Todo, error) {
	var todos []todo.Todo
	if err := c.do(ctx, http.MethodGet, "/todos", nil, &todos, http.StatusOK); err != nil {
		return nil, err
	}
	return todos, nil
}

// Show returns one todo.
func (c *Client) Show(ctx context.Context, id string) (*todo.Todo, error) {
	var item todo.Todo
	if err := c.do(ctx, http.MethodGet, todoPath(id), nil, &item, http.StatusOK); err != nil {
		return nil, err
	}
	return &item, nil
}

// Create adds a todo.
func (c *Client) Create(ctx context.Context, fields todo.Fields) (*todo.Todo, error) {
	var item todo.Todo
	if err := c.do(ctx, http.MethodPost, "/todos", fields, &item, http.StatusCreated); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateFields replaces a todo's title, content and importance.
func (c *Client) UpdateFields(ctx context.Context, id string, fields todo.Fields) (*todo.Todo, error) {
	var item todo.Todo
	if err := c.do(ctx, http.MethodPut, todoPath(id), fields, &item, http.StatusOK); err != nil {
		return nil, err
	}
	return &item, nil
}

// ChangeState moves a todo to state.
func (c *Client) ChangeState(ctx context.Context, id string, state todo.State) (*todo.Todo, error) {
	var item todo.Todo
	if err := c.do(ctx, http.MethodPut, todoPath(id)+"/state", stateRequest{State: state}, &item, http.StatusOK); err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes a todo. Deleting a missing todo succeeds.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, todoPath(id), nil, nil, http.StatusNoContent)
}

func todoPath(id string) string {
	return "/todos/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, payload any, dest any, wantStatus int) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		return readErrorResponse(resp)
	}
	if dest == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(dest)
}

// ResponseError is a failed API call. It unwraps to the todo error that
// matches its status code, so errors.Is works across the wire.
type ResponseError struct {
	StatusCode int
	Message    string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("todo server: %s", e.Message)
}

func (e *ResponseError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusBadRequest:
		return todo.ErrValidation
	case http.StatusNotFound:
		return todo.ErrTodoNotFound
	case http.StatusConflict:
		return todo.ErrNotEditable
	default:
		return nil
	}
}

func readErrorResponse(resp *http.Response) error {
	var payload map[string]string
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(&payload); err == nil {
		if message, ok := payload["error"]; ok {
			return &ResponseError{StatusCode: resp.StatusCode, Message: message}
		}
	}
	return &ResponseError{StatusCode: resp.StatusCode, Message: resp.Status}
}
