// Package client talks to the finanzas HTTP API and its change feed.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/LovationAdmin/finanzas/models"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
)

// APIError is any other non-2xx answer.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.Status, e.Message)
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) ListMovements(ctx context.Context) ([]models.Movement, error) {
	var out []models.Movement
	if err := c.do(ctx, http.MethodGet, "/api/movimientos", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetMovement(ctx context.Context, id int64) (models.Movement, error) {
	var out models.Movement
	err := c.do(ctx, http.MethodGet, movementPath(id), nil, &out)
	return out, err
}

func (c *Client) CreateMovement(ctx context.Context, req models.MovementRequest) (models.Movement, error) {
	var out models.Movement
	err := c.do(ctx, http.MethodPost, "/api/movimientos", req, &out)
	return out, err
}

func (c *Client) UpdateMovement(ctx context.Context, id int64, req models.MovementRequest) (models.Movement, error) {
	var out models.Movement
	err := c.do(ctx, http.MethodPut, movementPath(id), req, &out)
	return out, err
}

func (c *Client) DeleteMovement(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, movementPath(id), nil, nil)
}

// Login looks name up. No secret is sent because none exists.
func (c *Client) Login(ctx context.Context, name string) (models.User, error) {
	var out models.User
	err := c.do(ctx, http.MethodPost, "/api/login", models.LoginRequest{Name: name}, &out)
	return out, err
}

func (c *Client) Register(ctx context.Context, name string, role models.Role) (models.User, error) {
	r := string(role)
	var out models.RegisterResponse
	err := c.do(ctx, http.MethodPost, "/api/registro", models.RegisterRequest{Name: &name, Role: &r}, &out)
	if err != nil {
		return models.User{}, err
	}
	return models.User{Name: out.Name, Role: out.Role}, nil
}

func movementPath(id int64) string {
	return "/api/movimientos/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func statusError(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	msg := strings.TrimSpace(string(b))
	if json.Unmarshal(b, &payload) == nil {
		if payload.Error != "" {
			msg = payload.Error
		} else if payload.Message != "" {
			msg = payload.Message
		}
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	case http.StatusBadRequest:
		// registro answers 400 for a taken name; a malformed body carries "error"
		if payload.Error == "" && payload.Message != "" {
			return fmt.Errorf("%w: %s", ErrConflict, msg)
		}
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}
