// Package gateway implements the HTTP client for the remote admin API.
// Every request accepts and sends JSON and carries a bearer token when one
// is available.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// TokenSource supplies the current bearer token, or "" when signed out.
type TokenSource func() string

// HTTPError is returned for non-2xx responses. Message carries the
// server-supplied error field when the body was parseable, else the raw
// body text, else a status-derived message.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("api request failed (%d): %s", e.StatusCode, e.Message)
}

// RequestItem is a pending registration request as returned by the API.
type RequestItem struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Client talks to the admin requests API.
type Client struct {
	baseURL string
	http    *http.Client
	token   TokenSource
	log     zerolog.Logger
}

func NewClient(baseURL string, token TokenSource, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		token:   token,
		log:     log,
	}
}

// ListRequests fetches all pending registration requests.
func (c *Client) ListRequests(ctx context.Context) ([]RequestItem, error) {
	var out struct {
		Items []RequestItem `json:"items"`
	}
	if err := c.request(ctx, http.MethodGet, "/api/admin/requests", nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// ApproveRequest approves the registration request with the given id.
func (c *Client) ApproveRequest(ctx context.Context, id string) error {
	return c.request(ctx, http.MethodPost, "/api/admin/requests/"+id+"/approve", nil, nil)
}

// DeclineRequest declines the registration request with the given id.
func (c *Client) DeclineRequest(ctx context.Context, id string) error {
	return c.request(ctx, http.MethodPost, "/api/admin/requests/"+id+"/decline", nil, nil)
}

// request performs one API call. Non-2xx statuses become an *HTTPError; a
// success body that fails to decode into out is reported as an error.
func (c *Client) request(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Debug().Int("status", resp.StatusCode).Str("path", path).Msg("api request rejected")
		return &HTTPError{StatusCode: resp.StatusCode, Message: errorMessage(resp.StatusCode, data)}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%s %s: decode response: %w", method, path, err)
		}
	}
	return nil
}

// errorMessage extracts the server's error field from an error body.
// Misbehaving backends return non-JSON error pages; those are passed
// through as raw text rather than causing a hard failure.
func errorMessage(status int, body []byte) string {
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Error != "" {
			return envelope.Error
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return fmt.Sprintf("request failed with status %d", status)
}
