// Package api is the HTTP client for the shop management backend. Every
// call attaches the session bearer token and the organization id decoded
// from it; responses are decoded tolerantly, accepting both the
// {success,data} envelope and bare payloads.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jmorales/shopdesk/internal/session"
)

// Client is a thin HTTP client for the backend REST API. It handles
// bearer token authentication, JSON marshaling, and automatic retry with
// exponential backoff on HTTP 429.
type Client struct {
	baseURL    string
	sessions   session.Provider
	httpClient *http.Client
	maxRetries int
	log        zerolog.Logger
}

// NewClient creates a backend client. The baseURL is the root URL of the
// API (e.g. https://api.shop.example.com). Tokens are read from the
// session provider on every request so a re-login takes effect without
// rebuilding the client.
func NewClient(baseURL string, sessions session.Provider, log zerolog.Logger) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		sessions: sessions,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		maxRetries: 3,
		log:        log,
	}
}

// SetTimeout overrides the default per-request timeout.
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.httpClient.Timeout = d
	}
}

// Get performs an HTTP GET request and unmarshals the JSON response.
func (c *Client) Get(ctx context.Context, path string, result interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, result)
}

// Post performs an HTTP POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, result interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, result)
}

// Put performs an HTTP PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, result interface{}) error {
	return c.do(ctx, http.MethodPut, path, body, result)
}

// Delete performs an HTTP DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// do is the core HTTP method that builds the request, handles auth,
// rate limiting with exponential backoff, and JSON (de)serialization.
func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	body interface{},
	result interface{},
) error {
	sess := c.sessions.Current()
	if sess == nil {
		return session.ErrNoSession
	}

	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		// Rebuild the body reader on retries since it was consumed.
		if attempt > 0 && body != nil {
			data, _ := json.Marshal(body)
			bodyReader = bytes.NewReader(data)
		}

		req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}

		req.Header.Set("Authorization", "Bearer "+sess.Token)
		req.Header.Set("Accept", "application/json")
		// Correlates client retries with server-side request logs.
		req.Header.Set("X-Request-ID", uuid.NewString())
		if sess.Claims.OrgID != "" {
			req.Header.Set("X-Org-ID", sess.Claims.OrgID)
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("executing request %s %s: %w", method, path, err)
		}

		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return fmt.Errorf("reading response body: %w", readErr)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			waitDuration := retryAfterDuration(resp, attempt)
			lastErr = fmt.Errorf("rate limited (429) on %s %s", method, path)

			c.log.Warn().
				Str("method", method).
				Str("path", path).
				Dur("wait", waitDuration).
				Msg("rate limited, backing off")

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(waitDuration):
				continue
			}
		}

		if resp.StatusCode == http.StatusUnauthorized {
			return &AuthError{Message: "session expired, please log in again"}
		}

		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%s %s: %w", method, path, ErrNotFound)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return decodeError(resp.StatusCode, respBody)
		}

		// No content to parse (e.g. 204).
		if result == nil || resp.StatusCode == http.StatusNoContent {
			return nil
		}

		if err := decodeBody(respBody, result); err != nil {
			return fmt.Errorf("unmarshaling response from %s %s: %w", method, path, err)
		}

		return nil
	}

	return fmt.Errorf("max retries (%d) exceeded: %w", c.maxRetries, lastErr)
}

// envelope is the conventional {success,data} wrapper. Some endpoints
// return it, others return the payload bare; both must be accepted.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   json.RawMessage `json:"error"`
	Details []FieldError    `json:"details"`
}

// decodeBody unmarshals a successful response into result, unwrapping
// the {success,data} envelope when present.
func decodeBody(respBody []byte, result interface{}) error {
	var env envelope
	if err := json.Unmarshal(respBody, &env); err == nil &&
		env.Success != nil && len(env.Data) > 0 {
		return json.Unmarshal(env.Data, result)
	}

	return json.Unmarshal(respBody, result)
}

// decodeError maps a non-2xx body to the richest error it can: structured
// field details become a ValidationError, a recognizable message becomes
// a serverError, anything else falls back to the raw status.
func decodeError(status int, respBody []byte) error {
	var env envelope
	if json.Unmarshal(respBody, &env) == nil {
		details := env.Details
		message := env.Message

		// Some endpoints nest the message and details under "error".
		if len(env.Error) > 0 {
			var nested struct {
				Message string       `json:"message"`
				Details []FieldError `json:"details"`
			}
			if json.Unmarshal(env.Error, &nested) == nil {
				if nested.Message != "" {
					message = nested.Message
				}
				if len(nested.Details) > 0 {
					details = nested.Details
				}
			} else {
				var plain string
				if json.Unmarshal(env.Error, &plain) == nil {
					message = plain
				}
			}
		}

		if len(details) > 0 {
			return &ValidationError{Fields: details}
		}
		return &serverError{Status: status, Message: message}
	}

	return &serverError{Status: status}
}

// retryAfterDuration reads the Retry-After header and computes a wait
// duration. Falls back to exponential backoff if the header is missing.
func retryAfterDuration(resp *http.Response, attempt int) time.Duration {
	if header := resp.Header.Get("Retry-After"); header != "" {
		if seconds, err := strconv.Atoi(header); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}

	// Exponential backoff: 1s, 2s, 4s, ...
	backoff := time.Duration(1<<uint(attempt)) * time.Second
	if backoff > 30*time.Second {
		backoff = 30 * time.Second
	}
	return backoff
}
