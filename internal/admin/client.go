// Package admin is the HTTP gateway to the commerce backend's management
// endpoints for banners, products, categories, and product metadata.
package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const maxResponseBytes = 8 << 20

// HTTPClient is the transport used for backend calls.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// APIError carries a backend rejection back to the caller with the backend's
// own message when one was provided.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("admin: backend returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("admin: backend returned %d", e.Status)
}

// Deps configures a Client.
type Deps struct {
	BaseURL    string
	HTTPClient HTTPClient
	Timeout    time.Duration
	Logger     *zap.Logger
}

// Client issues management calls against the backend.
type Client struct {
	base    *url.URL
	client  HTTPClient
	timeout time.Duration
	logger  *zap.Logger
}

// NewClient validates deps and constructs a Client.
func NewClient(deps Deps) (*Client, error) {
	if deps.BaseURL == "" {
		return nil, errors.New("admin: base url is required")
	}
	base, err := url.Parse(deps.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("admin: invalid base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, errors.New("admin: base url must be absolute")
	}

	client := deps.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	timeout := deps.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		base:    base,
		client:  client,
		timeout: timeout,
		logger:  logger,
	}, nil
}

// envelope is the backend's preferred response shape. Some endpoints return
// bare arrays or objects instead, decodeInto copes with both.
type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// decodeInto unwraps a { success, message, data } envelope when present and
// otherwise decodes the body directly into out. A nil out discards the body.
func decodeInto(body []byte, out any) error {
	if out == nil {
		return nil
	}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil
	}

	if trimmed[0] == '{' {
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err == nil && (env.Success != nil || len(env.Data) > 0) {
			if len(env.Data) == 0 {
				return nil
			}
			return json.Unmarshal(env.Data, out)
		}
	}
	return json.Unmarshal(trimmed, out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, payload, out any) error {
	var body io.Reader
	contentType := ""
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("admin: encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, query, body, contentType, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	raw, err := c.doRaw(ctx, method, path, query, body, contentType)
	if err != nil {
		return err
	}
	if err := decodeInto(raw, out); err != nil {
		return fmt.Errorf("admin: decode response: %w", err)
	}
	return nil
}

func (c *Client) doRaw(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.base.JoinPath(path)
	if len(query) > 0 {
		endpoint.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return nil, fmt.Errorf("admin: build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("admin: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("admin: read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, errorFromResponse(resp.StatusCode, raw)
	}
	return raw, nil
}

// errorFromResponse extracts the backend's message field when the error body
// is a JSON envelope, falling back to the raw body text.
func errorFromResponse(status int, body []byte) error {
	apiErr := &APIError{Status: status}

	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Message != "" {
		apiErr.Message = env.Message
		return apiErr
	}

	text := strings.TrimSpace(string(body))
	if len(text) > 256 {
		text = text[:256]
	}
	apiErr.Message = text
	return apiErr
}
