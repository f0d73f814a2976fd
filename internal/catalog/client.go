// Package catalog fetches storefront content from the commerce backend,
// normalising its heterogeneous payloads and degrading to a bundled snapshot
// when the backend is unreachable.
package catalog

import (
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

	"github.com/mygiftflora/storefront/internal/domain"
)

const maxResponseBytes = 4 << 20

// HTTPClient is the transport used for backend calls.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Deps configures a Client.
type Deps struct {
	BaseURL        string
	UploadsBaseURL string
	HTTPClient     HTTPClient
	Timeout        time.Duration
	Logger         *zap.Logger
}

// Client reads home and navigation content from the backend.
type Client struct {
	base      *url.URL
	client    HTTPClient
	timeout   time.Duration
	logger    *zap.Logger
	normalize *normalizer
}

// NewClient validates deps and constructs a Client.
func NewClient(deps Deps) (*Client, error) {
	if deps.BaseURL == "" {
		return nil, errors.New("catalog: base url is required")
	}
	base, err := url.Parse(deps.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("catalog: invalid base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, errors.New("catalog: base url must be absolute")
	}

	client := deps.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	timeout := deps.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		base:      base,
		client:    client,
		timeout:   timeout,
		logger:    logger,
		normalize: newNormalizer(deps.UploadsBaseURL),
	}, nil
}

// Home returns the composite home page payload. When the backend call fails
// or returns a non-OK status the bundled snapshot is served instead, the
// failure is logged and never surfaced to the shopper.
func (c *Client) Home(ctx context.Context) (domain.HomePayload, error) {
	raw, err := c.fetchHome(ctx)
	if err != nil {
		c.logger.Warn("home fetch failed, serving bundled snapshot", zap.Error(err))
		raw, err = fallbackHome()
		if err != nil {
			return domain.HomePayload{}, err
		}
	}
	return c.normalize.home(raw), nil
}

// Navigation returns the category tree used to build the site navigation. It
// tries the navigation endpoint first, then the admin categories listing, and
// finally the bundled snapshot's categories.
func (c *Client) Navigation(ctx context.Context) ([]domain.Category, error) {
	raws, err := c.fetchCategories(ctx, "/api/navigation")
	if err != nil {
		c.logger.Warn("navigation fetch failed, trying categories listing", zap.Error(err))
		raws, err = c.fetchCategories(ctx, "/admin/categories")
	}
	if err != nil {
		c.logger.Warn("categories fetch failed, serving bundled snapshot", zap.Error(err))
		fallback, fbErr := fallbackHome()
		if fbErr != nil {
			return nil, fbErr
		}
		raws = fallback.Categories
	}

	categories := make([]domain.Category, 0, len(raws))
	for _, raw := range raws {
		normalized := c.normalize.category(raw)
		if normalized.ID == "" && normalized.Name == "" {
			continue
		}
		categories = append(categories, normalized)
	}
	return categories, nil
}

func (c *Client) fetchHome(ctx context.Context) (rawHomeData, error) {
	body, err := c.get(ctx, "/api/home")
	if err != nil {
		return rawHomeData{}, err
	}

	var envelope homeEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return rawHomeData{}, fmt.Errorf("catalog: decode home payload: %w", err)
	}
	if envelope.Data == nil {
		var bare rawHomeData
		if err := json.Unmarshal(body, &bare); err != nil {
			return rawHomeData{}, fmt.Errorf("catalog: decode home payload: %w", err)
		}
		return bare, nil
	}
	return *envelope.Data, nil
}

func (c *Client) fetchCategories(ctx context.Context, path string) ([]rawCategory, error) {
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	return decodeCategories(body)
}

// decodeCategories accepts either a bare array or a { success, data } envelope.
func decodeCategories(body []byte) ([]rawCategory, error) {
	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "[") {
		var raws []rawCategory
		if err := json.Unmarshal(body, &raws); err != nil {
			return nil, fmt.Errorf("catalog: decode categories: %w", err)
		}
		return raws, nil
	}

	var envelope struct {
		Data []rawCategory `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("catalog: decode categories: %w", err)
	}
	return envelope.Data, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := c.base.JoinPath(path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("catalog: %s: unexpected status %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("catalog: read response: %w", err)
	}
	return body, nil
}
