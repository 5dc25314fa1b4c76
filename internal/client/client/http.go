package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/edupilot/edupilot/internal/common"
	"github.com/edupilot/edupilot/internal/logging"
)

const defaultTimeout = 30 * time.Second

// HTTPClient implements Client over JSON/HTTP.
type HTTPClient struct {
	baseURL        string
	http           *http.Client
	tokens         TokenSource
	logger         logging.Logger
	onUnauthorized func(ctx context.Context, token string)
}

type Option func(*HTTPClient)

// WithTimeout bounds every request, including reading the body.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.http.Timeout = d }
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithUnauthorizedHandler registers fn to run when a request that carried
// a token is rejected with 401. fn receives the rejected token. It is not
// called when the token source has moved on to a different token while
// the request was in flight.
func WithUnauthorizedHandler(fn func(ctx context.Context, token string)) Option {
	return func(c *HTTPClient) { c.onUnauthorized = fn }
}

// NewHTTPClient returns a client for the backend at baseURL
// (e.g. "http://localhost:8000"). tokens may be nil for anonymous use.
func NewHTTPClient(baseURL string, tokens TokenSource, logger logging.Logger, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		tokens:  tokens,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type request struct {
	method      string
	path        string
	query       url.Values
	json        any
	body        io.Reader
	contentType string
	// root routes are served outside the /api prefix.
	root bool
}

func (c *HTTPClient) url(r request) string {
	u := c.baseURL
	if !r.root {
		u += common.APIPrefix
	}
	u += r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}
	return u
}

func (c *HTTPClient) token() string {
	if c.tokens == nil {
		return ""
	}
	return c.tokens.Token()
}

// do sends r and decodes a 2xx JSON body into out (when out is non-nil).
func (c *HTTPClient) do(ctx context.Context, r request, out any) error {
	body := r.body
	contentType := r.contentType
	if r.json != nil {
		payload, err := json.Marshal(r.json)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", r.method, r.path, err)
		}
		body = bytes.NewReader(payload)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.url(r), body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", r.method, r.path, err)
	}

	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	token := c.token()
	if token != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerPrefix+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug(ctx, "request failed", "method", r.method, "path", r.path, "request_id", requestID, "error", err)
		return fmt.Errorf("%s %s: %w: %w", r.method, r.path, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w: %w", r.method, r.path, ErrUnavailable, err)
	}

	c.logger.Debug(ctx, "request done",
		"method", r.method,
		"path", r.path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"request_id", requestID,
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Detail: parseDetail(data)}
		if resp.StatusCode == http.StatusUnauthorized && token != "" && c.onUnauthorized != nil {
			if c.token() != token {
				c.logger.Debug(ctx, "ignoring 401 for a replaced token", "path", r.path, "request_id", requestID)
			} else {
				c.logger.Warn(ctx, "token rejected by server", "path", r.path, "request_id", requestID)
				c.onUnauthorized(ctx, token)
			}
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", r.method, r.path, err)
	}
	return nil
}
