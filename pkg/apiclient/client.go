package apiclient

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

	pkgerrors "github.com/angelmondragon/shopdash/pkg/errors"
	"github.com/angelmondragon/shopdash/pkg/logger"
	"github.com/angelmondragon/shopdash/pkg/metrics"
)

const (
	HeaderSessionID = "X-Session-ID"
	HeaderShopID    = "X-Shop-ID"

	// LoginRedirect is surfaced in error details when the backend rejects the
	// session.
	LoginRedirect = "/login"

	fallbackErrorMessage        = "API request failed"
	errorBodyReadLimit    int64 = 64 * 1024
)

var errBaseURLRequired = errors.New("backend base url is required")

// CredentialSource supplies the per-request auth headers.
type CredentialSource interface {
	SessionID() string
	ShopID() string
}

// SessionClearer drops every persisted credential after the backend answers
// 401.
type SessionClearer interface {
	ClearSession(ctx context.Context) error
}

// Client is the single HTTP entry point to the shop backend. It never
// retries.
type Client struct {
	httpClient *http.Client
	baseURL    string
	creds      CredentialSource
	clearer    SessionClearer
	metrics    *metrics.APIClientMetrics
	logg       *logger.Logger
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the HTTP client timeout. Zero means no timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout >= 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

func WithCredentials(src CredentialSource) Option {
	return func(c *Client) {
		c.creds = src
	}
}

func WithSessionClearer(clearer SessionClearer) Option {
	return func(c *Client) {
		c.clearer = clearer
	}
}

func WithMetrics(m *metrics.APIClientMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

func WithLogger(logg *logger.Logger) Option {
	return func(c *Client) {
		if logg != nil {
			c.logg = logg
		}
	}
}

// New builds a backend client rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errBaseURLRequired
	}
	if _, err := url.ParseRequestURI(trimmed); err != nil {
		return nil, fmt.Errorf("invalid backend base url: %w", err)
	}

	client := &Client{
		baseURL:    trimmed,
		httpClient: &http.Client{},
		logg:       logger.Nop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client, nil
}

// BaseURL returns the configured backend root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do issues one request. body is JSON-encoded when non-nil and out is decoded
// from a non-empty 2xx response when non-nil.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "backend client not configured")
	}

	target := c.buildURL(path, query)
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build backend request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.creds != nil {
		if sessionID := c.creds.SessionID(); sessionID != "" {
			req.Header.Set(HeaderSessionID, sessionID)
		}
		if shopID := c.creds.ShopID(); shopID != "" {
			req.Header.Set(HeaderShopID, shopID)
		}
	}

	route := routeLabel(path)
	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(ctx, method, route, "transport", started, 0)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to reach backend").
			WithDetails(map[string]any{"upstream_path": path})
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		c.observe(ctx, method, route, "unauthorized", started, resp.StatusCode)
		return c.unauthorized(ctx, path)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.observe(ctx, method, route, "error", started, resp.StatusCode)
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return upstreamError(resp.StatusCode, path, raw)
	}

	c.observe(ctx, method, route, "ok", started, resp.StatusCode)
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read backend response")
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode backend response").
			WithDetails(map[string]any{"upstream_status": resp.StatusCode, "upstream_path": path})
	}
	return nil
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, query url.Values, body, out any) error {
	return c.Do(ctx, http.MethodPatch, path, query, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) unauthorized(ctx context.Context, path string) error {
	typed := pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired").
		WithDetails(map[string]any{
			"redirect":        LoginRedirect,
			"upstream_status": http.StatusUnauthorized,
			"upstream_path":   path,
		})
	if c.clearer == nil {
		return typed
	}
	if err := c.clearer.ClearSession(ctx); err != nil {
		c.logg.Error(c.logg.WithField(ctx, "upstream_path", path), "apiclient.clear_session_failed", err)
	}
	return typed
}

func (c *Client) observe(ctx context.Context, method, route, outcome string, started time.Time, status int) {
	elapsed := time.Since(started)
	c.metrics.Observe(method, route, outcome, elapsed)
	logCtx := c.logg.WithFields(ctx, map[string]any{
		"method":      method,
		"route":       route,
		"outcome":     outcome,
		"status":      status,
		"duration_ms": elapsed.Milliseconds(),
	})
	c.logg.Debug(logCtx, "apiclient.request")
}

// upstreamError turns a non-2xx backend response into a dependency error
// carrying the backend's own message when it sent one.
func upstreamError(status int, path string, raw []byte) error {
	message := fallbackErrorMessage
	var body struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		var detail string
		if len(body.Detail) > 0 && json.Unmarshal(body.Detail, &detail) == nil && strings.TrimSpace(detail) != "" {
			message = detail
		} else if strings.TrimSpace(body.Message) != "" {
			message = body.Message
		}
	}

	code := pkgerrors.CodeDependency
	if status == http.StatusNotFound {
		code = pkgerrors.CodeNotFound
	}
	return pkgerrors.New(code, message).WithDetails(map[string]any{
		"upstream_status": status,
		"upstream_path":   path,
	})
}

func (c *Client) buildURL(path string, query url.Values) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return target
}

// routeLabel keeps metric cardinality bounded by reducing a path to its
// resource root.
func routeLabel(path string) string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return "/"
	}
	if idx := strings.Index(trimmed, "/"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	if idx := strings.Index(trimmed, "?"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return "/" + trimmed
}
