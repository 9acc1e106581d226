package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenSource is the slice of the auth token service the client depends
// on. Implemented by *auth.Service.
type TokenSource interface {
	// IsExpired reports whether the stored access token is past its expiry.
	IsExpired() bool

	// Refresh exchanges the refresh token for a new access token and
	// returns it. Any failure means the session is over.
	Refresh(ctx context.Context) (string, error)

	// AuthHeader returns the Authorization header value, or "" when
	// logged out.
	AuthHeader() string
}

// Client is the authenticated API client for the Geoffray backend. It
// injects the bearer token on every authenticated call, refreshes expired
// tokens before issuing a request, and retries a request exactly once after
// a reactive 401 refresh.
type Client struct {
	baseURL    string
	httpClient *http.Client
	auth       TokenSource
	logger     *zap.Logger

	mu       sync.RWMutex
	notifier Notifier
}

// NewClient creates a new API client against the given base URL.
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		auth:   tokens,
		logger: logger,
	}
}

// SetNotifier registers the session-error notifier. There is a single
// slot: the last registration wins. A nil notifier disables delivery.
func (c *Client) SetNotifier(n Notifier) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifier = n
}

func (c *Client) notify(signal Signal) {
	c.mu.RLock()
	n := c.notifier
	c.mu.RUnlock()
	if n != nil {
		n.Notify(signal)
	}
}

// CallOption adjusts a single request.
type CallOption func(*callOptions)

type callOptions struct {
	requireAuth bool
}

// WithoutAuth marks the request as public: no bearer token is attached and
// 401 responses are not treated as a token problem.
func WithoutAuth() CallOption {
	return func(o *callOptions) {
		o.requireAuth = false
	}
}

// Get performs a GET request and decodes the JSON response into out.
// A nil out discards the body.
func (c *Client) Get(ctx context.Context, path string, out interface{}, opts ...CallOption) error {
	return c.do(ctx, http.MethodGet, path, nil, out, opts...)
}

// Post performs a POST request with a JSON body and decodes the response
// into out.
func (c *Client) Post(ctx context.Context, path string, body, out interface{}, opts ...CallOption) error {
	return c.do(ctx, http.MethodPost, path, body, out, opts...)
}

// Put performs a PUT request with a JSON body and decodes the response
// into out.
func (c *Client) Put(ctx context.Context, path string, body, out interface{}, opts ...CallOption) error {
	return c.do(ctx, http.MethodPut, path, body, out, opts...)
}

// Delete performs a DELETE request and decodes the response into out.
func (c *Client) Delete(ctx context.Context, path string, out interface{}, opts ...CallOption) error {
	return c.do(ctx, http.MethodDelete, path, nil, out, opts...)
}

// do runs the request algorithm: pre-flight expiry check, header
// injection, execution, and reactive 401/403 handling with at most one
// retry per call.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, opts ...CallOption) error {
	options := callOptions{requireAuth: true}
	for _, opt := range opts {
		opt(&options)
	}

	// Proactive refresh: a token we already know is expired would only buy
	// us a guaranteed 401 round trip.
	if options.requireAuth && c.auth.IsExpired() {
		if _, err := c.auth.Refresh(ctx); err != nil {
			return fmt.Errorf("%w: %v", ErrAuthenticationExpired, err)
		}
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	authHeader := ""
	if options.requireAuth {
		authHeader = c.auth.AuthHeader()
	}

	status, respBody, err := c.execute(ctx, method, path, payload, authHeader)
	if err != nil {
		return err
	}

	if is2xx(status) {
		return decodeInto(respBody, out)
	}

	if status == http.StatusUnauthorized && options.requireAuth {
		token, refreshErr := c.auth.Refresh(ctx)
		if refreshErr != nil {
			c.notify(Signal{Kind: SignalExpired, Message: "Session expired. Please log in again."})
			return fmt.Errorf("%w: %v", ErrAuthenticationExpired, refreshErr)
		}

		c.logger.Debug("retrying request with refreshed token",
			zap.String("method", method),
			zap.String("path", path))

		// One retry only, rebuilt from scratch with a fresh body reader.
		status, respBody, err = c.execute(ctx, method, path, payload, "Bearer "+token)
		if err != nil {
			return err
		}
		if is2xx(status) {
			return decodeInto(respBody, out)
		}
		return c.statusError(status, respBody)
	}

	return c.statusError(status, respBody)
}

// statusError maps a terminal non-2xx status to the error taxonomy,
// fanning out the 403 signal as a side effect.
func (c *Client) statusError(status int, body []byte) error {
	if status == http.StatusForbidden {
		c.notify(Signal{Kind: SignalForbidden, Message: "Access denied. You do not have permission to perform this action."})
		return ErrPermissionDenied
	}
	return newHTTPError(status, body)
}

// execute issues a single HTTP request and returns the status code and raw
// response body. Transport failures wrap ErrNetwork.
func (c *Client) execute(ctx context.Context, method, path string, payload []byte, authHeader string) (int, []byte, error) {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, joinURL(c.baseURL, path), bodyReader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, respBody, nil
}

// decodeInto unmarshals a response body. A nil destination or empty body
// is a no-op.
func decodeInto(body []byte, out interface{}) error {
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func is2xx(status int) bool {
	return status >= 200 && status < 300
}

func joinURL(base, path string) string {
	if base != "" && base[len(base)-1] == '/' {
		base = base[:len(base)-1]
	}
	if path == "" || path[0] != '/' {
		path = "/" + path
	}
	return base + path
}
