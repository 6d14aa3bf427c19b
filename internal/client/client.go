// ABOUTME: HTTP client for the Movierama REST and identity APIs
// ABOUTME: Shared request plumbing, error mapping and the APIError type

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// TokenSource yields the bearer credential for outgoing requests. An empty
// token with a nil error means the caller is anonymous.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Options configures a Client. Zero values fall back to sensible defaults.
type Options struct {
	AuthURL   string
	Timeout   time.Duration
	Tokens    TokenSource
	Logger    *zap.Logger
	Transport http.RoundTripper
}

// Client is the API client for the Movierama backend
type Client struct {
	baseURL    string
	authURL    string
	httpClient *http.Client
	log        *zap.Logger
}

// New creates a new API client with the given base URL
func New(baseURL string, opts Options) *Client {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("client")

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	base := opts.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	authURL := opts.AuthURL
	if authURL == "" {
		authURL = baseURL
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		authURL: strings.TrimRight(authURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: Chain(base, WithRequestID(), WithLogging(log), WithBearer(opts.Tokens)),
		},
		log: log,
	}
}

// BaseURL returns the REST API root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend error (%d): %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// IsServerError reports whether err is a 5xx from the backend.
func IsServerError(err error) bool {
	return StatusCode(err) >= http.StatusInternalServerError
}

// StatusCode extracts the HTTP status from an *APIError, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// errorResponse covers the Spring and Cognito error bodies
type errorResponse struct {
	Message          string `json:"message"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// do sends a JSON request and decodes a JSON response into out when out is
// non-nil and the response has a body.
func (c *Client) do(ctx context.Context, method, url string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.handleErrorResponse(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("request canceled: %w", ctx.Err())
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("request timed out: %w", ctx.Err())
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// handleErrorResponse parses API error responses
func (c *Client) handleErrorResponse(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var errResp errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
		switch {
		case errResp.Message != "":
			apiErr.Message = errResp.Message
		case errResp.ErrorDescription != "":
			apiErr.Message = errResp.ErrorDescription
		default:
			apiErr.Message = errResp.Error
		}
	}
	return apiErr
}
