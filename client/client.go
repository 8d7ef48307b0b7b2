// Package client is the data-access layer of the guardian app. Every
// backend interaction flows through it: requests carry the stored session
// token, unauthorized responses tear the session down, and any other
// failure degrades to a locally synthesized placeholder so the UI keeps
// working while the backend is unreachable.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/mkjena1512-star/path-safe-guardian-92/internal/credstore"
)

const (
	defaultTimeout  = 10 * time.Second
	maxResponseSize = 4 << 20 // 4MiB
)

// ErrUnauthorized is returned when the backend rejects the session. By the
// time callers see it the token slot is already cleared and the login
// redirect has fired.
var ErrUnauthorized = errors.New("client: session unauthorized")

// LoginRedirector is invoked when the session is invalidated, to send the
// user back to the login entry point. Presentation code supplies the
// implementation; the client only decides when.
type LoginRedirector interface {
	RedirectToLogin()
}

// RedirectorFunc adapts a plain func to LoginRedirector.
type RedirectorFunc func()

// RedirectToLogin calls f.
func (f RedirectorFunc) RedirectToLogin() { f() }

// Config configures the client.
type Config struct {
	// BaseURL is the backend endpoint including the API path prefix,
	// e.g. http://localhost:5000/api.
	BaseURL string
	// Timeout bounds every request. Defaults to 10s.
	Timeout time.Duration
	// HTTPClient overrides the underlying HTTP client. When set, its own
	// timeout applies.
	HTTPClient *http.Client
	// Tokens is the session token slot. When nil a volatile in-memory
	// store is used.
	Tokens credstore.Store
	// Redirect handles session invalidation. When nil, unauthorized
	// responses still clear the token slot but trigger no navigation.
	Redirect LoginRedirector
	// Logger receives debug events. When nil, logging is disabled.
	Logger *zerolog.Logger
}

// Client executes the guardian operation catalog against one backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     credstore.Store
	redirect   LoginRedirector
	log        zerolog.Logger

	// Metrics
	totalCalls  int64
	liveResults int64
	fallbacks   int64
}

// New creates a client bound to cfg.BaseURL.
func New(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("client: BaseURL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	tokens := cfg.Tokens
	if tokens == nil {
		tokens = credstore.NewMemStore()
	}

	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		tokens:     tokens,
		redirect:   cfg.Redirect,
		log:        log,
	}, nil
}

// SetToken stores a session token for subsequent requests. Callers own
// token persistence after login; the client only attaches and invalidates.
func (c *Client) SetToken(token string) error {
	return c.tokens.Set(token)
}

// Logout discards the stored session token. Purely local; no request is
// made.
func (c *Client) Logout() error {
	return c.tokens.Clear()
}

// Metrics returns cumulative call counters.
func (c *Client) Metrics() map[string]int64 {
	return map[string]int64{
		"total_calls":  atomic.LoadInt64(&c.totalCalls),
		"live_results": atomic.LoadInt64(&c.liveResults),
		"fallbacks":    atomic.LoadInt64(&c.fallbacks),
	}
}

// =============================================================================
// API Errors
// =============================================================================

// APIError is a non-2xx backend response.
type APIError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("client: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("client: status %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *APIError) Unwrap() error { return e.Err }

// errorMessage pulls a human-readable message out of an error body.
func errorMessage(body []byte) string {
	for _, field := range []string{"message", "error"} {
		if v := gjson.GetBytes(body, field); v.Exists() {
			return v.String()
		}
	}
	return ""
}

// =============================================================================
// Request Pipeline
// =============================================================================

// do executes one request through the pipeline: attach the bearer token if
// present, execute, handle session invalidation, decode the body into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("client: create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.execute(req, out)
}

// doMultipart executes a multipart form upload through the same pipeline.
func (c *Client) doMultipart(ctx context.Context, path string, doc KYCDocument, out any) error {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	if err := form.WriteField("documentType", doc.DocumentType); err != nil {
		return fmt.Errorf("client: write form field: %w", err)
	}
	part, err := form.CreateFormFile("document", doc.FileName)
	if err != nil {
		return fmt.Errorf("client: create form file: %w", err)
	}
	if _, err := part.Write(doc.Data); err != nil {
		return fmt.Errorf("client: write form file: %w", err)
	}
	if err := form.Close(); err != nil {
		return fmt.Errorf("client: close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("client: create request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	return c.execute(req, out)
}

func (c *Client) execute(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	if token, ok := c.tokens.Get(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("client: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("client: read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return c.invalidateSession(req, respBody)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(respBody)}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("client: decode response: %w", err)
		}
	}

	return nil
}

// invalidateSession handles an unauthorized response: clear the token slot,
// fire the login redirect once, and surface ErrUnauthorized to the caller.
func (c *Client) invalidateSession(req *http.Request, body []byte) error {
	if err := c.tokens.Clear(); err != nil {
		c.log.Error().Err(err).Msg("clear session token")
	}
	if c.redirect != nil {
		c.redirect.RedirectToLogin()
	}

	c.log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Msg("session invalidated by backend")

	return &APIError{
		StatusCode: http.StatusUnauthorized,
		Message:    errorMessage(body),
		Err:        ErrUnauthorized,
	}
}
