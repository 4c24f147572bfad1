package jsonapi

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

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/CrestNiraj12/postboard/infra/auth"
)

// Client is a thin JSON-over-HTTP wrapper for the blog API.
// It handles base URL construction, optional bearer tokens, and retries
// of GET requests.
type Client struct {
	baseURL       string
	tokenProvider auth.TokenProvider
	http          *http.Client
	retries       uint64
	retryInterval time.Duration
	log           log.FieldLogger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithRetries sets how many times a failed GET is retried.
func WithRetries(n int) ClientOption {
	return func(c *Client) {
		if n < 0 {
			n = 0
		}
		c.retries = uint64(n)
	}
}

// WithRetryInterval sets the first backoff interval between GET retries.
func WithRetryInterval(d time.Duration) ClientOption {
	return func(c *Client) { c.retryInterval = d }
}

// WithTimeout bounds each HTTP round trip.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		h := *c.http
		h.Timeout = d
		c.http = &h
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.http = h }
}

// WithLogger sets where request traces go.
func WithLogger(l log.FieldLogger) ClientOption {
	return func(c *Client) { c.log = l }
}

// NewClient creates an API client. tp may be nil for APIs without auth.
func NewClient(baseURL string, tp auth.TokenProvider, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		tokenProvider: tp,
		http:          &http.Client{},
		retryInterval: 200 * time.Millisecond,
		log:           log.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Response is a completed HTTP exchange.
type Response struct {
	StatusCode int
	StatusText string // e.g. "Not Found"
	Body       []byte
}

// StatusError is returned for responses outside the 2xx range.
type StatusError struct {
	Method   string
	Path     string
	Response *Response
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API %s %s returned %d: %s", e.Method, e.Path, e.Response.StatusCode, e.Response.StatusText)
}

// Get performs a GET request, retrying transport errors and 5xx responses.
func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryInterval
	b.MaxElapsedTime = 0

	return backoff.RetryWithData(func() (*Response, error) {
		resp, err := c.do(ctx, http.MethodGet, path, nil)
		if err != nil && !retryable(err) {
			return nil, backoff.Permanent(err)
		}
		return resp, err
	}, backoff.WithContext(backoff.WithMaxRetries(b, c.retries), ctx))
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.do(ctx, http.MethodPut, path, body)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, path, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}
	if c.tokenProvider != nil {
		token, err := c.tokenProvider.AccessToken()
		if err != nil {
			return nil, fmt.Errorf("auth: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	c.log.WithFields(log.Fields{
		"method":     method,
		"path":       path,
		"status":     resp.StatusCode,
		"request_id": requestID,
		"duration":   time.Since(start),
	}).Debug("API request")

	out := &Response{
		StatusCode: resp.StatusCode,
		StatusText: statusText(resp),
		Body:       data,
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return out, &StatusError{Method: method, Path: path, Response: out}
	}
	return out, nil
}

// statusText strips the numeric code from resp.Status ("404 Not Found").
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

func retryable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Response.StatusCode >= 500
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}
