// Package api is the typed client of the expense REST API.
//
// Every call reads the bearer token from the Session before the request
// is built. A 401 response clears the Session, runs the unauthorized
// handler and returns ErrUnauthorized, except for rejected login
// credentials which come back as an *Error.
package api

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

	"expense-dashboard/internal/log"
	"expense-dashboard/internal/models"
)

// BasePath prefixes every API route.
const BasePath = "/api"

// CodeUnknown is used when an error response carries no JSON body.
const CodeUnknown = "UNKNOWN"

// ErrUnauthorized is returned for every 401 response.
var ErrUnauthorized = errors.New("api: unauthorized")

// Error is a non-2xx response other than 401.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: %d %s", e.Status, e.Code)
	}
	return fmt.Sprintf("api: %d %s: %s", e.Status, e.Code, e.Message)
}

// CodeOf returns the error code carried by err, or "" when err is not an
// API error.
func CodeOf(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	if errors.Is(err, ErrUnauthorized) {
		return models.CodeUnauthorized
	}
	return ""
}

// Session supplies the bearer token and is cleared on 401.
type Session interface {
	Token() string
	Clear() (bool, error)
}

// Client calls the expense API.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	session        Session
	onUnauthorized func()
	logger         *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithSession attaches the token source.
func WithSession(s Session) Option {
	return func(c *Client) { c.session = s }
}

// WithUnauthorizedHandler runs fn after a 401 ended the session.
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// WithLogger sets the logger for request tracing.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l.WithComponent(log.ComponentClient) }
}

// New returns a Client for the API served at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		logger:     log.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + BasePath + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session != nil {
		if token := c.session.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "API call",
		log.FieldMethod, method,
		log.FieldPath, path,
		log.FieldStatusCode, resp.StatusCode,
		log.FieldDuration, time.Since(start).Milliseconds(),
	)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		// Rejected credentials are a form error, not an expired session.
		if err := decodeError(resp); CodeOf(err) == models.CodeInvalidCredentials {
			return err
		}
		c.unauthorized(ctx)
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNoContent:
		return nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) unauthorized(ctx context.Context) {
	if c.session == nil {
		return
	}
	cleared, err := c.session.Clear()
	if err != nil {
		c.logger.WarnContext(ctx, "Failed to clear session", log.FieldError, err)
	}
	if cleared && c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}

func decodeError(resp *http.Response) error {
	apiErr := &Error{Status: resp.StatusCode, Code: CodeUnknown}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return apiErr
	}
	var body models.ErrorBody
	if json.Unmarshal(data, &body) == nil && body.Error != "" {
		apiErr.Code = body.Error
		apiErr.Message = body.Message
	} else {
		apiErr.Message = strings.TrimSpace(string(data))
	}
	return apiErr
}
