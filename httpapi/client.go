// Package httpapi is the HTTP client for the task service. It is the only
// place requests to the service are built.
package httpapi

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
	"sync"

	"github.com/benjamonnguyen/todo"
	"github.com/benjamonnguyen/todo/charmlog"
	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-ID"

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

type Client struct {
	baseURL string
	hc      Doer
	l       todo.Logger

	mu     sync.RWMutex
	token  string
	userID int
}

var (
	_ todo.AuthService = (*Client)(nil)
	_ todo.TaskService = (*Client)(nil)
)

type Option func(*Client)

func WithHTTPClient(d Doer) Option {
	return func(c *Client) {
		c.hc = d
	}
}

func WithLogger(l todo.Logger) Option {
	return func(c *Client) {
		c.l = l
	}
}

// NewClient returns a client for the service at baseURL. No request timeout
// is applied; callers bound requests with their context.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.l == nil {
		c.l = charmlog.Discard()
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetToken sets the bearer token for subsequent requests and derives the
// user id from its sub claim. An empty token clears both. If the claim
// cannot be decoded the token is kept, the user id is cleared and an error
// wrapping todo.ErrTokenDecode is returned.
func (c *Client) SetToken(token string) error {
	var (
		userID    int
		decodeErr error
	)
	if token != "" {
		userID, decodeErr = userIDFromToken(token)
		if decodeErr != nil {
			c.l.Error("failed to decode token", "error", decodeErr)
			userID = 0
			decodeErr = fmt.Errorf("%w: %w", todo.ErrTokenDecode, decodeErr)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	c.userID = userID
	return decodeErr
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) UserID() (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userID, c.userID > 0
}

func (c *Client) requireUserID() (int, error) {
	id, ok := c.UserID()
	if !ok {
		return 0, todo.ErrUnauthenticated
	}
	return id, nil
}

func (c *Client) defaultHeaders() http.Header {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	h.Set(HeaderRequestID, uuid.NewString())
	if token := c.Token(); token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

// request sends body, if any, as JSON to endpoint and decodes a successful
// response into out. Headers in header replace the defaults of the same
// name. A 204 response leaves out untouched.
func (c *Client) request(ctx context.Context, method, endpoint string, body any, header http.Header, out any) error {
	url := c.baseURL + endpoint

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, r)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header = c.defaultHeaders()
	for k, vs := range header {
		req.Header[http.CanonicalHeaderKey(k)] = vs
	}

	c.l.Debug("sending request", "method", method, "endpoint", endpoint, "requestID", req.Header.Get(HeaderRequestID))
	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeError(resp)
		c.l.Debug("request failed", "method", method, "endpoint", endpoint, "status", resp.StatusCode, "detail", apiErr.Detail)
		return apiErr
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	return c.request(ctx, http.MethodGet, endpoint, nil, nil, out)
}

func (c *Client) post(ctx context.Context, endpoint string, data, out any) error {
	return c.request(ctx, http.MethodPost, endpoint, data, nil, out)
}

func (c *Client) put(ctx context.Context, endpoint string, data, out any) error {
	return c.request(ctx, http.MethodPut, endpoint, data, nil, out)
}

func (c *Client) patch(ctx context.Context, endpoint string, data, out any) error {
	return c.request(ctx, http.MethodPatch, endpoint, data, nil, out)
}

func (c *Client) delete(ctx context.Context, endpoint string, out any) error {
	return c.request(ctx, http.MethodDelete, endpoint, nil, nil, out)
}

type errorBody struct {
	Detail json.RawMessage `json:"detail"`
	Status int             `json:"status,omitempty"`
}

// decodeError reads the service's {detail, status} error body. Bodies that
// are not JSON get a synthesized "HTTP <code>: <text>" detail.
func decodeError(resp *http.Response) *todo.APIError {
	statusText := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if statusText == "" {
		statusText = http.StatusText(resp.StatusCode)
	}
	apiErr := &todo.APIError{
		StatusCode: resp.StatusCode,
		Detail:     fmt.Sprintf("HTTP %d: %s", resp.StatusCode, statusText),
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return apiErr
	}
	var body errorBody
	if err := json.Unmarshal(b, &body); err != nil {
		return apiErr
	}

	var detail string
	switch {
	case len(body.Detail) == 0 || string(body.Detail) == "null":
		apiErr.Detail = "An error occurred"
	case json.Unmarshal(body.Detail, &detail) == nil:
		if detail == "" {
			detail = "An error occurred"
		}
		apiErr.Detail = detail
	default:
		// validation errors carry structured detail
		apiErr.Detail = string(body.Detail)
	}
	return apiErr
}
