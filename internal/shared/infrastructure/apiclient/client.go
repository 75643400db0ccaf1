package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fatimazahra-12/schoolmanage-client/internal/shared/infrastructure/localstore"
)

// ErrorKind tags a normalized client error so callers can branch without
// probing message contents.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindAuth       ErrorKind = "auth"
	KindServer     ErrorKind = "server"
	KindTransport  ErrorKind = "transport"
)

// Error is the single error shape that crosses the client-wrapper boundary.
// Only a human-readable message survives past this point; status codes and
// transport detail do not.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NewValidationError builds a local validation failure that never reaches
// the network layer.
func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Client is an explicitly constructed HTTP client for one REST backend.
// It attaches the stored bearer token to every request and normalizes
// every failure into *Error.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  localstore.Store
}

// New creates a client for the given base URL. The token store supplies the
// bearer token; it is also purged when the backend answers 401.
func New(baseURL string, timeout time.Duration, tokens localstore.Store) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: InstrumentTransport(http.DefaultTransport),
		},
		tokens: tokens,
	}
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindTransport, Message: err.Error()}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Kind: KindTransport, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token, ok := c.tokens.Get(localstore.KeyToken); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Kind: KindTransport, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// Reactive purge: drop the invalid credential now instead of
		// failing every subsequent call the same way.
		_ = c.tokens.Delete(localstore.KeyToken)
		return &Error{Kind: KindAuth, Message: extractMessage(resp)}
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &Error{Kind: KindServer, Message: extractMessage(resp)}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindTransport, Message: err.Error()}
	}
	return nil
}

// extractMessage prefers a server-supplied error field, then message, then
// the HTTP status text.
func extractMessage(resp *http.Response) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil && json.Unmarshal(data, &body) == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return http.StatusText(resp.StatusCode)
}
