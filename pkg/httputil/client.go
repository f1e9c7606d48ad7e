// Copyright Product Decoder Authors
// SPDX-License-Identifier: Apache-2.0

// Package httputil is the single path for outbound provider traffic.
// Adapters never touch net/http directly: they get query serialization
// that drops empty values, a bounded timeout, and transport failures
// surfaced as one typed error.
package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// TransportError is the single failure type for upstream calls. Status 0
// means no response was received (timeout, connection reset, DNS); a
// non-zero Status carries the upstream's error response and body.
type TransportError struct {
	Status int
	Body   []byte
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("upstream request failed: %v", e.Err)
	}
	return fmt.Sprintf("upstream returned status %d: %s", e.Status, string(e.Body))
}

func (e *TransportError) Unwrap() error { return e.Err }

// NoResponse reports whether the failure happened before any response
// arrived, as opposed to an error status from the upstream.
func (e *TransportError) NoResponse() bool { return e.Status == 0 }

// Client performs outbound GET/POST calls with a fixed timeout.
type Client struct {
	httpClient *http.Client
}

// New creates a Client. A zero timeout falls back to 15 seconds.
func New(timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{httpClient: &http.Client{Timeout: timeout}}
}

// NewWithHTTPClient wraps an existing *http.Client. Used by tests to
// substitute transports.
func NewWithHTTPClient(hc *http.Client) *Client {
	return &Client{httpClient: hc}
}

// GetJSON performs a GET with the given query parameters and returns the
// raw 2xx body. Empty parameter values are dropped so a provider never
// receives a literal empty or "undefined" argument.
func (c *Client) GetJSON(ctx context.Context, endpoint string, params map[string]string) ([]byte, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("parse endpoint: %w", err)}
	}
	q := u.Query()
	for k, v := range params {
		if v == "" {
			continue
		}
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	return c.do(req)
}

// PostJSON marshals body as JSON and performs a POST. Query parameters
// follow the same empty-value elision as GetJSON.
func (c *Client) PostJSON(ctx context.Context, endpoint string, params map[string]string, body any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("marshal request: %w", err)}
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("parse endpoint: %w", err)}
	}
	q := u.Query()
	for k, v := range params {
		if v == "" {
			continue
		}
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{Status: resp.StatusCode, Body: respBody}
	}
	return respBody, nil
}
