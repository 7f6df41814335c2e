// Package remote holds the HTTP clients for the rewrite and tone endpoints.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const DefaultTimeout = 30 * time.Second

// maxErrorBody bounds how much of a failed response is read for a reason.
const maxErrorBody = 64 << 10

type Option func(*client)

// WithHTTPClient replaces the underlying *http.Client. Its Timeout is left as
// given.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.http = hc
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

type client struct {
	baseURL string
	http    *http.Client
}

func newClient(baseURL string, opts ...Option) client {
	c := client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// response is the raw outcome of a successful round trip.
type response struct {
	status int
	body   []byte
}

func (r response) ok() bool {
	return r.status >= 200 && r.status < 300
}

// do performs one request. A non-nil error is always a transport failure;
// HTTP status handling is left to the caller.
func (c client) do(ctx context.Context, method, path string, payload any) (response, error) {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return response{}, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return response{}, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return response{}, err
	}
	defer resp.Body.Close()

	limit := int64(-1)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		limit = maxErrorBody
	}
	var data []byte
	if limit > 0 {
		data, err = io.ReadAll(io.LimitReader(resp.Body, limit))
	} else {
		data, err = io.ReadAll(resp.Body)
	}
	if err != nil {
		return response{}, err
	}
	return response{status: resp.StatusCode, body: data}, nil
}

// errorReason pulls a human-readable reason out of an error body shaped like
// {"error": "..."} or {"message": "..."}.
func errorReason(body []byte) string {
	var payload struct {
		Error   any    `json:"error"`
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		text := []rune(strings.TrimSpace(string(body)))
		if len(text) > 200 {
			text = append(text[:200], '…')
		}
		return string(text)
	}
	if payload.Message != "" {
		return payload.Message
	}
	if s, ok := payload.Error.(string); ok && s != "" {
		return s
	}
	return payload.Detail
}
