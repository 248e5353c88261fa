// Package produs implements the Backend port against the ProDus time-tracking
// HTTP API. All authenticated requests go through a single executor that
// attaches the stored bearer token and performs a bounded renew-and-retry on
// authorization failure.
package produs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gregjones/httpcache"
	"golang.org/x/sync/singleflight"

	"github.com/SebasHerPorras/produs-panel/internal/domain/port/driven"
)

// maxResponseBody caps how much of a response body the executor will read.
const maxResponseBody = 4 << 20

// Compile-time interface satisfaction check.
var _ driven.Backend = (*Client)(nil)

// Client implements the driven.Backend port. It owns no identity state itself:
// tokens are read from and written to the injected CredentialStore on every
// call, so a refresh performed by one request is immediately visible to all.
type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      driven.CredentialStore

	// refreshGroup collapses concurrent token renewals into a single network
	// call that all waiters share.
	refreshGroup singleflight.Group

	// onSessionExpired is invoked after an unrecoverable authorization failure,
	// once credentials have been cleared. May be nil.
	onSessionExpired func()
}

// New creates a Client for the given API base URL with an in-memory HTTP cache
// transport (conditional request caching for the read-heavy endpoints).
func New(baseURL string, creds driven.CredentialStore, onSessionExpired func()) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: httpcache.NewMemoryCacheTransport(),
			Timeout:   30 * time.Second,
		},
		creds:            creds,
		onSessionExpired: onSessionExpired,
	}
}

// NewWithHTTPClient creates a Client with a custom http.Client and base URL.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewWithHTTPClient(httpClient *http.Client, baseURL string, creds driven.CredentialStore, onSessionExpired func()) *Client {
	return &Client{
		baseURL:          strings.TrimRight(baseURL, "/"),
		httpClient:       httpClient,
		creds:            creds,
		onSessionExpired: onSessionExpired,
	}
}

// do executes one API call. With includeAuth, a 401 response triggers the
// refresh flow at most once: on success the original request is retried exactly
// once and its outcome returned directly (a second 401 surfaces as a
// RequestError); on failure credentials are cleared, the session-expired signal
// fires, and ErrSessionExpired is returned. The renewal is a bounded loop, not
// recursion.
func (c *Client) do(ctx context.Context, method, endpoint string, body any, includeAuth bool) (json.RawMessage, error) {
	var payload []byte
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, endpoint, err)
		}
		payload = encoded
	}

	renewed := false
	for {
		resp, err := c.send(ctx, method, endpoint, payload, includeAuth)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", method, endpoint, err)
		}

		if resp.StatusCode == http.StatusUnauthorized && includeAuth && !renewed {
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()

			if c.Refresh(ctx) {
				renewed = true
				continue
			}

			_ = c.creds.ClearAll(ctx)
			if c.onSessionExpired != nil {
				c.onSessionExpired()
			}
			return nil, ErrSessionExpired
		}

		return decodeResponse(resp)
	}
}

// send builds and issues a single HTTP request. The Authorization header is
// attached only when includeAuth is set and an access token is present.
func (c *Client) send(ctx context.Context, method, endpoint string, payload []byte, includeAuth bool) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if includeAuth {
		if token, err := c.creds.GetAccess(ctx); err == nil && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	return c.httpClient.Do(req)
}

// decodeResponse maps a response to either its raw JSON body (2xx; no-content
// responses become an empty object) or a RequestError.
func decodeResponse(resp *http.Response) (json.RawMessage, error) {
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(data)) == 0 {
			return json.RawMessage(`{}`), nil
		}
		return json.RawMessage(data), nil
	}

	return nil, newRequestError(resp.StatusCode, data)
}

// Get issues an authenticated GET and decodes the response into out (skipped
// when out is nil).
func (c *Client) Get(ctx context.Context, endpoint string, out any) error {
	return c.call(ctx, http.MethodGet, endpoint, nil, out)
}

// Post issues an authenticated POST with a JSON body and decodes the response
// into out (skipped when out is nil).
func (c *Client) Post(ctx context.Context, endpoint string, body, out any) error {
	return c.call(ctx, http.MethodPost, endpoint, body, out)
}

// Put issues an authenticated PUT with a JSON body.
func (c *Client) Put(ctx context.Context, endpoint string, body, out any) error {
	return c.call(ctx, http.MethodPut, endpoint, body, out)
}

// Patch issues an authenticated PATCH with a JSON body.
func (c *Client) Patch(ctx context.Context, endpoint string, body, out any) error {
	return c.call(ctx, http.MethodPatch, endpoint, body, out)
}

// Delete issues an authenticated DELETE.
func (c *Client) Delete(ctx context.Context, endpoint string) error {
	return c.call(ctx, http.MethodDelete, endpoint, nil, nil)
}

func (c *Client) call(ctx context.Context, method, endpoint string, body, out any) error {
	raw, err := c.do(ctx, method, endpoint, body, true)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, endpoint, err)
	}
	return nil
}
