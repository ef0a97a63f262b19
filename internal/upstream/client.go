package upstream

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

	"storefront-gateway/internal/metrics"
	"storefront-gateway/internal/token"
)

var (
	// ErrInvalidCredentials is surfaced for any failed credential exchange,
	// regardless of the underlying cause.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrRefreshFailed is terminal for the session that triggered it.
	ErrRefreshFailed = errors.New("token refresh failed")

	ErrNoRefreshToken = errors.New("no refresh token stored")
)

// StatusError carries a non-2xx upstream status to the caller unchanged.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.Code, e.Body)
}

// Client talks to the upstream REST API. It is immutable and safe for
// concurrent use; per-request token state is attached via Bind.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Caller is a Client bound to one request's token repository. Every call made
// through it carries the stored access token and recovers from a single
// access-token expiry.
type Caller struct {
	c         *Client
	tokens    token.Repository
	onSignOut func(context.Context)
}

// Bind attaches token state to the client. onSignOut runs when a refresh
// fails irrecoverably, after the store has been cleared; it may be nil.
func (c *Client) Bind(tokens token.Repository, onSignOut func(context.Context)) *Caller {
	return &Caller{c: c, tokens: tokens, onSignOut: onSignOut}
}

// attempt is one logical request moving through the interceptor. The retried
// flag is carried here, not on the http.Request, so the at-most-one
// refresh-and-retry rule holds structurally.
type attempt struct {
	method  string
	path    string
	payload []byte
	retried bool
}

// JSON performs an authenticated upstream exchange. body and out may be nil.
//
// On a 401 it refreshes the access token once and re-issues the request; the
// retried request's outcome is returned as-is. If no refresh token is stored
// or the refresh fails, the store is cleared, onSignOut runs, and the original
// 401 is propagated so the caller still sees its error.
func (cl *Caller) JSON(ctx context.Context, method, path string, body, out any) error {
	a := &attempt{method: method, path: path}
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		a.payload = b
	}

	resp, err := cl.send(ctx, a)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized && !a.retried {
		a.retried = true
		unauthorized := drainStatusError(resp)

		refreshToken := cl.tokens.RefreshToken()
		if refreshToken == "" {
			cl.signOut(ctx)
			return unauthorized
		}

		pair, rerr := cl.c.Refresh(ctx, refreshToken)
		if rerr != nil {
			cl.signOut(ctx)
			return unauthorized
		}
		cl.tokens.SetTokens(pair.AccessToken, pair.RefreshToken)

		retry, err := cl.send(ctx, a)
		if err != nil {
			return err
		}
		return decodeJSON(retry, out)
	}

	return decodeJSON(resp, out)
}

func (cl *Caller) send(ctx context.Context, a *attempt) (*http.Response, error) {
	req, err := cl.c.newRequest(ctx, a.method, a.path, a.payload)
	if err != nil {
		return nil, err
	}
	if access := cl.tokens.AccessToken(); access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}
	return cl.c.http.Do(req)
}

func (cl *Caller) signOut(ctx context.Context) {
	cl.tokens.Clear()
	if cl.onSignOut != nil {
		cl.onSignOut(ctx)
	}
}

// newRequest rebuilds the request from raw parts so a retry gets a fresh body
// reader.
func (c *Client) newRequest(ctx context.Context, method, path string, payload []byte) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// postJSON is the unauthenticated path used by the auth endpoints themselves.
// It never recurses into the interceptor.
func (c *Client) postJSON(ctx context.Context, path string, body any) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, payload)
	if err != nil {
		return nil, err
	}
	return c.http.Do(req)
}

func decodeJSON(resp *http.Response, out any) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return drainStatusErrorOpen(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func drainStatusError(resp *http.Response) *StatusError {
	defer resp.Body.Close()
	return drainStatusErrorOpen(resp)
}

func drainStatusErrorOpen(resp *http.Response) *StatusError {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
}

// track counts refresh outcomes; split out so auth.go stays readable.
func trackRefresh(err error) {
	metrics.RefreshesTotal.Inc()
	if err != nil {
		metrics.RefreshFailuresTotal.Inc()
	}
}
