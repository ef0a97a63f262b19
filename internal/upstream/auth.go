package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"storefront-gateway/internal/token"
)

// TokenPair is the opaque bearer pair issued by the upstream API.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User         *token.User `json:"user"`
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type refreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type logoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Login exchanges credentials for an identity and a token pair. The upstream
// must answer 201 with user, access_token and refresh_token all present;
// anything else is reported as ErrInvalidCredentials. Login persists nothing.
func (c *Client) Login(ctx context.Context, email, password string) (token.User, TokenPair, error) {
	resp, err := c.postJSON(ctx, "/auth/login", loginRequest{Email: email, Password: password})
	if err != nil {
		return token.User{}, TokenPair{}, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		_, _ = io.Copy(io.Discard, resp.Body)
		return token.User{}, TokenPair{}, ErrInvalidCredentials
	}

	var body loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return token.User{}, TokenPair{}, ErrInvalidCredentials
	}
	if body.User == nil || body.AccessToken == "" || body.RefreshToken == "" {
		return token.User{}, TokenPair{}, ErrInvalidCredentials
	}

	return *body.User, TokenPair{AccessToken: body.AccessToken, RefreshToken: body.RefreshToken}, nil
}

// Refresh mints a new token pair from a refresh token. A single attempt, no
// retry loop; retry policy belongs to the caller. If the upstream does not
// rotate the refresh token, the old one is carried forward in the result.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (pair TokenPair, err error) {
	defer func() { trackRefresh(err) }()

	if refreshToken == "" {
		return TokenPair{}, ErrNoRefreshToken
	}

	resp, httpErr := c.postJSON(ctx, "/auth/refresh", refreshRequest{RefreshToken: refreshToken})
	if httpErr != nil {
		return TokenPair{}, fmt.Errorf("%w: %v", ErrRefreshFailed, httpErr)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return TokenPair{}, fmt.Errorf("%w: status %d", ErrRefreshFailed, resp.StatusCode)
	}

	var body refreshResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return TokenPair{}, fmt.Errorf("%w: %v", ErrRefreshFailed, err)
	}
	if body.AccessToken == "" {
		return TokenPair{}, fmt.Errorf("%w: response missing access_token", ErrRefreshFailed)
	}

	rotated := body.RefreshToken
	if rotated == "" {
		rotated = refreshToken
	}
	return TokenPair{AccessToken: body.AccessToken, RefreshToken: rotated}, nil
}

// Logout revokes the refresh token upstream. Best effort: the gateway's own
// sign-out does not depend on the upstream accepting the call.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	resp, err := c.postJSON(ctx, "/auth/logout", logoutRequest{RefreshToken: refreshToken})
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Code: resp.StatusCode}
	}
	return nil
}

// Profile fetches the authenticated identity. It rides the interceptor, so an
// expired access token is refreshed transparently.
func (cl *Caller) Profile(ctx context.Context) (token.User, error) {
	var u token.User
	if err := cl.JSON(ctx, http.MethodGet, "/auth/profile", nil, &u); err != nil {
		return token.User{}, err
	}
	return u, nil
}
