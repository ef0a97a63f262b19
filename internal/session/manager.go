package session

import (
	"context"
	"net/http"
	"time"

	"storefront-gateway/internal/token"
	"storefront-gateway/internal/upstream"
)

// Refresher mints a new token pair from a refresh token. Implemented by the
// upstream client.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (upstream.TokenPair, error)
}

// Manager owns the envelope lifecycle: establish after login, rotate on
// expiry, terminal error on refresh failure. On every transition into a valid
// state the token cookies are rewritten through the repository, so client-side
// reads never observe a token the server already rotated past.
type Manager struct {
	codec        *Codec
	refresher    Refresher
	cookieName   string
	cookieSecure bool

	// clock is injectable for deterministic tests.
	clock func() time.Time
}

func NewManager(codec *Codec, refresher Refresher, cookieName string, cookieSecure bool) *Manager {
	return &Manager{
		codec:        codec,
		refresher:    refresher,
		cookieName:   cookieName,
		cookieSecure: cookieSecure,
		clock:        time.Now,
	}
}

// Establish builds a fresh envelope from a successful credential exchange and
// mirrors the tokens and identity into the store. This is the only entry into
// the Valid state from scratch.
func (m *Manager) Establish(user token.User, pair upstream.TokenPair, tokens token.Repository) Envelope {
	now := m.clock()
	env := Envelope{
		AccessToken:          pair.AccessToken,
		AccessTokenExpiresAt: ExpiryFromToken(pair.AccessToken, now),
		RefreshToken:         pair.RefreshToken,
		User:                 user,
	}
	tokens.SetTokens(pair.AccessToken, pair.RefreshToken)
	tokens.SetUser(user)
	return env
}

// Touch re-evaluates the envelope for one request.
//
//   - Errored envelopes stay errored; nothing can resurrect them.
//   - A non-expired access token is reused untouched.
//   - An expired one triggers a single refresh. Success rotates the pair and
//     rewrites the token cookies; failure wipes the token material and marks
//     the envelope terminally errored.
func (m *Manager) Touch(ctx context.Context, env Envelope, tokens token.Repository) Envelope {
	if env.Errored() {
		return env
	}

	now := m.clock()
	if env.AccessToken != "" && now.UnixMilli() < env.AccessTokenExpiresAt {
		return env
	}

	if env.RefreshToken == "" {
		return m.errored(env)
	}

	pair, err := m.refresher.Refresh(ctx, env.RefreshToken)
	if err != nil {
		return m.errored(env)
	}

	env.AccessToken = pair.AccessToken
	env.AccessTokenExpiresAt = ExpiryFromToken(pair.AccessToken, now)
	env.RefreshToken = pair.RefreshToken
	tokens.SetTokens(pair.AccessToken, pair.RefreshToken)
	return env
}

// errored blanks the token material so no later read of the envelope can
// mistake it for an authorizing one.
func (m *Manager) errored(env Envelope) Envelope {
	env.AccessToken = ""
	env.AccessTokenExpiresAt = 0
	env.RefreshToken = ""
	env.Error = ErrorRefreshAccessToken
	return env
}

// Read decodes the envelope cookie from the request. Missing or tampered
// cookies read as absent.
func (m *Manager) Read(r *http.Request) (Envelope, bool) {
	c, err := r.Cookie(m.cookieName)
	if err != nil || c.Value == "" {
		return Envelope{}, false
	}
	env, err := m.codec.Decode(c.Value)
	if err != nil {
		return Envelope{}, false
	}
	return env, true
}

// Write signs the envelope back into its cookie.
func (m *Manager) Write(w http.ResponseWriter, env Envelope) error {
	raw, err := m.codec.Encode(env, m.clock())
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    raw,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Drop discards the envelope cookie.
func (m *Manager) Drop(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
