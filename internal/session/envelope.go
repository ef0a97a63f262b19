package session

import (
	"errors"
	"time"

	"storefront-gateway/internal/token"

	"github.com/golang-jwt/jwt/v5"
)

// ErrorRefreshAccessToken marks an envelope whose refresh failed. The value is
// a contract with client-side code watching the session payload.
const ErrorRefreshAccessToken = "RefreshAccessTokenError"

// fallbackTTL is assumed when an access token's expiry cannot be read.
// Conservative short-lived guess rather than failing the request.
const fallbackTTL = 5 * time.Minute

// Envelope is the server-held wrapper around the current token pair and
// identity. It lives HS256-signed inside the session cookie and is
// re-evaluated on every privileged request.
//
// Invariant: once Error is set the envelope never authorizes anything again;
// the only way back is a fresh credential exchange.
type Envelope struct {
	AccessToken          string     `json:"access_token,omitempty"`
	AccessTokenExpiresAt int64      `json:"access_token_expires_at,omitempty"` // unix ms
	RefreshToken         string     `json:"refresh_token,omitempty"`
	User                 token.User `json:"user"`
	Error                string     `json:"error,omitempty"`
}

// Authorizes reports whether the envelope may back a privileged request now.
func (e Envelope) Authorizes(now time.Time) bool {
	return e.Error == "" && e.AccessToken != "" && now.UnixMilli() < e.AccessTokenExpiresAt
}

func (e Envelope) Errored() bool {
	return e.Error != ""
}

// ExpiryFromToken derives the unix-ms expiry from the access token's exp
// claim. The token is not verified here; the upstream API is the party that
// trusts it, the gateway only schedules refreshes from it. Decode failures and
// missing claims fall back to now+5m.
func ExpiryFromToken(accessToken string, now time.Time) int64 {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return now.Add(fallbackTTL).UnixMilli()
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return now.Add(fallbackTTL).UnixMilli()
	}
	return exp.Time.UnixMilli()
}

type envelopeClaims struct {
	jwt.RegisteredClaims
	Envelope
}

// Codec signs and verifies envelope cookies.
type Codec struct {
	secret []byte
}

func NewCodec(secret string) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("session secret is required")
	}
	return &Codec{secret: []byte(secret)}, nil
}

func (c *Codec) Encode(env Envelope, now time.Time) (string, error) {
	claims := envelopeClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
		Envelope: env,
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

func (c *Codec) Decode(raw string) (Envelope, error) {
	var claims envelopeClaims

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if _, err := parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	}); err != nil {
		return Envelope{}, err
	}
	return claims.Envelope, nil
}
