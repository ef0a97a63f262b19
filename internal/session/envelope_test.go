package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func mintAccessToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("upstream-secret"))
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	return raw
}

func mintTokenWithoutExp(t *testing.T) string {
	t.Helper()
	claims := jwt.RegisteredClaims{Subject: "1"}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("upstream-secret"))
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	return raw
}

func TestExpiryFromToken_UsesExpClaim(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	exp := now.Add(30 * time.Minute)

	got := ExpiryFromToken(mintAccessToken(t, exp), now)
	if got != exp.UnixMilli() {
		t.Fatalf("expiry = %d, want %d", got, exp.UnixMilli())
	}
}

func TestExpiryFromToken_FallsBackOnGarbage(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	want := now.Add(5 * time.Minute).UnixMilli()

	if got := ExpiryFromToken("not-a-jwt", now); got != want {
		t.Fatalf("expiry = %d, want fallback %d", got, want)
	}
}

func TestExpiryFromToken_FallsBackWithoutExpClaim(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	want := now.Add(5 * time.Minute).UnixMilli()

	if got := ExpiryFromToken(mintTokenWithoutExp(t), now); got != want {
		t.Fatalf("expiry = %d, want fallback %d", got, want)
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	codec, err := NewCodec("gateway-secret")
	if err != nil {
		t.Fatalf("codec: %v", err)
	}

	in := Envelope{
		AccessToken:          "T1",
		AccessTokenExpiresAt: 1700000000000,
		RefreshToken:         "R1",
	}
	in.User.ID = "1"
	in.User.Email = "a@b.com"

	raw, err := codec.Encode(in, time.Now())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := codec.Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out != in {
		t.Fatalf("envelope = %+v, want %+v", out, in)
	}
}

func TestCodec_RejectsForeignSignature(t *testing.T) {
	codec, _ := NewCodec("gateway-secret")
	other, _ := NewCodec("different-secret")

	raw, err := other.Encode(Envelope{AccessToken: "T1"}, time.Now())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := codec.Decode(raw); err == nil {
		t.Fatalf("expected signature rejection")
	}
}

func TestNewCodec_RequiresSecret(t *testing.T) {
	if _, err := NewCodec(""); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}

func TestEnvelope_AuthorizesOnlyWhileValid(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	env := Envelope{AccessToken: "T1", AccessTokenExpiresAt: now.Add(time.Minute).UnixMilli()}

	if !env.Authorizes(now) {
		t.Fatalf("expected valid envelope to authorize")
	}
	if env.Authorizes(now.Add(2 * time.Minute)) {
		t.Fatalf("expected expired envelope not to authorize")
	}

	env.Error = ErrorRefreshAccessToken
	if env.Authorizes(now) {
		t.Fatalf("errored envelope must never authorize")
	}
}
