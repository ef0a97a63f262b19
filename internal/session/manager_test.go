package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront-gateway/internal/token"
	"storefront-gateway/internal/upstream"
)

type fakeRefresher struct {
	calls int
	pair  upstream.TokenPair
	err   error
}

func (f *fakeRefresher) Refresh(ctx context.Context, refreshToken string) (upstream.TokenPair, error) {
	f.calls++
	return f.pair, f.err
}

func newTestManager(t *testing.T, refresher Refresher, now time.Time) *Manager {
	t.Helper()
	codec, err := NewCodec("gateway-secret")
	if err != nil {
		t.Fatalf("codec: %v", err)
	}
	m := NewManager(codec, refresher, "session_token", false)
	m.clock = func() time.Time { return now }
	return m
}

func TestEstablish_MirrorsStoreAndDerivesExpiry(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	exp := now.Add(time.Hour)
	m := newTestManager(t, &fakeRefresher{}, now)

	repo := token.NewMemoryRepository()
	access := mintAccessToken(t, exp)
	user := token.User{ID: "1", Email: "a@b.com", Name: "Ana", Role: "admin"}

	env := m.Establish(user, upstream.TokenPair{AccessToken: access, RefreshToken: "R1"}, repo)

	if env.AccessTokenExpiresAt != exp.UnixMilli() {
		t.Fatalf("expiry = %d, want %d", env.AccessTokenExpiresAt, exp.UnixMilli())
	}
	if !env.Authorizes(now) {
		t.Fatalf("expected fresh envelope to authorize")
	}
	if repo.AccessToken() != access || repo.RefreshToken() != "R1" {
		t.Fatalf("store not mirrored: (%q, %q)", repo.AccessToken(), repo.RefreshToken())
	}
	if u, ok := repo.User(); !ok || u != user {
		t.Fatalf("user not mirrored: %+v ok=%v", u, ok)
	}
}

func TestTouch_ReusesUnexpiredToken(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	ref := &fakeRefresher{}
	m := newTestManager(t, ref, now)

	in := Envelope{
		AccessToken:          "T1",
		AccessTokenExpiresAt: now.Add(time.Minute).UnixMilli(),
		RefreshToken:         "R1",
	}

	out := m.Touch(context.Background(), in, token.NewMemoryRepository())
	if out != in {
		t.Fatalf("envelope changed: %+v", out)
	}
	if ref.calls != 0 {
		t.Fatalf("expected no refresh call, got %d", ref.calls)
	}
}

func TestTouch_RefreshesExpiredTokenAndMirrorsStore(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	newExp := now.Add(time.Hour)
	newAccess := mintAccessToken(t, newExp)
	ref := &fakeRefresher{pair: upstream.TokenPair{AccessToken: newAccess, RefreshToken: "R2"}}
	m := newTestManager(t, ref, now)

	repo := token.NewMemoryRepository()
	in := Envelope{
		AccessToken:          "T1",
		AccessTokenExpiresAt: now.Add(-time.Second).UnixMilli(),
		RefreshToken:         "R1",
	}

	out := m.Touch(context.Background(), in, repo)
	if ref.calls != 1 {
		t.Fatalf("refresh calls = %d, want 1", ref.calls)
	}
	if out.AccessToken != newAccess || out.RefreshToken != "R2" {
		t.Fatalf("pair not rotated: %+v", out)
	}
	if out.AccessTokenExpiresAt != newExp.UnixMilli() {
		t.Fatalf("expiry = %d, want %d", out.AccessTokenExpiresAt, newExp.UnixMilli())
	}
	if repo.AccessToken() != newAccess || repo.RefreshToken() != "R2" {
		t.Fatalf("store not mirrored: (%q, %q)", repo.AccessToken(), repo.RefreshToken())
	}
}

func TestTouch_RefreshFailureIsTerminal(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	ref := &fakeRefresher{err: errors.New("denied")}
	m := newTestManager(t, ref, now)

	in := Envelope{
		AccessToken:          "T1",
		AccessTokenExpiresAt: now.Add(-time.Second).UnixMilli(),
		RefreshToken:         "R1",
	}

	out := m.Touch(context.Background(), in, token.NewMemoryRepository())
	if out.Error != ErrorRefreshAccessToken {
		t.Fatalf("error = %q, want %q", out.Error, ErrorRefreshAccessToken)
	}
	if out.AccessToken != "" || out.RefreshToken != "" {
		t.Fatalf("errored envelope still exposes token material: %+v", out)
	}
	if out.Authorizes(now) {
		t.Fatalf("errored envelope must not authorize")
	}

	// Errored is terminal: a later touch must not attempt another refresh.
	again := m.Touch(context.Background(), out, token.NewMemoryRepository())
	if again != out {
		t.Fatalf("errored envelope mutated: %+v", again)
	}
	if ref.calls != 1 {
		t.Fatalf("refresh calls = %d, want 1", ref.calls)
	}
}

func TestTouch_MissingRefreshTokenErrorsWithoutCall(t *testing.T) {
	now := time.Unix(1700000000, 0).UTC()
	ref := &fakeRefresher{}
	m := newTestManager(t, ref, now)

	in := Envelope{
		AccessToken:          "T1",
		AccessTokenExpiresAt: now.Add(-time.Second).UnixMilli(),
	}

	out := m.Touch(context.Background(), in, token.NewMemoryRepository())
	if out.Error != ErrorRefreshAccessToken {
		t.Fatalf("error = %q, want %q", out.Error, ErrorRefreshAccessToken)
	}
	if ref.calls != 0 {
		t.Fatalf("expected no refresh call, got %d", ref.calls)
	}
}
