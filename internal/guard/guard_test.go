package guard

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	signInPath  = "/admin/login"
	landingPath = "/admin/dashboard"
)

func testGuard() *Guard {
	return New(DefaultPublicRoutes(), signInPath, landingPath)
}

func mintToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("upstream-secret"))
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	return raw
}

func TestDecide_AssetPathsBypassGuard(t *testing.T) {
	g := testGuard()
	now := time.Now()

	for _, path := range []string{"/favicon.ico", "/assets/app.css", "/admin/logo.png"} {
		if d := g.Decide(path, "", now); d.Action != ActionAllow {
			t.Fatalf("asset %q: got %+v, want allow", path, d)
		}
	}
}

func TestDecide_UnauthenticatedPublicAllowed(t *testing.T) {
	g := testGuard()
	now := time.Now()

	for _, path := range []string{"/", "/produtos", "/produto/42", "/admin/login"} {
		if d := g.Decide(path, "", now); d.Action != ActionAllow {
			t.Fatalf("public %q: got %+v, want allow", path, d)
		}
	}
}

func TestDecide_UnauthenticatedPrivateRedirectsToSignIn(t *testing.T) {
	g := testGuard()

	d := g.Decide("/admin/dashboard", "", time.Now())
	if d.Action != ActionRedirect || d.Target != signInPath {
		t.Fatalf("got %+v, want redirect to %s", d, signInPath)
	}
}

func TestDecide_AuthenticatedLoginRedirectsToLanding(t *testing.T) {
	g := testGuard()
	now := time.Now()
	tok := mintToken(t, now.Add(time.Hour))

	d := g.Decide("/admin/login", tok, now)
	if d.Action != ActionRedirect || d.Target != landingPath {
		t.Fatalf("got %+v, want redirect to %s", d, landingPath)
	}
}

func TestDecide_AuthenticatedPassThroughPublicAllowed(t *testing.T) {
	g := testGuard()
	now := time.Now()
	tok := mintToken(t, now.Add(time.Hour))

	if d := g.Decide("/produtos", tok, now); d.Action != ActionAllow {
		t.Fatalf("got %+v, want allow", d)
	}
}

func TestDecide_ValidTokenPrivateAllowed(t *testing.T) {
	g := testGuard()
	now := time.Now()
	tok := mintToken(t, now.Add(time.Hour))

	if d := g.Decide("/admin/dashboard", tok, now); d.Action != ActionAllow {
		t.Fatalf("got %+v, want allow", d)
	}
}

func TestDecide_ExpiredTokenPrivateRedirects(t *testing.T) {
	g := testGuard()
	now := time.Now()
	tok := mintToken(t, now.Add(-10*time.Second))

	d := g.Decide("/admin/dashboard", tok, now)
	if d.Action != ActionRedirect || d.Target != signInPath {
		t.Fatalf("got %+v, want redirect to %s", d, signInPath)
	}
	if d.Reason != "token_expired" {
		t.Fatalf("reason = %q, want token_expired", d.Reason)
	}
}

func TestDecide_UndecodableTokenPrivateRedirects(t *testing.T) {
	g := testGuard()

	d := g.Decide("/admin/dashboard", "garbage", time.Now())
	if d.Action != ActionRedirect || d.Target != signInPath {
		t.Fatalf("got %+v, want redirect to %s", d, signInPath)
	}
}

func TestDecide_TokenWithoutExpClaimIsUnauthenticated(t *testing.T) {
	claims := jwt.RegisteredClaims{Subject: "1"}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("upstream-secret"))
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	d := testGuard().Decide("/admin/dashboard", raw, time.Now())
	if d.Action != ActionRedirect || d.Target != signInPath {
		t.Fatalf("got %+v, want redirect to %s", d, signInPath)
	}
}

func TestDecide_IsDeterministic(t *testing.T) {
	g := testGuard()
	now := time.Unix(1700000000, 0).UTC()
	tok := mintToken(t, now.Add(time.Hour))

	first := g.Decide("/admin/products", tok, now)
	for i := 0; i < 5; i++ {
		if got := g.Decide("/admin/products", tok, now); got != first {
			t.Fatalf("decision changed between evaluations: %+v vs %+v", got, first)
		}
	}
}

func TestMatchPattern_ParamSegments(t *testing.T) {
	cases := []struct {
		pattern, path string
		want          bool
	}{
		{"/produto/:id", "/produto/42", true},
		{"/produto/:id", "/produto/42/reviews", false},
		{"/produto/:id", "/produto", false},
		{"/produtos", "/produtos", true},
		{"/produtos", "/produto", false},
	}
	for _, tc := range cases {
		if got := matchPattern(tc.pattern, tc.path); got != tc.want {
			t.Fatalf("matchPattern(%q, %q) = %v, want %v", tc.pattern, tc.path, got, tc.want)
		}
	}
}
