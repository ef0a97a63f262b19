package guard

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Action is the guard's verdict for one navigation.
type Action int

const (
	ActionAllow Action = iota
	ActionRedirect
)

// Behavior controls what a public route does with an authenticated visitor.
type Behavior int

const (
	// PassThrough allows the route regardless of authentication state.
	PassThrough Behavior = iota

	// RedirectWhenAuthenticated bounces signed-in users to the landing path
	// (the login page is the canonical case).
	RedirectWhenAuthenticated
)

// PublicRoute is an allowlist entry. Pattern segments starting with ':' match
// any single non-empty segment, e.g. "/produto/:id".
type PublicRoute struct {
	Pattern string
	Behavior
}

type Decision struct {
	Action Action
	Target string

	// Reason feeds metrics; empty for allows.
	Reason string
}

var allow = Decision{Action: ActionAllow}

// Guard gates navigation from locally-held token material only. Decide never
// touches the network: validity is judged from the token's embedded exp claim.
type Guard struct {
	public      []PublicRoute
	signInPath  string
	landingPath string
}

func New(public []PublicRoute, signInPath, landingPath string) *Guard {
	return &Guard{public: public, signInPath: signInPath, landingPath: landingPath}
}

// Decide classifies one requested path given the current access token.
// Deterministic and side-effect free; the caller applies the redirect.
func (g *Guard) Decide(path, accessToken string, now time.Time) Decision {
	// Asset delivery bypasses the guard entirely.
	if hasFileExtension(path) {
		return allow
	}

	public, isPublic := g.match(path)

	if accessToken == "" {
		if isPublic {
			return allow
		}
		return g.toSignIn("unauthenticated")
	}

	if isPublic {
		if public.Behavior == RedirectWhenAuthenticated {
			return Decision{Action: ActionRedirect, Target: g.landingPath, Reason: "authenticated_public"}
		}
		return allow
	}

	// Private path with a token: the token must carry a readable, future exp.
	// Strict here, unlike the session layer: an undecodable token reads as
	// unauthenticated.
	exp, ok := tokenExpiry(accessToken)
	if !ok {
		return g.toSignIn("token_undecodable")
	}
	if !now.Before(exp) {
		return g.toSignIn("token_expired")
	}
	return allow
}

func (g *Guard) toSignIn(reason string) Decision {
	return Decision{Action: ActionRedirect, Target: g.signInPath, Reason: reason}
}

func (g *Guard) match(path string) (PublicRoute, bool) {
	for _, r := range g.public {
		if matchPattern(r.Pattern, path) {
			return r, true
		}
	}
	return PublicRoute{}, false
}

func matchPattern(pattern, path string) bool {
	if pattern == path {
		return true
	}
	ps := strings.Split(strings.Trim(pattern, "/"), "/")
	xs := strings.Split(strings.Trim(path, "/"), "/")
	if len(ps) != len(xs) {
		return false
	}
	for i := range ps {
		if strings.HasPrefix(ps[i], ":") {
			if xs[i] == "" {
				return false
			}
			continue
		}
		if ps[i] != xs[i] {
			return false
		}
	}
	return true
}

// hasFileExtension reports whether the last path segment looks like a file.
func hasFileExtension(path string) bool {
	last := path[strings.LastIndex(path, "/")+1:]
	dot := strings.LastIndex(last, ".")
	return dot > -1 && dot < len(last)-1
}

// tokenExpiry extracts the exp claim without verifying the signature; the
// guard never trusts the token for authorization, only for scheduling.
func tokenExpiry(accessToken string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
