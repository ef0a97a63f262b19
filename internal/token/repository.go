package token

// Cookie names are a contract with client-side code, not an internal detail.
const (
	CookieAccessToken  = "jwt"
	CookieRefreshToken = "refresh_token"
	CookieUser         = "user"
)

// User is the authenticated identity mirrored into the store at login.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Repository is the only code allowed to touch the underlying cookie
// mechanism. The session layer, the upstream client, and the route guard all
// read token material through it.
//
// Invariant: a refresh outcome carrying both tokens must be stored through a
// single SetTokens call; jwt and refresh_token are never updated separately.
type Repository interface {
	AccessToken() string
	RefreshToken() string
	User() (User, bool)

	// SetTokens stores the pair together. When the backend did not rotate the
	// refresh token, pass the carried-forward one rather than an empty string.
	SetTokens(access, refresh string)
	SetUser(u User)

	// Clear removes all three entries. Clearing an empty store is a no-op.
	Clear()
}
