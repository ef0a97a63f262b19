package token

import (
	"encoding/json"
	"net/http"
	"net/url"
)

// CookieRepository binds the store to one request/response pair. Reads see
// values written earlier in the same request (the inbound http.Request never
// reflects our own Set-Cookie headers), falling back to the request cookies.
type CookieRepository struct {
	req     *http.Request
	w       http.ResponseWriter
	secure  bool
	path    string
	written map[string]string
	cleared bool
}

var _ Repository = (*CookieRepository)(nil)

func NewCookieRepository(w http.ResponseWriter, req *http.Request, secure bool) *CookieRepository {
	return &CookieRepository{
		req:     req,
		w:       w,
		secure:  secure,
		path:    "/",
		written: make(map[string]string),
	}
}

func (r *CookieRepository) AccessToken() string  { return r.get(CookieAccessToken) }
func (r *CookieRepository) RefreshToken() string { return r.get(CookieRefreshToken) }

func (r *CookieRepository) User() (User, bool) {
	raw := r.get(CookieUser)
	if raw == "" {
		return User{}, false
	}
	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return User{}, false
	}
	var u User
	if err := json.Unmarshal([]byte(decoded), &u); err != nil {
		return User{}, false
	}
	return u, true
}

func (r *CookieRepository) SetTokens(access, refresh string) {
	r.set(CookieAccessToken, access)
	r.set(CookieRefreshToken, refresh)
}

func (r *CookieRepository) SetUser(u User) {
	b, err := json.Marshal(u)
	if err != nil {
		return
	}
	r.set(CookieUser, url.QueryEscape(string(b)))
}

func (r *CookieRepository) Clear() {
	r.cleared = true
	r.written = make(map[string]string)
	for _, name := range []string{CookieAccessToken, CookieRefreshToken, CookieUser} {
		http.SetCookie(r.w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     r.path,
			MaxAge:   -1,
			Secure:   r.secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

func (r *CookieRepository) get(name string) string {
	if v, ok := r.written[name]; ok {
		return v
	}
	if r.cleared {
		return ""
	}
	c, err := r.req.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}

func (r *CookieRepository) set(name, value string) {
	r.written[name] = value
	http.SetCookie(r.w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     r.path,
		Secure:   r.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
