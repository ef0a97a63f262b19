package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"storefront-gateway/internal/admin"
	"storefront-gateway/internal/catalog"
	"storefront-gateway/internal/metrics"
	"storefront-gateway/internal/session"
	"storefront-gateway/internal/token"
	"storefront-gateway/internal/upstream"
	"storefront-gateway/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.
type Handlers struct {
	Client  *upstream.Client
	Session *session.Manager
	Catalog *catalog.Service
	Admin   *admin.Service

	CookieSecure bool
	SignInPath   string

	// SignInLimit gates credential exchanges, keyed by client address.
	// Nil means unlimited.
	SignInLimit func(ctx context.Context, key string) (bool, error)
}

const (
	ctxRepoKey      = "token_repo"
	ctxForcedOutKey = "forced_sign_out"
)

// repo returns the request-scoped token repository, creating it on first use
// so every layer in one request shares the same cookie view.
func (h Handlers) repo(c *gin.Context) token.Repository {
	if v, ok := c.Get(ctxRepoKey); ok {
		if r, ok := v.(token.Repository); ok {
			return r
		}
	}
	r := token.NewCookieRepository(c.Writer, c.Request, h.CookieSecure)
	c.Set(ctxRepoKey, r)
	return r
}

// caller binds the upstream client to this request's cookies. The sign-out
// hook fires when the interceptor gives up on a refresh: the store is already
// cleared, so only the envelope cookie and the redirect flag remain.
func (h Handlers) caller(c *gin.Context, repo token.Repository) *upstream.Caller {
	return h.Client.Bind(repo, func(context.Context) {
		h.Session.Drop(c.Writer)
		c.Set(ctxForcedOutKey, true)
	})
}

/* ===================== RESPONSE SHAPE ===================== */

// apiResponse is the uniform body shape: {data, error, success}.
type apiResponse struct {
	Data    any     `json:"data"`
	Error   *string `json:"error"`
	Success bool    `json:"success"`
}

func respond(c *gin.Context, status int, data any) {
	c.JSON(status, apiResponse{Data: data, Success: true})
}

func respondError(c *gin.Context, status int, msg string) {
	c.JSON(status, apiResponse{Error: &msg})
}

// respondServiceError maps upstream failures onto the gateway's response.
// When the interceptor forced a sign-out, page navigations are redirected to
// the sign-in path while API calls still receive the original error (the
// caller must not assume the redirect implies success).
func (h Handlers) respondServiceError(c *gin.Context, err error) {
	if c.GetBool(ctxForcedOutKey) && !strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.Redirect(http.StatusFound, h.SignInPath)
		c.Abort()
		return
	}

	var se *upstream.StatusError
	if errors.As(err, &se) {
		respondError(c, se.Code, http.StatusText(se.Code))
		return
	}
	respondError(c, http.StatusBadGateway, "upstream unavailable")
}

/* ===================== AUTH ===================== */

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignIn is the credential exchange entry point. Validation failures never
// reach the upstream; exchange failures surface as one generic message.
func (h Handlers) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if h.SignInLimit != nil {
		ok, err := h.SignInLimit(c.Request.Context(), c.ClientIP())
		if err != nil {
			// Fail open: a throttle outage must not lock everyone out.
			logger.FromGin(c).Warn("sign-in limiter unavailable", "error", err)
		} else if !ok {
			respondError(c, http.StatusTooManyRequests, "too many sign-in attempts")
			return
		}
	}

	creds, fieldErrs := ValidateCredentials(req.Email, req.Password)
	if fieldErrs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"data": nil, "error": "validation failed", "fields": fieldErrs, "success": false})
		return
	}

	user, pair, err := h.Client.Login(c.Request.Context(), creds.Email, creds.Password)
	if err != nil {
		metrics.SignInFailuresTotal.Inc()
		logger.FromGin(c).Info("sign-in rejected", "email", creds.Email)
		respondError(c, http.StatusUnauthorized, upstream.ErrInvalidCredentials.Error())
		return
	}

	repo := h.repo(c)
	env := h.Session.Establish(user, pair, repo)
	if err := h.Session.Write(c.Writer, env); err != nil {
		respondError(c, http.StatusInternalServerError, "could not establish session")
		return
	}

	metrics.SignInsTotal.Inc()
	respond(c, http.StatusCreated, gin.H{"user": user})
}

// SignOut clears the token store and the envelope, then best-effort revokes
// the refresh token upstream. Signing out with nothing stored is a no-op.
func (h Handlers) SignOut(c *gin.Context) {
	repo := h.repo(c)
	refreshToken := repo.RefreshToken()

	repo.Clear()
	h.Session.Drop(c.Writer)

	if refreshToken != "" {
		// Revocation failures are logged upstreamside; the local session is
		// gone either way.
		_ = h.Client.Logout(c.Request.Context(), refreshToken)
	}

	respond(c, http.StatusOK, gin.H{"message": "signed out"})
}

// SessionInfo exposes the touched envelope's public view.
func (h Handlers) SessionInfo(c *gin.Context) {
	env, ok := session.FromGin(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "authentication required")
		return
	}
	respond(c, http.StatusOK, gin.H{
		"user":  env.User,
		"error": env.Error,
	})
}

// Profile proxies the upstream identity endpoint through the interceptor.
func (h Handlers) Profile(c *gin.Context) {
	repo := h.repo(c)
	u, err := h.caller(c, repo).Profile(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, u)
}

/* ===================== SESSION MIDDLEWARE ===================== */

// RequireSession loads, touches, and persists the envelope for privileged
// routes. A terminally errored envelope tears the session down and reports
// the refresh error; everything else re-signs the (possibly rotated)
// envelope into its cookie.
func (h Handlers) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		repo := h.repo(c)

		env, ok := h.Session.Read(c.Request)
		if !ok {
			respondError(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}

		env = h.Session.Touch(c.Request.Context(), env, repo)
		if env.Errored() {
			repo.Clear()
			h.Session.Drop(c.Writer)
			logger.FromGin(c).Info("session torn down", "reason", env.Error)
			respondError(c, http.StatusUnauthorized, env.Error)
			c.Abort()
			return
		}

		if err := h.Session.Write(c.Writer, env); err != nil {
			respondError(c, http.StatusInternalServerError, "could not persist session")
			c.Abort()
			return
		}

		session.IntoGin(c, env)
		c.Next()
	}
}
