package guard

import (
	"net/http"
	"time"

	"storefront-gateway/internal/metrics"
	"storefront-gateway/internal/token"

	"github.com/gin-gonic/gin"
)

// Middleware applies the guard to every navigation. It reads the access token
// straight from the token cookie; evaluation is local, no network.
func Middleware(g *Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken, _ := c.Cookie(token.CookieAccessToken)

		d := g.Decide(c.Request.URL.Path, accessToken, time.Now())
		if d.Action == ActionRedirect {
			metrics.GuardRedirectsTotal.WithLabelValues(d.Reason).Inc()
			c.Redirect(http.StatusFound, d.Target)
			c.Abort()
			return
		}
		c.Next()
	}
}

// DefaultPublicRoutes is the storefront's public allowlist. Everything else
// is private.
func DefaultPublicRoutes() []PublicRoute {
	return []PublicRoute{
		{Pattern: "/", Behavior: PassThrough},
		{Pattern: "/produtos", Behavior: PassThrough},
		{Pattern: "/produto/:id", Behavior: PassThrough},
		{Pattern: "/admin/login", Behavior: RedirectWhenAuthenticated},
		{Pattern: "/api/products", Behavior: PassThrough},
		{Pattern: "/api/products/featured", Behavior: PassThrough},
		{Pattern: "/api/products/:id", Behavior: PassThrough},
		{Pattern: "/api/auth/sign-in", Behavior: PassThrough},
		{Pattern: "/api/auth/sign-out", Behavior: PassThrough},
		{Pattern: "/healthz", Behavior: PassThrough},
		{Pattern: "/metrics", Behavior: PassThrough},
	}
}
