package main

import (
	"net/http"

	"storefront-gateway/internal/config"
	"storefront-gateway/internal/guard"
	"storefront-gateway/internal/httpapi"
	"storefront-gateway/internal/metrics"
	"storefront-gateway/internal/rbac"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers delegate to internal modules.
func registerRoutes(r *gin.Engine, cfg config.Config, h httpapi.Handlers) {
	if len(cfg.App.AllowOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.App.AllowOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
		}))
	}

	// Navigation guard: public allowlist, everything else needs a token.
	g := guard.New(guard.DefaultPublicRoutes(), "/admin/login", "/admin/dashboard")
	r.Use(guard.Middleware(g))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Page entry points. The gateway does not render the storefront; these
	// anchor the guard's redirect targets until the web frontend is mounted.
	page := func(name string) gin.HandlerFunc {
		return func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"page": name})
		}
	}
	r.GET("/", page("home"))
	r.GET("/produtos", page("products"))
	r.GET("/produto/:id", page("product"))
	r.GET("/admin/login", page("admin-login"))
	r.GET("/admin/dashboard", page("admin-dashboard"))
	r.GET("/admin/products", page("admin-products"))
	r.GET("/admin/promotions", page("admin-promotions"))
	r.GET("/admin/materials", page("admin-materials"))
	r.GET("/admin/financial", page("admin-financial"))

	// AUTH routes
	auth := r.Group("/api/auth")
	{
		auth.POST("/sign-in", h.SignIn)
		auth.POST("/sign-out", h.SignOut)
		auth.GET("/profile", h.RequireSession(), h.Profile)
	}

	r.GET("/api/session", h.RequireSession(), h.SessionInfo)

	// Public catalog routes
	products := r.Group("/api/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/featured", h.FeaturedProducts)
		products.GET("/:id", h.GetProduct)
	}

	// Back-office routes. Only admins get past the role gate.
	adminAPI := r.Group("/api/admin", h.RequireSession(), rbac.RequireAdmin())
	{
		adminAPI.GET("/dashboard", h.AdminDashboard)

		adminAPI.GET("/products", h.AdminListProducts)
		adminAPI.POST("/products", h.AdminCreateProduct)
		adminAPI.PUT("/products/:id", h.AdminUpdateProduct)
		adminAPI.DELETE("/products/:id", h.AdminDeleteProduct)

		adminAPI.GET("/promotions", h.AdminListPromotions)
		adminAPI.POST("/promotions", h.AdminCreatePromotion)
		adminAPI.PUT("/promotions/:id", h.AdminUpdatePromotion)
		adminAPI.DELETE("/promotions/:id", h.AdminDeletePromotion)

		adminAPI.GET("/materials", h.AdminListMaterials)
		adminAPI.POST("/materials", h.AdminCreateMaterial)
		adminAPI.PUT("/materials/:id", h.AdminUpdateMaterial)
		adminAPI.DELETE("/materials/:id", h.AdminDeleteMaterial)

		adminAPI.GET("/financial", h.AdminListFinancialEntries)
		adminAPI.POST("/financial", h.AdminCreateFinancialEntry)
		adminAPI.DELETE("/financial/:id", h.AdminDeleteFinancialEntry)
	}
}
