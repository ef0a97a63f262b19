package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Public catalog handlers. These routes are reachable without a session; the
// caller still attaches a bearer token when one is stored, per the
// every-outgoing-call rule.

func (h Handlers) FeaturedProducts(c *gin.Context) {
	repo := h.repo(c)
	products, err := h.Catalog.Featured(c.Request.Context(), h.caller(c, repo))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, products)
}

func (h Handlers) ListProducts(c *gin.Context) {
	repo := h.repo(c)
	products, err := h.Catalog.List(c.Request.Context(), h.caller(c, repo))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, products)
}

func (h Handlers) GetProduct(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respondError(c, http.StatusBadRequest, "product id is required")
		return
	}

	repo := h.repo(c)
	product, err := h.Catalog.Get(c.Request.Context(), h.caller(c, repo), id)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, product)
}
