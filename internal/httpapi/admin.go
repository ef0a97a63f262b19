package httpapi

import (
	"net/http"

	"storefront-gateway/internal/admin"

	"github.com/gin-gonic/gin"
)

// Back-office handlers. All run behind RequireSession + rbac.RequireAdmin.

/* ===================== PRODUCTS ===================== */

func (h Handlers) AdminListProducts(c *gin.Context) {
	repo := h.repo(c)
	out, err := h.Admin.ListProducts(c.Request.Context(), h.caller(c, repo))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, out)
}

func (h Handlers) AdminCreateProduct(c *gin.Context) {
	var in admin.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	repo := h.repo(c)
	out, err := h.Admin.CreateProduct(c.Request.Context(), h.caller(c, repo), in)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	respond(c, http.StatusCreated, out)
}

func (h Handlers) AdminUpdateProduct(c *gin.Context) {
	var in admin.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	repo := h.repo(c)
	out, err := h.Admin.UpdateProduct(c.Request.Context(), h.caller(c, repo), c.Param("id"), in)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, out)
}

func (h Handlers) AdminDeleteProduct(c *gin.Context) {
	repo := h.repo(c)
	if err := h.Admin.DeleteProduct(c.Request.Context(), h.caller(c, repo), c.Param("id")); err != nil {
		h.respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "deleted"})
}

/* ===================== PROMOTIONS ===================== */

func (h Handlers) AdminListPromotions(c *gin.Context) {
	repo := h.repo(c)
	out, err := h.Admin.ListPromotions(c.Request.Context(), h.caller(c, repo))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, out)
}

func (h Handlers) AdminCreatePromotion(c *gin.Context) {
	var in admin.PromotionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	repo := h.repo(c)
	out, err := h.Admin.CreatePromotion(c.Request.Context(), h.caller(c, repo), in)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	respond(c, http.StatusCreated, out)
}

func (h Handlers) AdminUpdatePromotion(c *gin.Context) {
	var in admin.PromotionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	repo := h.repo(c)
	out, err := h.Admin.UpdatePromotion(c.Request.Context(), h.caller(c, repo), c.Param("id"), in)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, out)
}

func (h Handlers) AdminDeletePromotion(c *gin.Context) {
	repo := h.repo(c)
	if err := h.Admin.DeletePromotion(c.Request.Context(), h.caller(c, repo), c.Param("id")); err != nil {
		h.respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "deleted"})
}

/* ===================== MATERIALS ===================== */

func (h Handlers) AdminListMaterials(c *gin.Context) {
	repo := h.repo(c)
	out, err := h.Admin.ListMaterials(c.Request.Context(), h.caller(c, repo))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, out)
}

func (h Handlers) AdminCreateMaterial(c *gin.Context) {
	var in admin.MaterialInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	repo := h.repo(c)
	out, err := h.Admin.CreateMaterial(c.Request.Context(), h.caller(c, repo), in)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	respond(c, http.StatusCreated, out)
}

func (h Handlers) AdminUpdateMaterial(c *gin.Context) {
	var in admin.MaterialInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	repo := h.repo(c)
	out, err := h.Admin.UpdateMaterial(c.Request.Context(), h.caller(c, repo), c.Param("id"), in)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, out)
}

func (h Handlers) AdminDeleteMaterial(c *gin.Context) {
	repo := h.repo(c)
	if err := h.Admin.DeleteMaterial(c.Request.Context(), h.caller(c, repo), c.Param("id")); err != nil {
		h.respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "deleted"})
}

/* ===================== FINANCIAL ===================== */

func (h Handlers) AdminListFinancialEntries(c *gin.Context) {
	repo := h.repo(c)
	out, err := h.Admin.ListFinancialEntries(c.Request.Context(), h.caller(c, repo))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, out)
}

func (h Handlers) AdminCreateFinancialEntry(c *gin.Context) {
	var in admin.FinancialEntryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	repo := h.repo(c)
	out, err := h.Admin.CreateFinancialEntry(c.Request.Context(), h.caller(c, repo), in)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	respond(c, http.StatusCreated, out)
}

func (h Handlers) AdminDeleteFinancialEntry(c *gin.Context) {
	repo := h.repo(c)
	if err := h.Admin.DeleteFinancialEntry(c.Request.Context(), h.caller(c, repo), c.Param("id")); err != nil {
		h.respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "deleted"})
}

/* ===================== DASHBOARD ===================== */

func (h Handlers) AdminDashboard(c *gin.Context) {
	repo := h.repo(c)
	out, err := h.Admin.DashboardSummary(c.Request.Context(), h.caller(c, repo))
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, out)
}
