package admin

import (
	"context"
	"net/http"

	"storefront-gateway/internal/catalog"
	"storefront-gateway/internal/upstream"
)

// Service is the back-office passthrough. Every method rides the intercepted
// caller, so an expired access token costs one transparent refresh, never a
// failed admin action. Catalog writes invalidate the public cache.
type Service struct {
	catalog *catalog.Service
}

func NewService(cat *catalog.Service) *Service {
	return &Service{catalog: cat}
}

/* ===================== PRODUCTS ===================== */

func (s *Service) ListProducts(ctx context.Context, call *upstream.Caller) ([]catalog.Product, error) {
	var out []catalog.Product
	err := call.JSON(ctx, http.MethodGet, "/admin/products", nil, &out)
	return out, err
}

func (s *Service) CreateProduct(ctx context.Context, call *upstream.Caller, in ProductInput) (catalog.Product, error) {
	var out catalog.Product
	if err := call.JSON(ctx, http.MethodPost, "/admin/products", in, &out); err != nil {
		return catalog.Product{}, err
	}
	s.catalog.Invalidate(ctx, out.ID)
	return out, nil
}

func (s *Service) UpdateProduct(ctx context.Context, call *upstream.Caller, id string, in ProductInput) (catalog.Product, error) {
	var out catalog.Product
	if err := call.JSON(ctx, http.MethodPut, "/admin/products/"+id, in, &out); err != nil {
		return catalog.Product{}, err
	}
	s.catalog.Invalidate(ctx, id)
	return out, nil
}

func (s *Service) DeleteProduct(ctx context.Context, call *upstream.Caller, id string) error {
	if err := call.JSON(ctx, http.MethodDelete, "/admin/products/"+id, nil, nil); err != nil {
		return err
	}
	s.catalog.Invalidate(ctx, id)
	return nil
}

/* ===================== PROMOTIONS ===================== */

func (s *Service) ListPromotions(ctx context.Context, call *upstream.Caller) ([]catalog.Promotion, error) {
	var out []catalog.Promotion
	err := call.JSON(ctx, http.MethodGet, "/admin/promotions", nil, &out)
	return out, err
}

func (s *Service) CreatePromotion(ctx context.Context, call *upstream.Caller, in PromotionInput) (catalog.Promotion, error) {
	var out catalog.Promotion
	if err := call.JSON(ctx, http.MethodPost, "/admin/promotions", in, &out); err != nil {
		return catalog.Promotion{}, err
	}
	s.catalog.Invalidate(ctx, in.ProductID)
	return out, nil
}

func (s *Service) UpdatePromotion(ctx context.Context, call *upstream.Caller, id string, in PromotionInput) (catalog.Promotion, error) {
	var out catalog.Promotion
	if err := call.JSON(ctx, http.MethodPut, "/admin/promotions/"+id, in, &out); err != nil {
		return catalog.Promotion{}, err
	}
	s.catalog.Invalidate(ctx, in.ProductID)
	return out, nil
}

func (s *Service) DeletePromotion(ctx context.Context, call *upstream.Caller, id string) error {
	if err := call.JSON(ctx, http.MethodDelete, "/admin/promotions/"+id, nil, nil); err != nil {
		return err
	}
	s.catalog.Invalidate(ctx)
	return nil
}

/* ===================== MATERIALS ===================== */

func (s *Service) ListMaterials(ctx context.Context, call *upstream.Caller) ([]Material, error) {
	var out []Material
	err := call.JSON(ctx, http.MethodGet, "/admin/materials", nil, &out)
	return out, err
}

func (s *Service) CreateMaterial(ctx context.Context, call *upstream.Caller, in MaterialInput) (Material, error) {
	var out Material
	err := call.JSON(ctx, http.MethodPost, "/admin/materials", in, &out)
	return out, err
}

func (s *Service) UpdateMaterial(ctx context.Context, call *upstream.Caller, id string, in MaterialInput) (Material, error) {
	var out Material
	err := call.JSON(ctx, http.MethodPut, "/admin/materials/"+id, in, &out)
	return out, err
}

func (s *Service) DeleteMaterial(ctx context.Context, call *upstream.Caller, id string) error {
	return call.JSON(ctx, http.MethodDelete, "/admin/materials/"+id, nil, nil)
}

/* ===================== FINANCIAL ===================== */

func (s *Service) ListFinancialEntries(ctx context.Context, call *upstream.Caller) ([]FinancialEntry, error) {
	var out []FinancialEntry
	err := call.JSON(ctx, http.MethodGet, "/admin/financial", nil, &out)
	return out, err
}

func (s *Service) CreateFinancialEntry(ctx context.Context, call *upstream.Caller, in FinancialEntryInput) (FinancialEntry, error) {
	var out FinancialEntry
	err := call.JSON(ctx, http.MethodPost, "/admin/financial", in, &out)
	return out, err
}

func (s *Service) DeleteFinancialEntry(ctx context.Context, call *upstream.Caller, id string) error {
	return call.JSON(ctx, http.MethodDelete, "/admin/financial/"+id, nil, nil)
}

/* ===================== DASHBOARD ===================== */

func (s *Service) DashboardSummary(ctx context.Context, call *upstream.Caller) (DashboardSummary, error) {
	var out DashboardSummary
	err := call.JSON(ctx, http.MethodGet, "/admin/dashboard", nil, &out)
	return out, err
}
