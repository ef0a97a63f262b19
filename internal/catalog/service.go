package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"storefront-gateway/internal/upstream"
)

const (
	keyFeatured = "catalog:featured"
	keyList     = "catalog:products"
	keyProduct  = "catalog:product:"
)

// Service serves public catalog reads. Responses are cached under a short TTL;
// the cache is advisory and every cache failure falls through to the upstream.
type Service struct {
	cache Cache
	ttl   time.Duration
}

func NewService(cache Cache, ttl time.Duration) *Service {
	return &Service{cache: cache, ttl: ttl}
}

func (s *Service) Featured(ctx context.Context, call *upstream.Caller) ([]Product, error) {
	var out []Product
	err := s.cached(ctx, keyFeatured, &out, func(out any) error {
		return call.JSON(ctx, http.MethodGet, "/products/featured", nil, out)
	})
	return out, err
}

func (s *Service) List(ctx context.Context, call *upstream.Caller) ([]Product, error) {
	var out []Product
	err := s.cached(ctx, keyList, &out, func(out any) error {
		return call.JSON(ctx, http.MethodGet, "/products", nil, out)
	})
	return out, err
}

func (s *Service) Get(ctx context.Context, call *upstream.Caller, id string) (Product, error) {
	var out Product
	err := s.cached(ctx, keyProduct+id, &out, func(out any) error {
		return call.JSON(ctx, http.MethodGet, "/products/"+id, nil, out)
	})
	return out, err
}

// Invalidate drops the list-level keys plus any product details given. Called
// by the admin layer after catalog writes.
func (s *Service) Invalidate(ctx context.Context, productIDs ...string) {
	if s.cache == nil {
		return
	}
	keys := []string{keyFeatured, keyList}
	for _, id := range productIDs {
		keys = append(keys, keyProduct+id)
	}
	_ = s.cache.Delete(ctx, keys...)
}

func (s *Service) cached(ctx context.Context, key string, out any, fetch func(out any) error) error {
	if s.cache != nil {
		if b, err := s.cache.Get(ctx, key); err == nil {
			if json.Unmarshal(b, out) == nil {
				return nil
			}
		}
	}

	if err := fetch(out); err != nil {
		return err
	}

	if s.cache != nil {
		if b, err := json.Marshal(out); err == nil {
			_ = s.cache.Set(ctx, key, b, s.ttl)
		}
	}
	return nil
}
