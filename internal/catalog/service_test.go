package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront-gateway/internal/token"
	"storefront-gateway/internal/upstream"
)

func testCaller(t *testing.T, handler http.Handler) *upstream.Caller {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return upstream.NewClient(srv.URL, 5*time.Second).Bind(token.NewMemoryRepository(), nil)
}

func TestFeatured_FetchesAndCaches(t *testing.T) {
	var upstreamCalls int
	call := testCaller(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products/featured" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		upstreamCalls++
		_ = json.NewEncoder(w).Encode([]Product{{ID: "p1", Name: "Vaso", IsFeatured: true}})
	}))

	s := NewService(newMemoryCache(), time.Minute)

	first, err := s.Featured(context.Background(), call)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := s.Featured(context.Background(), call)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if upstreamCalls != 1 {
		t.Fatalf("upstream calls = %d, want 1 (second read served from cache)", upstreamCalls)
	}
	if len(first) != 1 || len(second) != 1 || second[0].ID != "p1" {
		t.Fatalf("unexpected products: %v / %v", first, second)
	}
}

func TestGet_CachesPerProduct(t *testing.T) {
	var upstreamCalls int
	call := testCaller(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upstreamCalls++
		_ = json.NewEncoder(w).Encode(Product{ID: "p2", Name: "Cesto"})
	}))

	s := NewService(newMemoryCache(), time.Minute)

	if _, err := s.Get(context.Background(), call, "p2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := s.Get(context.Background(), call, "p2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if upstreamCalls != 1 {
		t.Fatalf("upstream calls = %d, want 1", upstreamCalls)
	}
	if got.Name != "Cesto" {
		t.Fatalf("unexpected product: %+v", got)
	}
}

func TestList_WorksWithoutCache(t *testing.T) {
	call := testCaller(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]Product{{ID: "p1"}, {ID: "p2"}})
	}))

	s := NewService(nil, time.Minute)
	got, err := s.List(context.Background(), call)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("products = %d, want 2", len(got))
	}
}

func TestInvalidate_DropsCachedKeys(t *testing.T) {
	var upstreamCalls int
	call := testCaller(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upstreamCalls++
		_ = json.NewEncoder(w).Encode([]Product{{ID: "p1"}})
	}))

	s := NewService(newMemoryCache(), time.Minute)

	if _, err := s.List(context.Background(), call); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Invalidate(context.Background(), "p1")
	if _, err := s.List(context.Background(), call); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if upstreamCalls != 2 {
		t.Fatalf("upstream calls = %d, want 2 after invalidation", upstreamCalls)
	}
}

func TestFeatured_UpstreamErrorPropagates(t *testing.T) {
	call := testCaller(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	s := NewService(newMemoryCache(), time.Minute)
	if _, err := s.Featured(context.Background(), call); err == nil {
		t.Fatalf("expected error from upstream")
	}
}
