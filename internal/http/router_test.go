package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Zchasse63/vercelpickle/internal/catalog"
)

func newCatalogRouter(products *fakeCatalog) http.Handler {
	return NewRouter(Deps{
		Catalog:     NewCatalogHandler(products),
		Negotiation: NewNegotiationHandler(nil, nil),
		Shipment:    NewShipmentHandler(nil),
		Comparison:  NewComparisonHandler(nil),
		Order:       NewOrderHandler(nil),
	})
}

func TestHealth(t *testing.T) {
	router := newCatalogRouter(&fakeCatalog{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "ok" {
		t.Fatalf("expected body \"ok\", got %q", body)
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	router := newCatalogRouter(&fakeCatalog{})

	req := httptest.NewRequest(http.MethodGet, "/api/products/does-not-exist", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestGetProduct_OK(t *testing.T) {
	router := newCatalogRouter(testProducts())

	req := httptest.NewRequest(http.MethodGet, "/api/products/prod-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Fatalf("expected JSON content type, got %q", ct)
	}

	var p catalog.Product
	if err := json.NewDecoder(rec.Body).Decode(&p); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if p.ID != "prod-1" || p.Price != 12.99 {
		t.Fatalf("unexpected body: %+v", p)
	}
}

func TestUpsertProduct_Validation(t *testing.T) {
	router := newCatalogRouter(&fakeCatalog{})

	req := httptest.NewRequest(http.MethodPut, "/api/products/p1", strings.NewReader(`{"name":""}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUpsertProduct_OK(t *testing.T) {
	products := &fakeCatalog{}
	router := newCatalogRouter(products)

	body := `{"name":"House Relish","price":4.5,"unit":"case","sellerId":"s1","sellerName":"Brine Bros"}`
	req := httptest.NewRequest(http.MethodPut, "/api/products/p9", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d, body: %s", rec.Code, rec.Body.String())
	}
	if _, ok := products.products["p9"]; !ok {
		t.Fatal("product not stored")
	}
}
