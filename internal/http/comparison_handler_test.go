package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zchasse63/vercelpickle/internal/catalog"
	"github.com/Zchasse63/vercelpickle/internal/comparison"
)

func newComparisonRouter() http.Handler {
	products := &fakeCatalog{products: map[string]catalog.Product{
		"p1": {ID: "p1", Name: "Spears", Price: 12.99, Origin: "Wisconsin, USA", SellerID: "s1"},
		"p2": {ID: "p2", Name: "Chips", Price: 9.49, SellerID: "s1"},
		"p3": {ID: "p3", Name: "Relish", Price: 4.50, SellerID: "s2"},
		"p4": {ID: "p4", Name: "Kraut", Price: 6.25, SellerID: "s2"},
		"p5": {ID: "p5", Name: "Kimchi", Price: 8.75, SellerID: "s2"},
	}}
	svc := comparison.NewService(products)

	return NewRouter(Deps{
		Catalog:     NewCatalogHandler(products),
		Negotiation: NewNegotiationHandler(nil, nil),
		Shipment:    NewShipmentHandler(nil),
		Comparison:  NewComparisonHandler(svc),
		Order:       NewOrderHandler(nil),
	})
}

func addToComparison(t *testing.T, router http.Handler, productID string) *httptest.ResponseRecorder {
	t.Helper()
	return postJSON(t, router, "/api/buyers/buyer-1/comparison/items", map[string]any{
		"productId": productID,
	})
}

func TestComparisonLimitOverHTTP(t *testing.T) {
	router := newComparisonRouter()

	for _, id := range []string{"p1", "p2", "p3", "p4"} {
		rec := addToComparison(t, router, id)
		require.Equal(t, http.StatusCreated, rec.Code, "adding %s", id)
	}

	rec := addToComparison(t, router, "p5")
	require.Equal(t, http.StatusConflict, rec.Code)

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "you can compare up to 4 products", body.Error)

	// Selection is unchanged: still the first four products.
	get := httptest.NewRecorder()
	router.ServeHTTP(get, httptest.NewRequest(http.MethodGet, "/api/buyers/buyer-1/comparison", nil))
	require.Equal(t, http.StatusOK, get.Code)

	var m comparison.Matrix
	require.NoError(t, json.NewDecoder(get.Body).Decode(&m))
	require.Len(t, m.Products, 4)
	for _, p := range m.Products {
		assert.NotEqual(t, "p5", p.ID)
	}
}

func TestComparisonAddUnknownProduct(t *testing.T) {
	router := newComparisonRouter()

	rec := addToComparison(t, router, "ghost")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestComparisonRemoveOverHTTP(t *testing.T) {
	router := newComparisonRouter()

	require.Equal(t, http.StatusCreated, addToComparison(t, router, "p1").Code)
	require.Equal(t, http.StatusCreated, addToComparison(t, router, "p2").Code)

	req := httptest.NewRequest(http.MethodDelete, "/api/buyers/buyer-1/comparison/items/p1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	get := httptest.NewRecorder()
	router.ServeHTTP(get, httptest.NewRequest(http.MethodGet, "/api/buyers/buyer-1/comparison", nil))

	var m comparison.Matrix
	require.NoError(t, json.NewDecoder(get.Body).Decode(&m))
	require.Len(t, m.Products, 1)
	assert.Equal(t, "p2", m.Products[0].ID)
}

func TestComparisonMatrixMarksAbsentFeatures(t *testing.T) {
	router := newComparisonRouter()

	require.Equal(t, http.StatusCreated, addToComparison(t, router, "p1").Code)
	require.Equal(t, http.StatusCreated, addToComparison(t, router, "p2").Code)

	get := httptest.NewRecorder()
	router.ServeHTTP(get, httptest.NewRequest(http.MethodGet, "/api/buyers/buyer-1/comparison", nil))

	var m comparison.Matrix
	require.NoError(t, json.NewDecoder(get.Body).Decode(&m))

	var origin comparison.Row
	for _, row := range m.Rows {
		if row.Key == comparison.FeatureOrigin {
			origin = row
		}
	}
	require.Len(t, origin.Values, 2)
	assert.Equal(t, "Wisconsin, USA", origin.Values[0])
	assert.Equal(t, comparison.AbsentValue, origin.Values[1])
}
