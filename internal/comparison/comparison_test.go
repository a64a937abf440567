package comparison

import (
	"errors"
	"reflect"
	"testing"

	"github.com/Zchasse63/vercelpickle/internal/catalog"
)

func TestSetLimit(t *testing.T) {
	var s Set

	for i, id := range []string{"p1", "p2", "p3", "p4"} {
		if err := s.Add(id); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}

	before := s.IDs()
	if err := s.Add("p5"); !errors.Is(err, ErrComparisonFull) {
		t.Fatalf("expected ErrComparisonFull, got %v", err)
	}
	if !reflect.DeepEqual(s.IDs(), before) {
		t.Fatalf("selection changed on rejected add: %v", s.IDs())
	}
}

func TestSetAddDuplicate(t *testing.T) {
	var s Set
	if err := s.Add("p1"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Add("p1"); !errors.Is(err, ErrAlreadySelected) {
		t.Fatalf("expected ErrAlreadySelected, got %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("len = %d, want 1", s.Len())
	}
}

func TestSetRemove(t *testing.T) {
	var s Set
	s.Add("p1")
	s.Add("p2")

	s.Remove("p1")
	if !reflect.DeepEqual(s.IDs(), []string{"p2"}) {
		t.Fatalf("ids = %v, want [p2]", s.IDs())
	}

	// Removing something not selected is a no-op.
	s.Remove("p9")
	if s.Len() != 1 {
		t.Fatalf("len = %d, want 1", s.Len())
	}

	// Removal frees a slot at the limit.
	s.Add("p3")
	s.Add("p4")
	s.Add("p5")
	if err := s.Add("p6"); !errors.Is(err, ErrComparisonFull) {
		t.Fatalf("expected ErrComparisonFull, got %v", err)
	}
	s.Remove("p3")
	if err := s.Add("p6"); err != nil {
		t.Fatalf("add after remove: %v", err)
	}
}

func TestFeature(t *testing.T) {
	full := catalog.Product{
		ID:             "p1",
		Name:           "Garlic Dill Spears",
		Price:          12.99,
		Unit:           "case",
		Origin:         "Wisconsin, USA",
		Certifications: []string{"USDA Organic", "Non-GMO"},
		Specifications: catalog.Specifications{
			Packaging: "32 oz glass jar",
			CasePack:  "12 jars",
			ShelfLife: "18 months",
			Storage:   "Ambient",
		},
		SellerName: "Brine Bros Wholesale",
	}
	bare := catalog.Product{ID: "p2", Name: "House Relish", Price: 4.50}

	tests := map[string]struct {
		product catalog.Product
		key     FeatureKey
		want    string
		wantOK  bool
	}{
		"price formats as currency":   {full, FeaturePrice, "$12.99", true},
		"certifications joined":       {full, FeatureCertifications, "USDA Organic, Non-GMO", true},
		"packaging":                   {full, FeaturePackaging, "32 oz glass jar", true},
		"missing origin absent":       {bare, FeatureOrigin, "", false},
		"missing certs absent":        {bare, FeatureCertifications, "", false},
		"missing storage absent":      {bare, FeatureStorage, "", false},
		"price present on bare":       {bare, FeaturePrice, "$4.50", true},
		"unknown key reported absent": {full, FeatureKey("specifications.bogus"), "", false},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			got, ok := Feature(tt.product, tt.key)
			if got != tt.want || ok != tt.wantOK {
				t.Fatalf("Feature(%s) = (%q, %v), want (%q, %v)", tt.key, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestBuildMatrix(t *testing.T) {
	products := []catalog.Product{
		{ID: "p1", Name: "Spears", Price: 12.99, Origin: "Wisconsin, USA"},
		{ID: "p2", Name: "Chips", Price: 9.49},
	}

	m := BuildMatrix(products)

	if len(m.Rows) != len(FeatureKeys) {
		t.Fatalf("expected %d rows, got %d", len(FeatureKeys), len(m.Rows))
	}
	for _, row := range m.Rows {
		if len(row.Values) != 2 {
			t.Fatalf("row %s has %d values, want 2", row.Key, len(row.Values))
		}
		if row.Label == "" {
			t.Fatalf("row %s has no label", row.Key)
		}
	}

	var origin Row
	for _, row := range m.Rows {
		if row.Key == FeatureOrigin {
			origin = row
		}
	}
	if origin.Values[0] != "Wisconsin, USA" || origin.Values[1] != AbsentValue {
		t.Fatalf("origin row = %v", origin.Values)
	}
}
