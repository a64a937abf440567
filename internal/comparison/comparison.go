package comparison

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Zchasse63/vercelpickle/internal/catalog"
)

// MaxProducts bounds how many products can be compared side by side.
const MaxProducts = 4

var (
	ErrComparisonFull  = errors.New("comparison limit reached")
	ErrAlreadySelected = errors.New("product already in comparison")
)

// AbsentValue is rendered for a feature a product does not carry.
const AbsentValue = "—"

// FeatureKey names one row of the comparison matrix. Keys are typed
// accessors into known product fields, so a typo fails loudly instead of
// silently rendering everything as absent.
type FeatureKey string

const (
	FeaturePrice          FeatureKey = "price"
	FeatureUnit           FeatureKey = "unit"
	FeatureOrigin         FeatureKey = "origin"
	FeatureCertifications FeatureKey = "certifications"
	FeaturePackaging      FeatureKey = "packaging"
	FeatureCasePack       FeatureKey = "casePack"
	FeatureShelfLife      FeatureKey = "shelfLife"
	FeatureStorage        FeatureKey = "storage"
	FeatureSeller         FeatureKey = "seller"
)

// FeatureKeys is the row order of the rendered matrix.
var FeatureKeys = []FeatureKey{
	FeaturePrice,
	FeatureUnit,
	FeatureOrigin,
	FeatureCertifications,
	FeaturePackaging,
	FeatureCasePack,
	FeatureShelfLife,
	FeatureStorage,
	FeatureSeller,
}

var featureLabels = map[FeatureKey]string{
	FeaturePrice:          "Price",
	FeatureUnit:           "Unit",
	FeatureOrigin:         "Origin",
	FeatureCertifications: "Certifications",
	FeaturePackaging:      "Packaging",
	FeatureCasePack:       "Case Pack",
	FeatureShelfLife:      "Shelf Life",
	FeatureStorage:        "Storage",
	FeatureSeller:         "Seller",
}

// Feature reads one comparable value off a product. The second return is
// false when the product does not carry the feature.
func Feature(p catalog.Product, key FeatureKey) (string, bool) {
	switch key {
	case FeaturePrice:
		return fmt.Sprintf("$%.2f", p.Price), true
	case FeatureUnit:
		return nonEmpty(p.Unit)
	case FeatureOrigin:
		return nonEmpty(p.Origin)
	case FeatureCertifications:
		if len(p.Certifications) == 0 {
			return "", false
		}
		return strings.Join(p.Certifications, ", "), true
	case FeaturePackaging:
		return nonEmpty(p.Specifications.Packaging)
	case FeatureCasePack:
		return nonEmpty(p.Specifications.CasePack)
	case FeatureShelfLife:
		return nonEmpty(p.Specifications.ShelfLife)
	case FeatureStorage:
		return nonEmpty(p.Specifications.Storage)
	case FeatureSeller:
		return nonEmpty(p.SellerName)
	default:
		return "", false
	}
}

func nonEmpty(v string) (string, bool) {
	if v == "" {
		return "", false
	}
	return v, true
}

// Set is the bounded selection of products under comparison. The zero value
// is ready to use.
type Set struct {
	ids []string
}

func (s *Set) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

func (s *Set) Len() int { return len(s.ids) }

// Add selects a product for comparison. Past MaxProducts the selection is
// left unchanged and ErrComparisonFull is returned.
func (s *Set) Add(productID string) error {
	for _, id := range s.ids {
		if id == productID {
			return ErrAlreadySelected
		}
	}
	if len(s.ids) >= MaxProducts {
		return ErrComparisonFull
	}
	s.ids = append(s.ids, productID)
	return nil
}

// Remove drops a product from the selection. Removing an unselected product
// is a no-op.
func (s *Set) Remove(productID string) {
	for i, id := range s.ids {
		if id == productID {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return
		}
	}
}

// Row is one feature across every compared product, in selection order.
type Row struct {
	Key    FeatureKey `json:"key"`
	Label  string     `json:"label"`
	Values []string   `json:"values"`
}

// Matrix is the rendered side-by-side comparison.
type Matrix struct {
	Products []catalog.Product `json:"products"`
	Rows     []Row             `json:"rows"`
}

// BuildMatrix renders the feature matrix for the given products. Missing
// features render as AbsentValue.
func BuildMatrix(products []catalog.Product) Matrix {
	m := Matrix{Products: products}
	for _, key := range FeatureKeys {
		row := Row{Key: key, Label: featureLabels[key]}
		for _, p := range products {
			v, ok := Feature(p, key)
			if !ok {
				v = AbsentValue
			}
			row.Values = append(row.Values, v)
		}
		m.Rows = append(m.Rows, row)
	}
	return m
}
