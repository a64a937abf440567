package catalog

// Specifications holds the structured product attributes surfaced in listings
// and the comparison matrix. Empty fields mean the seller did not provide them.
type Specifications struct {
	Packaging string `json:"packaging,omitempty"`
	CasePack  string `json:"casePack,omitempty"`
	ShelfLife string `json:"shelfLife,omitempty"`
	Storage   string `json:"storage,omitempty"`
}

type Product struct {
	ID             string         `json:"productId"`
	Name           string         `json:"name"`
	Price          float64        `json:"price"`
	Unit           string         `json:"unit"`
	Origin         string         `json:"origin,omitempty"`
	Certifications []string       `json:"certifications,omitempty"`
	Specifications Specifications `json:"specifications"`
	SellerID       string         `json:"sellerId"`
	SellerName     string         `json:"sellerName"`
}
