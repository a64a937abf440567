package order

import "time"

type Item struct {
	ItemID   string  `json:"itemId"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Unit     string  `json:"unit"`
	Price    float64 `json:"price"`
}

type Order struct {
	ID            string    `json:"orderId"`
	BuyerID       string    `json:"buyerId"`
	SellerID      string    `json:"sellerId"`
	NegotiationID string    `json:"negotiationId,omitempty"`
	Items         []Item    `json:"items"`
	TotalAmount   float64   `json:"totalAmount"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}
