package events

import "time"

const (
	NegotiationCompletedName    = "NegotiationCompleted"
	NegotiationCompletedVersion = 1
	NegotiationCompletedSchema  = "marketplace.negotiation.completed.v1"
)

// NegotiationCompleted is emitted when a buyer and seller settle on terms.
type NegotiationCompleted struct {
	NegotiationID string     `json:"negotiationId"`
	ProductID     string     `json:"productId"`
	BuyerID       string     `json:"buyerId"`
	SellerID      string     `json:"sellerId"`
	OrderID       string     `json:"orderId"`
	FinalPrice    float64    `json:"finalPrice"`
	Quantity      int        `json:"quantity"`
	DeliveryDate  *time.Time `json:"deliveryDate,omitempty"`
}
