package negotiation

import "time"

type Sender string

const (
	SenderBuyer  Sender = "buyer"
	SenderSeller Sender = "seller"
)

type OfferStatus string

const (
	OfferPending  OfferStatus = "pending"
	OfferAccepted OfferStatus = "accepted"
	OfferRejected OfferStatus = "rejected"
)

// Offer is a proposed price/quantity/delivery tuple exchanged during negotiation.
type Offer struct {
	Price        float64    `json:"price"`
	Quantity     int        `json:"quantity"`
	DeliveryDate *time.Time `json:"deliveryDate,omitempty"`
}

// Message is one entry in a negotiation thread. Messages are append-only: a
// status is assigned when the message is appended and never changes afterwards.
// Accepting or rejecting an offer appends a new message instead of mutating
// the original.
type Message struct {
	ID     string      `json:"messageId"`
	Sender Sender      `json:"sender"`
	Text   string      `json:"message"`
	SentAt time.Time   `json:"timestamp"`
	Offer  *Offer      `json:"offer,omitempty"`
	Status OfferStatus `json:"status,omitempty"`
}

// Outcome is handed to the completion callback once an offer is accepted.
type Outcome struct {
	NegotiationID string     `json:"negotiationId"`
	ProductID     string     `json:"productId"`
	ProductName   string     `json:"productName"`
	Unit          string     `json:"unit"`
	BuyerID       string     `json:"buyerId"`
	SellerID      string     `json:"sellerId"`
	FinalPrice    float64    `json:"finalPrice"`
	Quantity      int        `json:"quantity"`
	DeliveryDate  *time.Time `json:"deliveryDate,omitempty"`
	Messages      []Message  `json:"messages"`
}
