package negotiation

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSessionCompleted = errors.New("negotiation already completed")
	ErrReplyPending     = errors.New("seller reply pending")
	ErrOfferNotPending  = errors.New("offer is not pending")
)

// Session is the thread of one negotiation between a buyer and a seller over a
// single product. It is a plain state machine: all operations are synchronous
// and deterministic. Delaying the seller's side to simulate a round-trip is
// the Service's job.
type Session struct {
	ID          string    `json:"negotiationId"`
	ProductID   string    `json:"productId"`
	ProductName string    `json:"productName"`
	BuyerID     string    `json:"buyerId"`
	SellerID    string    `json:"sellerId"`
	SellerName  string    `json:"sellerName"`
	ListPrice   float64   `json:"listPrice"`
	Unit        string    `json:"unit"`
	Messages    []Message `json:"messages"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`

	// id of the buyer offer awaiting a seller decision, or of the seller
	// counter awaiting the buyer's response. Empty when nothing is pending.
	pendingOfferID string
	pendingSender  Sender

	buyerNotes int
}

func NewSession(productID, productName, buyerID, sellerID, sellerName string, listPrice float64, unit string) *Session {
	return &Session{
		ID:          uuid.NewString(),
		ProductID:   productID,
		ProductName: productName,
		BuyerID:     buyerID,
		SellerID:    sellerID,
		SellerName:  sellerName,
		ListPrice:   listPrice,
		Unit:        unit,
		CreatedAt:   time.Now().UTC(),
	}
}

func (s *Session) append(m Message) Message {
	m.ID = uuid.NewString()
	m.SentAt = time.Now().UTC()
	s.Messages = append(s.Messages, m)
	return m
}

// AppendBuyerMessage adds a plain-text buyer message to the thread.
func (s *Session) AppendBuyerMessage(text string) (Message, error) {
	if s.Completed {
		return Message{}, ErrSessionCompleted
	}
	s.buyerNotes++
	return s.append(Message{Sender: SenderBuyer, Text: text}), nil
}

var cannedReplies = []string{
	"Thanks for reaching out. Happy to discuss terms on this product.",
	"We have good availability right now, so there is room to talk.",
	"Let me know the volume you have in mind and we can firm up pricing.",
	"Understood. Send over an offer and I will take a look.",
}

// SellerReply returns the canned seller response to the buyer's latest plain
// message. The reply is deterministic given the message count.
func (s *Session) SellerReply() (Message, error) {
	if s.Completed {
		return Message{}, ErrSessionCompleted
	}
	text := cannedReplies[(s.buyerNotes-1+len(cannedReplies))%len(cannedReplies)]
	return s.append(Message{Sender: SenderSeller, Text: text}), nil
}

// AppendBuyerOffer adds a pending buyer offer to the thread. Only one offer
// may be awaiting a response at a time.
func (s *Session) AppendBuyerOffer(offer Offer) (Message, error) {
	if s.Completed {
		return Message{}, ErrSessionCompleted
	}
	if s.pendingOfferID != "" {
		return Message{}, ErrReplyPending
	}

	m := s.append(Message{
		Sender: SenderBuyer,
		Text:   fmt.Sprintf("Offer: $%.2f per %s for %d units", offer.Price, s.Unit, offer.Quantity),
		Offer:  &Offer{Price: offer.Price, Quantity: offer.Quantity, DeliveryDate: offer.DeliveryDate},
		Status: OfferPending,
	})
	s.pendingOfferID = m.ID
	s.pendingSender = SenderBuyer
	return m, nil
}

// ApplySellerDecision appends the seller's response to the pending buyer
// offer. On accept the session completes and the Outcome is returned.
func (s *Session) ApplySellerDecision(d Decision) (Message, *Outcome, error) {
	if s.Completed {
		return Message{}, nil, ErrSessionCompleted
	}
	if s.pendingOfferID == "" || s.pendingSender != SenderBuyer {
		return Message{}, nil, ErrOfferNotPending
	}

	buyerOffer := s.offerByID(s.pendingOfferID)
	s.pendingOfferID = ""

	switch d.Kind {
	case DecisionAccept:
		m := s.append(Message{
			Sender: SenderSeller,
			Text:   fmt.Sprintf("Deal. $%.2f per %s for %d units works for us.", buyerOffer.Price, s.Unit, buyerOffer.Quantity),
			Offer:  buyerOffer,
			Status: OfferAccepted,
		})
		return m, s.complete(*buyerOffer), nil

	case DecisionCounter:
		m := s.append(Message{
			Sender: SenderSeller,
			Text:   fmt.Sprintf("Close, but the best I can do is $%.2f per %s.", d.Price, s.Unit),
			Offer:  &Offer{Price: d.Price, Quantity: buyerOffer.Quantity, DeliveryDate: buyerOffer.DeliveryDate},
			Status: OfferPending,
		})
		s.pendingOfferID = m.ID
		s.pendingSender = SenderSeller
		return m, nil, nil

	default:
		m := s.append(Message{
			Sender: SenderSeller,
			Text:   fmt.Sprintf("That is below what we can accept. Our floor is $%.2f per %s.", d.Floor, s.Unit),
			Status: OfferRejected,
		})
		return m, nil, nil
	}
}

// AcceptOffer records the buyer accepting the seller's pending counter-offer
// and completes the session.
func (s *Session) AcceptOffer(offerID string) (Message, *Outcome, error) {
	if s.Completed {
		return Message{}, nil, ErrSessionCompleted
	}
	if offerID == "" || offerID != s.pendingOfferID || s.pendingSender != SenderSeller {
		return Message{}, nil, ErrOfferNotPending
	}

	counter := s.offerByID(offerID)
	s.pendingOfferID = ""

	m := s.append(Message{
		Sender: SenderBuyer,
		Text:   fmt.Sprintf("Accepted: $%.2f per %s for %d units.", counter.Price, s.Unit, counter.Quantity),
		Offer:  counter,
		Status: OfferAccepted,
	})
	return m, s.complete(*counter), nil
}

// RejectOffer records the buyer declining the seller's pending counter-offer.
// The session stays open for further offers.
func (s *Session) RejectOffer(offerID string) (Message, error) {
	if s.Completed {
		return Message{}, ErrSessionCompleted
	}
	if offerID == "" || offerID != s.pendingOfferID || s.pendingSender != SenderSeller {
		return Message{}, ErrOfferNotPending
	}

	s.pendingOfferID = ""
	return s.append(Message{
		Sender: SenderBuyer,
		Text:   "That does not work for us, thanks anyway.",
		Status: OfferRejected,
	}), nil
}

func (s *Session) complete(final Offer) *Outcome {
	s.Completed = true
	messages := make([]Message, len(s.Messages))
	copy(messages, s.Messages)
	return &Outcome{
		NegotiationID: s.ID,
		ProductID:     s.ProductID,
		ProductName:   s.ProductName,
		Unit:          s.Unit,
		BuyerID:       s.BuyerID,
		SellerID:      s.SellerID,
		FinalPrice:    final.Price,
		Quantity:      final.Quantity,
		DeliveryDate:  final.DeliveryDate,
		Messages:      messages,
	}
}

func (s *Session) offerByID(id string) *Offer {
	for i := range s.Messages {
		if s.Messages[i].ID == id && s.Messages[i].Offer != nil {
			o := *s.Messages[i].Offer
			return &o
		}
	}
	return nil
}
