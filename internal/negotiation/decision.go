package negotiation

// DecisionKind identifies the seller's response to a buyer offer.
type DecisionKind string

const (
	DecisionAccept  DecisionKind = "accept"
	DecisionCounter DecisionKind = "counter"
	DecisionReject  DecisionKind = "reject"
)

// Decision is the seller policy's verdict on an offer. Price is the counter
// price when Kind is DecisionCounter; Floor is the lowest price the seller
// will quote when Kind is DecisionReject.
type Decision struct {
	Kind  DecisionKind
	Price float64
	Floor float64
}

// Seller policy thresholds, relative to the list price.
const (
	acceptRatio     = 0.90
	counterRatio    = 0.80
	counterDiscount = 0.05
	floorRatio      = 0.90
	acceptMinQty    = 10
)

// Decide applies the seller's fixed pricing policy to a buyer offer:
//   - at least 90% of list and 10+ units: accept as offered
//   - at least 80% of list: counter at 5% below list
//   - below 80% of list: reject, quoting a floor of 90% of list
//
// The policy is deterministic and timer-free; scheduling of the simulated
// seller reply is a separate concern (see Scheduler).
func Decide(offer Offer, listPrice float64) Decision {
	ratio := offer.Price / listPrice

	switch {
	case ratio >= acceptRatio && offer.Quantity >= acceptMinQty:
		return Decision{Kind: DecisionAccept, Price: offer.Price}
	case ratio >= counterRatio:
		return Decision{Kind: DecisionCounter, Price: listPrice * (1 - counterDiscount)}
	default:
		return Decision{Kind: DecisionReject, Floor: listPrice * floorRatio}
	}
}
