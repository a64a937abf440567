package negotiation

import (
	"math"
	"testing"
)

func TestDecide(t *testing.T) {
	const list = 12.99

	tests := map[string]struct {
		offer     Offer
		wantKind  DecisionKind
		wantPrice float64
		wantFloor float64
	}{
		"list price and volume accepted": {
			offer:     Offer{Price: 12.99, Quantity: 15},
			wantKind:  DecisionAccept,
			wantPrice: 12.99,
		},
		"exactly 90 percent and 10 units accepted": {
			offer:     Offer{Price: list * 0.9, Quantity: 10},
			wantKind:  DecisionAccept,
			wantPrice: list * 0.9,
		},
		"good price but low volume countered": {
			offer:     Offer{Price: list * 0.95, Quantity: 3},
			wantKind:  DecisionCounter,
			wantPrice: list * 0.95,
		},
		"85 percent countered at 95 percent of list": {
			offer:     Offer{Price: list * 0.85, Quantity: 5},
			wantKind:  DecisionCounter,
			wantPrice: list * 0.95,
		},
		"exactly 80 percent countered": {
			offer:     Offer{Price: list * 0.8, Quantity: 50},
			wantKind:  DecisionCounter,
			wantPrice: list * 0.95,
		},
		"lowball rejected with floor at 90 percent": {
			offer:     Offer{Price: list * 0.5, Quantity: 100},
			wantKind:  DecisionReject,
			wantFloor: list * 0.9,
		},
		"just under 80 percent rejected": {
			offer:     Offer{Price: list*0.8 - 0.01, Quantity: 10},
			wantKind:  DecisionReject,
			wantFloor: list * 0.9,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			d := Decide(tt.offer, list)
			if d.Kind != tt.wantKind {
				t.Fatalf("kind = %s, want %s", d.Kind, tt.wantKind)
			}
			if tt.wantPrice != 0 && !closeTo(d.Price, tt.wantPrice) {
				t.Fatalf("price = %f, want %f", d.Price, tt.wantPrice)
			}
			if tt.wantFloor != 0 && !closeTo(d.Floor, tt.wantFloor) {
				t.Fatalf("floor = %f, want %f", d.Floor, tt.wantFloor)
			}
		})
	}
}

// Any offer at or above 90% of list with 10+ units is accepted, and any offer
// below 80% of list is rejected quoting a floor of 90% of list, across a sweep
// of prices and quantities.
func TestDecidePolicyBounds(t *testing.T) {
	const list = 40.0

	for qty := 10; qty <= 200; qty += 19 {
		for ratio := 0.90; ratio <= 1.2; ratio += 0.03 {
			d := Decide(Offer{Price: list * ratio, Quantity: qty}, list)
			if d.Kind != DecisionAccept {
				t.Fatalf("ratio %.2f qty %d: kind = %s, want accept", ratio, qty, d.Kind)
			}
		}
	}

	for qty := 1; qty <= 200; qty += 13 {
		for ratio := 0.1; ratio < 0.80; ratio += 0.07 {
			d := Decide(Offer{Price: list * ratio, Quantity: qty}, list)
			if d.Kind != DecisionReject {
				t.Fatalf("ratio %.2f qty %d: kind = %s, want reject", ratio, qty, d.Kind)
			}
			if !closeTo(d.Floor, list*0.9) {
				t.Fatalf("ratio %.2f qty %d: floor = %f, want %f", ratio, qty, d.Floor, list*0.9)
			}
		}
	}
}

func closeTo(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
