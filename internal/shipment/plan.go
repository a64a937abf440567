package shipment

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrLastDestination     = errors.New("cannot remove the last destination")
	ErrDestinationNotFound = errors.New("destination not found")
	ErrUnknownItem         = errors.New("item is not part of the order")
)

// LineItem is one orderable line from the underlying order.
type LineItem struct {
	ItemID   string `json:"itemId"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Unit     string `json:"unit"`
}

type ItemAllocation struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

// Destination is a shipping target receiving a subset of the order's items.
type Destination struct {
	ID       string           `json:"destinationId"`
	Location string           `json:"location"`
	Date     string           `json:"date"`
	TimeSlot string           `json:"timeSlot"`
	Items    []ItemAllocation `json:"items"`
}

// AllocationResult reports whether a requested allocation fits the order
// quantity. When OK is false, Max is the largest quantity that would fit at
// that destination without breaking the invariant.
type AllocationResult struct {
	OK  bool `json:"ok"`
	Max int  `json:"max"`
}

// Plan partitions an order's line items across one or more destinations.
// Invariant: for every item, the quantities allocated across all destinations
// never sum to more than the order's quantity for that item. A plan always has
// at least one destination.
type Plan struct {
	OrderID      string        `json:"orderId"`
	Items        []LineItem    `json:"items"`
	Destinations []Destination `json:"destinations"`
	CreatedAt    time.Time     `json:"createdAt"`
}

func NewPlan(orderID string, items []LineItem) *Plan {
	p := &Plan{
		OrderID:   orderID,
		Items:     items,
		CreatedAt: time.Now().UTC(),
	}
	p.AddDestination()
	return p
}

func (p *Plan) AddDestination() *Destination {
	p.Destinations = append(p.Destinations, Destination{ID: uuid.NewString()})
	return &p.Destinations[len(p.Destinations)-1]
}

// RemoveDestination drops a destination and frees its allocations. The last
// remaining destination cannot be removed; the plan is left unchanged.
func (p *Plan) RemoveDestination(destID string) error {
	if len(p.Destinations) == 1 {
		return ErrLastDestination
	}
	for i := range p.Destinations {
		if p.Destinations[i].ID == destID {
			p.Destinations = append(p.Destinations[:i], p.Destinations[i+1:]...)
			return nil
		}
	}
	return ErrDestinationNotFound
}

// UpdateDestination sets the shipping details of a destination.
func (p *Plan) UpdateDestination(destID, location, date, timeSlot string) error {
	d := p.destination(destID)
	if d == nil {
		return ErrDestinationNotFound
	}
	d.Location = location
	d.Date = date
	d.TimeSlot = timeSlot
	return nil
}

// Allocate sets (replacing any previous value) the quantity of itemID shipped
// to destID. It validates against the cross-destination invariant and reports
// the result explicitly rather than clamping; callers that want the original
// clamp-to-max input behavior can retry with res.Max.
func (p *Plan) Allocate(destID, itemID string, quantity int) (AllocationResult, error) {
	d := p.destination(destID)
	if d == nil {
		return AllocationResult{}, ErrDestinationNotFound
	}

	line := p.line(itemID)
	if line == nil {
		return AllocationResult{}, ErrUnknownItem
	}
	if quantity < 0 {
		quantity = 0
	}

	allocatedElsewhere := p.allocated(itemID) - allocationAt(d, itemID)
	max := line.Quantity - allocatedElsewhere
	if quantity > max {
		return AllocationResult{OK: false, Max: max}, nil
	}

	setAllocation(d, itemID, quantity)
	return AllocationResult{OK: true, Max: max}, nil
}

// RemainingQuantity is the order quantity for itemID minus everything already
// allocated across all destinations.
func (p *Plan) RemainingQuantity(itemID string) (int, error) {
	line := p.line(itemID)
	if line == nil {
		return 0, ErrUnknownItem
	}
	return line.Quantity - p.allocated(itemID), nil
}

// FullyAllocated reports whether every line item is completely distributed.
func (p *Plan) FullyAllocated() bool {
	for _, line := range p.Items {
		if p.allocated(line.ItemID) != line.Quantity {
			return false
		}
	}
	return true
}

func (p *Plan) destination(destID string) *Destination {
	for i := range p.Destinations {
		if p.Destinations[i].ID == destID {
			return &p.Destinations[i]
		}
	}
	return nil
}

func (p *Plan) line(itemID string) *LineItem {
	for i := range p.Items {
		if p.Items[i].ItemID == itemID {
			return &p.Items[i]
		}
	}
	return nil
}

func (p *Plan) allocated(itemID string) int {
	total := 0
	for i := range p.Destinations {
		total += allocationAt(&p.Destinations[i], itemID)
	}
	return total
}

func allocationAt(d *Destination, itemID string) int {
	for _, a := range d.Items {
		if a.ItemID == itemID {
			return a.Quantity
		}
	}
	return 0
}

func setAllocation(d *Destination, itemID string, quantity int) {
	for i := range d.Items {
		if d.Items[i].ItemID == itemID {
			if quantity == 0 {
				d.Items = append(d.Items[:i], d.Items[i+1:]...)
				return
			}
			d.Items[i].Quantity = quantity
			return
		}
	}
	if quantity > 0 {
		d.Items = append(d.Items, ItemAllocation{ItemID: itemID, Quantity: quantity})
	}
}
