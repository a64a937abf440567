package shipment

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Zchasse63/vercelpickle/internal/order"
)

var (
	ErrPlanNotFound   = errors.New("shipment plan not found")
	ErrPlanIncomplete = errors.New("plan is not fully allocated")
)

// Completer receives a finished shipment plan, once, when the user confirms it.
type Completer interface {
	ShipmentPlanned(ctx context.Context, plan Plan) error
}

// Service keeps one in-progress plan per order, in memory. Plans are working
// state for the split-shipment flow and are not persisted; completing a plan
// hands it to the Completer and advances the order.
type Service struct {
	orders    order.Repository
	completer Completer

	mu    sync.Mutex
	plans map[string]*Plan
}

func NewService(orders order.Repository, completer Completer) *Service {
	return &Service{
		orders:    orders,
		completer: completer,
		plans:     make(map[string]*Plan),
	}
}

// CreatePlan starts (or resumes) the split-shipment plan for an order, seeding
// line items from the order itself.
func (s *Service) CreatePlan(ctx context.Context, orderID string) (Plan, error) {
	s.mu.Lock()
	if p, ok := s.plans[orderID]; ok {
		defer s.mu.Unlock()
		return clone(p), nil
	}
	s.mu.Unlock()

	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return Plan{}, fmt.Errorf("load order: %w", err)
	}

	items := make([]LineItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, LineItem{
			ItemID:   it.ItemID,
			Name:     it.Name,
			Quantity: it.Quantity,
			Unit:     it.Unit,
		})
	}

	p := NewPlan(orderID, items)

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.plans[orderID]; ok {
		return clone(existing), nil
	}
	s.plans[orderID] = p
	return clone(p), nil
}

func (s *Service) Get(orderID string) (Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.plans[orderID]
	if !ok {
		return Plan{}, ErrPlanNotFound
	}
	return clone(p), nil
}

func (s *Service) AddDestination(orderID string) (Destination, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.plans[orderID]
	if !ok {
		return Destination{}, ErrPlanNotFound
	}
	return *p.AddDestination(), nil
}

func (s *Service) RemoveDestination(orderID, destID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.plans[orderID]
	if !ok {
		return ErrPlanNotFound
	}
	return p.RemoveDestination(destID)
}

func (s *Service) UpdateDestination(orderID, destID, location, date, timeSlot string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.plans[orderID]
	if !ok {
		return ErrPlanNotFound
	}
	return p.UpdateDestination(destID, location, date, timeSlot)
}

func (s *Service) Allocate(orderID, destID, itemID string, quantity int) (AllocationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.plans[orderID]
	if !ok {
		return AllocationResult{}, ErrPlanNotFound
	}
	return p.Allocate(destID, itemID, quantity)
}

func (s *Service) RemainingQuantity(orderID, itemID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.plans[orderID]
	if !ok {
		return 0, ErrPlanNotFound
	}
	return p.RemainingQuantity(itemID)
}

// Complete confirms a fully allocated plan: the completion hook runs, the
// order advances to shipment_planned, and the working plan is dropped.
func (s *Service) Complete(ctx context.Context, orderID string) (Plan, error) {
	s.mu.Lock()
	p, ok := s.plans[orderID]
	if !ok {
		s.mu.Unlock()
		return Plan{}, ErrPlanNotFound
	}
	if !p.FullyAllocated() {
		s.mu.Unlock()
		return Plan{}, ErrPlanIncomplete
	}
	final := clone(p)
	delete(s.plans, orderID)
	s.mu.Unlock()

	if s.completer != nil {
		if err := s.completer.ShipmentPlanned(ctx, final); err != nil {
			return Plan{}, fmt.Errorf("shipment planned hook: %w", err)
		}
	}

	if err := s.orders.UpdateStatus(ctx, orderID, order.StatusShipmentPlanned); err != nil {
		return Plan{}, fmt.Errorf("advance order: %w", err)
	}

	return final, nil
}

func clone(p *Plan) Plan {
	cp := *p
	cp.Items = make([]LineItem, len(p.Items))
	copy(cp.Items, p.Items)
	cp.Destinations = make([]Destination, len(p.Destinations))
	for i, d := range p.Destinations {
		items := make([]ItemAllocation, len(d.Items))
		copy(items, d.Items)
		d.Items = items
		cp.Destinations[i] = d
	}
	return cp
}
