package comparison

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Zchasse63/vercelpickle/internal/catalog"
)

// Service keeps one comparison selection per buyer, in memory, and renders
// matrices from catalog data.
type Service struct {
	products catalog.Repository

	mu   sync.Mutex
	sets map[string]*Set
}

func NewService(products catalog.Repository) *Service {
	return &Service{
		products: products,
		sets:     make(map[string]*Set),
	}
}

func (s *Service) set(buyerID string) *Set {
	if set, ok := s.sets[buyerID]; ok {
		return set
	}
	set := &Set{}
	s.sets[buyerID] = set
	return set
}

// Add selects a product for the buyer's comparison, verifying it exists.
func (s *Service) Add(ctx context.Context, buyerID, productID string) error {
	if _, err := s.products.Get(ctx, productID); err != nil {
		return fmt.Errorf("look up product: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set(buyerID).Add(productID)
}

func (s *Service) Remove(buyerID, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(buyerID).Remove(productID)
}

// Matrix renders the buyer's current comparison. Products that have left the
// catalog since selection are skipped.
func (s *Service) Matrix(ctx context.Context, buyerID string) (Matrix, error) {
	s.mu.Lock()
	ids := s.set(buyerID).IDs()
	s.mu.Unlock()

	products := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		p, err := s.products.Get(ctx, id)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				continue
			}
			return Matrix{}, fmt.Errorf("load product %s: %w", id, err)
		}
		products = append(products, p)
	}

	return BuildMatrix(products), nil
}
