// Package quantity holds the per-product quantity counters a visitor adjusts
// before adding a product to the cart.
package quantity

import (
	"sync"

	"github.com/sellora/saree-storefront/internal/storefront/domain"
)

// Store maps product IDs to a positive quantity, floored at 1. All
// operations are total: unknown IDs read as 1 and writes below the floor are
// clamped.
type Store struct {
	mu  sync.RWMutex
	qty map[string]int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{qty: make(map[string]int)}
}

// Seed replaces the whole map with one entry per product, each set to 1.
// It runs on every product-sequence replacement, so a background refetch
// discards in-progress visitor edits. That mirrors the reference behaviour
// and is kept deliberately.
func (s *Store) Seed(products []domain.Product) {
	fresh := make(map[string]int, len(products))
	for _, p := range products {
		fresh[p.ID] = 1
	}

	s.mu.Lock()
	s.qty = fresh
	s.mu.Unlock()
}

// Set stores max(1, v) for the given ID. Unknown IDs are simply inserted.
func (s *Store) Set(id string, v int) {
	if v < 1 {
		v = 1
	}
	s.mu.Lock()
	s.qty[id] = v
	s.mu.Unlock()
}

// Get returns the stored quantity, or 1 when the ID has no entry.
func (s *Store) Get(id string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.qty[id]; ok {
		return v
	}
	return 1
}

// Len reports how many products currently have counters.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.qty)
}
