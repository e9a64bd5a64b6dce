package session

import (
	"sort"
	"sync"

	"github.com/kounITV/misouk-express-wapp-sub000/internal/domain"
)

// Store is the in-memory order collection of one dashboard session. It is the
// only mutable shared state in the core, and only the coordinator writes to it
// once a plan is in flight.
type Store struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{orders: make(map[string]*domain.Order)}
}

// Get returns a copy of the order with the given id.
func (s *Store) Get(id string) (*domain.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, false
	}
	return o.Clone(), true
}

// GetByTracking returns a copy of the order with the given tracking code.
func (s *Store) GetByTracking(code string) (*domain.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.TrackingCode == code {
			return o.Clone(), true
		}
	}
	return nil, false
}

// Put inserts or replaces an order.
func (s *Store) Put(order *domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[order.ID] = order.Clone()
}

// Remove deletes the order with the given id, if present.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.orders, id)
}

// Replace atomically removes oldID and inserts order under its own id. Used
// when a staged order is committed and picks up its backend-assigned id.
func (s *Store) Replace(oldID string, order *domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.orders, oldID)
	s.orders[order.ID] = order.Clone()
}

// List returns copies of every order, sorted by creation time then id so the
// dashboard table is stable across refreshes.
func (s *Store) List() []*domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Reset drops every order in the session.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = make(map[string]*domain.Order)
}

// Len returns the number of orders in the session.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}
