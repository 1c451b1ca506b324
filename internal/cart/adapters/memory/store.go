package memory

import (
	"context"
	"sync"

	"github.com/SouravDn-p/mobile-canvas-api/internal/cart/domain"
)

// Store keeps user documents in memory, for local development and tests.
type Store struct {
	mu      sync.RWMutex
	records map[string]domain.UserItems
}

// NewStore constructs an empty in-memory store.
func NewStore() *Store {
	return &Store{records: make(map[string]domain.UserItems)}
}

// Get returns the user's document, or an empty record for an unknown user.
func (s *Store) Get(_ context.Context, userID string) (*domain.UserItems, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[userID]
	if !ok {
		return &domain.UserItems{UserID: userID}, nil
	}

	clone := cloneRecord(record)
	return &clone, nil
}

// Save stores or overwrites the user's document.
func (s *Store) Save(_ context.Context, record domain.UserItems) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.UserID] = cloneRecord(record)
	return nil
}

func cloneRecord(record domain.UserItems) domain.UserItems {
	clone := record
	clone.Cart = make([]domain.ItemLine, len(record.Cart))
	copy(clone.Cart, record.Cart)
	clone.Wishlist = make([]domain.ItemLine, len(record.Wishlist))
	copy(clone.Wishlist, record.Wishlist)
	return clone
}
