package ports

import (
	"context"
	"errors"

	"github.com/SouravDn-p/mobile-canvas-api/internal/cart/domain"
)

// ErrCacheMiss reports an absent cache entry. Callers fall back to the store.
var ErrCacheMiss = errors.New("cache miss")

// UserItemsStore persists the per-user cart and wishlist document.
type UserItemsStore interface {
	// Get returns the user's document. An unknown user yields an empty
	// record, not an error, so first-time adds need no separate create.
	Get(ctx context.Context, userID string) (*domain.UserItems, error)
	Save(ctx context.Context, record domain.UserItems) error
}

// CartCache is a read-through cache in front of the store.
type CartCache interface {
	Get(ctx context.Context, userID string) (*domain.UserItems, error)
	Set(ctx context.Context, userID string, record domain.UserItems) error
	Delete(ctx context.Context, userID string) error
}
