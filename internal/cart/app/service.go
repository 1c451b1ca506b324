package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SouravDn-p/mobile-canvas-api/internal/cart/domain"
	"github.com/SouravDn-p/mobile-canvas-api/internal/cart/ports"
)

// Service exposes cart and wishlist use cases. Reads go through the cache;
// writes update the store first and then refresh the cache best-effort.
type Service struct {
	store  ports.UserItemsStore
	cache  ports.CartCache
	logger *slog.Logger
}

// NewService wires required dependencies. The cache may be nil, in which case
// every read hits the store.
func NewService(store ports.UserItemsStore, cache ports.CartCache, logger *slog.Logger) *Service {
	return &Service{store: store, cache: cache, logger: logger}
}

// GetCart returns the user's current cart lines.
func (s *Service) GetCart(ctx context.Context, userID string) ([]domain.ItemLine, error) {
	record, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return record.Cart, nil
}

// GetWishlist returns the user's current wishlist.
func (s *Service) GetWishlist(ctx context.Context, userID string) ([]domain.ItemLine, error) {
	record, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return record.Wishlist, nil
}

// AddToCart adds qty units of a product, incrementing an existing line.
func (s *Service) AddToCart(ctx context.Context, userID, productID string, snap domain.Snapshot, qty int) ([]domain.ItemLine, error) {
	return s.mutateCart(ctx, userID, func(cart []domain.ItemLine) ([]domain.ItemLine, error) {
		return domain.AddToCart(cart, productID, snap, qty)
	})
}

// UpdateCartQuantity overwrites a line's quantity; zero or less removes it.
func (s *Service) UpdateCartQuantity(ctx context.Context, userID, productID string, qty int) ([]domain.ItemLine, error) {
	return s.mutateCart(ctx, userID, func(cart []domain.ItemLine) ([]domain.ItemLine, error) {
		return domain.UpdateCartQuantity(cart, productID, qty)
	})
}

// RemoveFromCart drops a line. Removing an absent line succeeds.
func (s *Service) RemoveFromCart(ctx context.Context, userID, productID string) ([]domain.ItemLine, error) {
	return s.mutateCart(ctx, userID, func(cart []domain.ItemLine) ([]domain.ItemLine, error) {
		return domain.RemoveFromCart(cart, productID), nil
	})
}

// MergeCart reconciles pending local lines into the stored cart.
func (s *Service) MergeCart(ctx context.Context, userID string, local []domain.ItemLine) ([]domain.ItemLine, error) {
	return s.mutateCart(ctx, userID, func(cart []domain.ItemLine) ([]domain.ItemLine, error) {
		return domain.MergeCart(cart, local), nil
	})
}

// ClearCart empties the cart, typically after a successful checkout. The
// wishlist is untouched.
func (s *Service) ClearCart(ctx context.Context, userID string) error {
	_, err := s.mutateCart(ctx, userID, func([]domain.ItemLine) ([]domain.ItemLine, error) {
		return []domain.ItemLine{}, nil
	})
	return err
}

// ToggleWishlist flips a product's wishlist membership. The returned bool
// reports whether the item ended up in the list.
func (s *Service) ToggleWishlist(ctx context.Context, userID, productID string, snap domain.Snapshot) ([]domain.ItemLine, bool, error) {
	if userID == "" {
		return nil, false, &domain.ValidationError{Field: "userId", Reason: "is required"}
	}

	record, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	list, added, err := domain.ToggleWishlist(record.Wishlist, productID, snap)
	if err != nil {
		return nil, false, err
	}

	record.Wishlist = list
	if err := s.save(ctx, userID, *record); err != nil {
		return nil, false, err
	}

	return list, added, nil
}

func (s *Service) mutateCart(ctx context.Context, userID string, apply func([]domain.ItemLine) ([]domain.ItemLine, error)) ([]domain.ItemLine, error) {
	if userID == "" {
		return nil, &domain.ValidationError{Field: "userId", Reason: "is required"}
	}

	record, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart, err := apply(record.Cart)
	if err != nil {
		return nil, err
	}

	record.Cart = cart
	if err := s.save(ctx, userID, *record); err != nil {
		return nil, err
	}

	return cart, nil
}

func (s *Service) load(ctx context.Context, userID string) (*domain.UserItems, error) {
	if userID == "" {
		return nil, &domain.ValidationError{Field: "userId", Reason: "is required"}
	}

	if s.cache != nil {
		record, err := s.cache.Get(ctx, userID)
		if err == nil {
			return record, nil
		}
		if !errors.Is(err, ports.ErrCacheMiss) {
			s.logger.WarnContext(ctx, "cart cache read failed", "user_id", userID, "error", err)
		}
	}

	record, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, userID, *record); err != nil {
			s.logger.WarnContext(ctx, "cart cache fill failed", "user_id", userID, "error", err)
		}
	}

	return record, nil
}

func (s *Service) save(ctx context.Context, userID string, record domain.UserItems) error {
	record.UserID = userID
	record.UpdatedAt = time.Now().UTC()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = record.UpdatedAt
	}

	if err := s.store.Save(ctx, record); err != nil {
		return err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, userID, record); err != nil {
			s.logger.WarnContext(ctx, "cart cache refresh failed", "user_id", userID, "error", err)
			if err := s.cache.Delete(ctx, userID); err != nil {
				s.logger.WarnContext(ctx, "cart cache invalidation failed", "user_id", userID, "error", err)
			}
		}
	}

	return nil
}
