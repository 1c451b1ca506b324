package ports

import (
	"context"
	"errors"

	"github.com/SouravDn-p/mobile-canvas-api/internal/orders/domain"
)

// OrderRepository exposes persistence operations required by the application layer.
type OrderRepository interface {
	Create(ctx context.Context, order domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, filter ListFilter) ([]domain.Order, error)
	// ListAll returns every order without pagination, for summary folds.
	ListAll(ctx context.Context) ([]domain.Order, error)
	// Update persists the mutable fields of an existing aggregate: status,
	// payment, items, totals, notes and updated_at. Orders are never deleted.
	Update(ctx context.Context, order domain.Order) error
}

// ListFilter narrows list queries by status, payment state, customer email
// and pagination.
type ListFilter struct {
	Status   *domain.Status
	Payment  *domain.PaymentStatus
	Email    string
	Page     int
	PageSize int
}

var (
	// ErrNotFound is returned when the requested order does not exist.
	ErrNotFound = errors.New("order not found")
)
