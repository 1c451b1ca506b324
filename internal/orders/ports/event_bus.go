package ports

import (
	"context"

	"github.com/SouravDn-p/mobile-canvas-api/internal/orders/domain"
)

// EventBus defines the contract for publishing order lifecycle events.
type EventBus interface {
	PublishOrderPlaced(ctx context.Context, order domain.Order) error
	PublishOrderStatusChanged(ctx context.Context, orderID string, status domain.Status, payment domain.PaymentStatus) error
}
