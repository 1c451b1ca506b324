package events

import (
	"context"
	"log/slog"

	"github.com/SouravDn-p/mobile-canvas-api/internal/orders/domain"
)

// NoopEventBus logs events without sending them to a broker. Useful for local dev
// when RabbitMQ is not running.
type NoopEventBus struct{}

// NewNoopEventBus returns a new no-op event publisher.
func NewNoopEventBus() *NoopEventBus {
	return &NoopEventBus{}
}

func (n *NoopEventBus) PublishOrderPlaced(_ context.Context, order domain.Order) error {
	slog.Debug("event::order_placed", "order_id", order.ID, "total", order.Total)
	return nil
}

func (n *NoopEventBus) PublishOrderStatusChanged(_ context.Context, orderID string, status domain.Status, payment domain.PaymentStatus) error {
	slog.Debug("event::order_status_changed", "order_id", orderID, "status", status, "payment", payment)
	return nil
}
