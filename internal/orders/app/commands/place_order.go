package commands

import (
	"context"
	"strings"
	"time"

	"github.com/SouravDn-p/mobile-canvas-api/internal/orders/domain"
	"github.com/SouravDn-p/mobile-canvas-api/internal/orders/ports"
	"github.com/google/uuid"
)

// PlaceOrderCommand carries everything needed to turn a cart into an order.
// Items are the caller's frozen copies of the cart lines at checkout time.
type PlaceOrderCommand struct {
	Email           string
	Items           []domain.Item
	ShippingAddress domain.ShippingAddress
	PaymentMethod   domain.PaymentMethod
	Notes           string
}

func (c PlaceOrderCommand) Validate() error {
	if strings.TrimSpace(c.Email) == "" {
		return &domain.ValidationError{Field: "email", Reason: "is required"}
	}
	if !strings.Contains(c.Email, "@") {
		return &domain.ValidationError{Field: "email", Reason: "must be valid"}
	}
	if len(c.Items) == 0 {
		return &domain.ValidationError{Field: "items", Reason: "must not be empty"}
	}
	for _, item := range c.Items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	if strings.TrimSpace(c.PaymentMethod.Type) == "" {
		return &domain.ValidationError{Field: "paymentMethod.type", Reason: "is required"}
	}
	return nil
}

type PlaceOrderHandler interface {
	Handle(ctx context.Context, cmd PlaceOrderCommand) (*domain.Order, error)
}

// PlaceOrderCommandHandler creates the order aggregate, prices it from the
// configured flat shipping fee and tax rate, persists it and announces it.
type PlaceOrderCommandHandler struct {
	repo        ports.OrderRepository
	events      ports.EventBus
	shippingFee float64
	taxRate     float64
}

func NewPlaceOrderCommandHandler(
	repo ports.OrderRepository,
	events ports.EventBus,
	shippingFee float64,
	taxRate float64,
) *PlaceOrderCommandHandler {
	if taxRate <= 0 {
		taxRate = domain.DefaultTaxRate
	}
	return &PlaceOrderCommandHandler{
		repo:        repo,
		events:      events,
		shippingFee: shippingFee,
		taxRate:     taxRate,
	}
}

func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*domain.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	totals, err := domain.ComputeTotals(cmd.Items, h.shippingFee, h.taxRate)
	if err != nil {
		return nil, err
	}

	items := make([]domain.Item, len(cmd.Items))
	copy(items, cmd.Items)

	now := time.Now().UTC()
	order := domain.Order{
		ID:              uuid.NewString(),
		Email:           cmd.Email,
		Items:           items,
		ShippingAddress: cmd.ShippingAddress,
		PaymentMethod:   cmd.PaymentMethod,
		Status:          domain.StatusPending,
		Payment:         domain.PaymentPending,
		Totals:          totals,
		Total:           totals.Total,
		Notes:           cmd.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := order.Validate(); err != nil {
		return nil, err
	}

	if err := h.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	if err := h.events.PublishOrderPlaced(ctx, order); err != nil {
		return &order, &EventPublishError{Err: err}
	}

	return &order, nil
}

// EventPublishError signals that the order was saved but its event was not
// delivered. Callers should treat the order as placed.
type EventPublishError struct {
	Err error
}

func (e *EventPublishError) Error() string {
	return "order saved but failed to publish event: " + e.Err.Error()
}

func (e *EventPublishError) Unwrap() error { return e.Err }
