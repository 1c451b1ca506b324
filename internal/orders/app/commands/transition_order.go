package commands

import (
	"context"
	"time"

	"github.com/SouravDn-p/mobile-canvas-api/internal/orders/domain"
	"github.com/SouravDn-p/mobile-canvas-api/internal/orders/ports"
)

// TransitionOrderCommand requests a move along the status and/or payment
// axis. Either field may be nil to leave that axis untouched.
type TransitionOrderCommand struct {
	OrderID string
	Status  *domain.Status
	Payment *domain.PaymentStatus
}

func (c TransitionOrderCommand) Validate() error {
	if c.OrderID == "" {
		return &domain.ValidationError{Field: "orderId", Reason: "is required"}
	}
	if c.Status == nil && c.Payment == nil {
		return &domain.ValidationError{Field: "status", Reason: "or payment must be provided"}
	}
	return nil
}

type TransitionOrderHandler interface {
	Handle(ctx context.Context, cmd TransitionOrderCommand) (*domain.Order, error)
}

// TransitionOrderCommandHandler loads the aggregate, applies the state
// machine and persists the result. A same-state transition still refreshes
// updatedAt but publishes no event.
type TransitionOrderCommandHandler struct {
	repo   ports.OrderRepository
	events ports.EventBus
}

func NewTransitionOrderCommandHandler(repo ports.OrderRepository, events ports.EventBus) *TransitionOrderCommandHandler {
	return &TransitionOrderCommandHandler{repo: repo, events: events}
}

func (h *TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) (*domain.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	order, err := h.repo.GetByID(ctx, cmd.OrderID)
	if err != nil {
		return nil, err
	}

	next, err := domain.Transition(*order, cmd.Status, cmd.Payment, time.Now())
	if err != nil {
		return nil, err
	}

	changed := next.Status != order.Status || next.Payment != order.Payment

	if err := h.repo.Update(ctx, next); err != nil {
		return nil, err
	}

	if !changed {
		return &next, nil
	}

	if err := h.events.PublishOrderStatusChanged(ctx, next.ID, next.Status, next.Payment); err != nil {
		return &next, &EventPublishError{Err: err}
	}

	return &next, nil
}
