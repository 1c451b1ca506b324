package commands

import (
	"context"
	"time"

	"github.com/SouravDn-p/mobile-canvas-api/internal/orders/domain"
	"github.com/SouravDn-p/mobile-canvas-api/internal/orders/ports"
)

// UpdateOrderItemsCommand is the admin line-item edit. The replacement list
// becomes the order's new snapshot and the totals are recomputed, so the
// stored total can never drift from the pricing formula.
type UpdateOrderItemsCommand struct {
	OrderID string
	Items   []domain.Item
	Notes   *string
}

func (c UpdateOrderItemsCommand) Validate() error {
	if c.OrderID == "" {
		return &domain.ValidationError{Field: "orderId", Reason: "is required"}
	}
	if len(c.Items) == 0 {
		return &domain.ValidationError{Field: "items", Reason: "must not be empty"}
	}
	for _, item := range c.Items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type UpdateOrderItemsHandler interface {
	Handle(ctx context.Context, cmd UpdateOrderItemsCommand) (*domain.Order, error)
}

type UpdateOrderItemsCommandHandler struct {
	repo        ports.OrderRepository
	shippingFee float64
	taxRate     float64
}

func NewUpdateOrderItemsCommandHandler(repo ports.OrderRepository, shippingFee, taxRate float64) *UpdateOrderItemsCommandHandler {
	if taxRate <= 0 {
		taxRate = domain.DefaultTaxRate
	}
	return &UpdateOrderItemsCommandHandler{repo: repo, shippingFee: shippingFee, taxRate: taxRate}
}

func (h *UpdateOrderItemsCommandHandler) Handle(ctx context.Context, cmd UpdateOrderItemsCommand) (*domain.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	order, err := h.repo.GetByID(ctx, cmd.OrderID)
	if err != nil {
		return nil, err
	}

	totals, err := domain.ComputeTotals(cmd.Items, h.shippingFee, h.taxRate)
	if err != nil {
		return nil, err
	}

	next := *order
	next.Items = make([]domain.Item, len(cmd.Items))
	copy(next.Items, cmd.Items)
	next.Totals = totals
	next.Total = totals.Total
	if cmd.Notes != nil {
		next.Notes = *cmd.Notes
	}
	next.UpdatedAt = time.Now().UTC()

	if err := h.repo.Update(ctx, next); err != nil {
		return nil, err
	}

	return &next, nil
}
