package queries

import (
	"context"

	"github.com/SouravDn-p/mobile-canvas-api/internal/orders/domain"
	"github.com/SouravDn-p/mobile-canvas-api/internal/orders/ports"
)

// SummarizeOrdersQuery requests the admin dashboard aggregates: counts per
// status and payment state plus total revenue.
type SummarizeOrdersQuery struct{}

type SummarizeOrdersQueryHandler struct {
	repo ports.OrderRepository
}

func NewSummarizeOrdersQueryHandler(repo ports.OrderRepository) *SummarizeOrdersQueryHandler {
	return &SummarizeOrdersQueryHandler{repo: repo}
}

// Handle folds over every stored order. The fold itself is pure; it is safe
// to run on any snapshot the repository returns.
func (h *SummarizeOrdersQueryHandler) Handle(ctx context.Context, _ SummarizeOrdersQuery) (domain.Summary, error) {
	orders, err := h.repo.ListAll(ctx)
	if err != nil {
		return domain.Summary{}, err
	}

	return domain.Summarize(orders), nil
}
