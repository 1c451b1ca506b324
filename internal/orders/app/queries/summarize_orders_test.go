package queries_test

import (
	"context"
	"testing"

	"github.com/SouravDn-p/mobile-canvas-api/internal/orders/app/queries"
	"github.com/SouravDn-p/mobile-canvas-api/internal/orders/domain"
)

func TestSummarizeOrders(t *testing.T) {
	t.Run("counts statuses and sums revenue across all orders", func(t *testing.T) {
		repo := newInMemoryRepository()
		ctx := context.Background()

		seed := []domain.Order{
			testOrder("order-1", domain.StatusPending, domain.PaymentPending, 10),
			testOrder("order-2", domain.StatusPending, domain.PaymentPaid, 25.5),
			testOrder("order-3", domain.StatusShipped, domain.PaymentPaid, 40),
			testOrder("order-4", domain.StatusCancelled, domain.PaymentRefunded, 12),
		}
		for _, order := range seed {
			if err := repo.Create(ctx, order); err != nil {
				t.Fatalf("failed to seed order %s: %v", order.ID, err)
			}
		}

		handler := queries.NewSummarizeOrdersQueryHandler(repo)
		summary, err := handler.Handle(ctx, queries.SummarizeOrdersQuery{})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if summary.TotalOrders != 4 {
			t.Errorf("expected 4 orders, got %d", summary.TotalOrders)
		}
		if summary.StatusCounts[domain.StatusPending] != 2 {
			t.Errorf("expected 2 pending, got %d", summary.StatusCounts[domain.StatusPending])
		}
		if summary.StatusCounts[domain.StatusShipped] != 1 {
			t.Errorf("expected 1 shipped, got %d", summary.StatusCounts[domain.StatusShipped])
		}
		if summary.PaymentCounts[domain.PaymentPaid] != 2 {
			t.Errorf("expected 2 paid, got %d", summary.PaymentCounts[domain.PaymentPaid])
		}
		// cancelled orders still count toward revenue
		if summary.Revenue != 87.5 {
			t.Errorf("expected revenue 87.5, got %v", summary.Revenue)
		}
	})

	t.Run("empty repository yields a zero summary", func(t *testing.T) {
		repo := newInMemoryRepository()
		handler := queries.NewSummarizeOrdersQueryHandler(repo)

		summary, err := handler.Handle(context.Background(), queries.SummarizeOrdersQuery{})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if summary.TotalOrders != 0 || summary.Revenue != 0 {
			t.Errorf("expected zero summary, got %+v", summary)
		}
	})
}
