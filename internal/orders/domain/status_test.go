package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/SouravDn-p/mobile-canvas-api/internal/orders/domain"
)

func statusPtr(s domain.Status) *domain.Status                { return &s }
func paymentPtr(p domain.PaymentStatus) *domain.PaymentStatus { return &p }

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.Status
		to      domain.Status
		allowed bool
	}{
		{"pending to processing", domain.StatusPending, domain.StatusProcessing, true},
		{"pending to cancelled", domain.StatusPending, domain.StatusCancelled, true},
		{"pending to shipped", domain.StatusPending, domain.StatusShipped, false},
		{"pending to delivered", domain.StatusPending, domain.StatusDelivered, false},
		{"processing to shipped", domain.StatusProcessing, domain.StatusShipped, true},
		{"processing to cancelled", domain.StatusProcessing, domain.StatusCancelled, true},
		{"processing to pending", domain.StatusProcessing, domain.StatusPending, false},
		{"shipped to delivered", domain.StatusShipped, domain.StatusDelivered, true},
		{"shipped to cancelled not permitted", domain.StatusShipped, domain.StatusCancelled, false},
		{"delivered to pending", domain.StatusDelivered, domain.StatusPending, false},
		{"cancelled is terminal", domain.StatusCancelled, domain.StatusProcessing, false},
		{"same state is a no-op", domain.StatusShipped, domain.StatusShipped, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.allowed {
				t.Errorf("%s -> %s: got %v, want %v", tt.from, tt.to, got, tt.allowed)
			}
		})
	}
}

func TestPaymentTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.PaymentStatus
		to      domain.PaymentStatus
		allowed bool
	}{
		{"pending to paid", domain.PaymentPending, domain.PaymentPaid, true},
		{"pending to failed", domain.PaymentPending, domain.PaymentFailed, true},
		{"pending to refunded", domain.PaymentPending, domain.PaymentRefunded, false},
		{"paid to refunded", domain.PaymentPaid, domain.PaymentRefunded, true},
		{"paid to failed", domain.PaymentPaid, domain.PaymentFailed, false},
		{"failed to pending allows retry", domain.PaymentFailed, domain.PaymentPending, true},
		{"failed to paid", domain.PaymentFailed, domain.PaymentPaid, false},
		{"refunded is terminal", domain.PaymentRefunded, domain.PaymentPending, false},
		{"same state is a no-op", domain.PaymentPaid, domain.PaymentPaid, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.allowed {
				t.Errorf("%s -> %s: got %v, want %v", tt.from, tt.to, got, tt.allowed)
			}
		})
	}
}

func TestTransition(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("advances status and refreshes updatedAt", func(t *testing.T) {
		order := validOrder()
		next, err := domain.Transition(order, statusPtr(domain.StatusProcessing), nil, now)
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if next.Status != domain.StatusProcessing {
			t.Errorf("expected processing, got %s", next.Status)
		}
		if !next.UpdatedAt.Equal(now) {
			t.Errorf("expected updatedAt %v, got %v", now, next.UpdatedAt)
		}
		if order.Status != domain.StatusPending {
			t.Error("input order was mutated")
		}
	})

	t.Run("illegal status edge names the attempted transition", func(t *testing.T) {
		order := validOrder()
		_, err := domain.Transition(order, statusPtr(domain.StatusDelivered), nil, now)

		var ite *domain.InvalidTransitionError
		if !errors.As(err, &ite) {
			t.Fatalf("expected InvalidTransitionError, got: %v", err)
		}
		if ite.Axis != "status" || ite.From != "pending" || ite.To != "delivered" {
			t.Errorf("unexpected edge in error: %+v", ite)
		}
	})

	t.Run("delivered from shipped succeeds", func(t *testing.T) {
		order := validOrder()
		order.Status = domain.StatusShipped
		next, err := domain.Transition(order, statusPtr(domain.StatusDelivered), nil, now)
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if next.Status != domain.StatusDelivered {
			t.Errorf("expected delivered, got %s", next.Status)
		}
	})

	t.Run("refund requires paid", func(t *testing.T) {
		order := validOrder()
		_, err := domain.Transition(order, nil, paymentPtr(domain.PaymentRefunded), now)
		var ite *domain.InvalidTransitionError
		if !errors.As(err, &ite) {
			t.Fatalf("expected InvalidTransitionError, got: %v", err)
		}
		if ite.Axis != "payment" {
			t.Errorf("expected payment axis, got %s", ite.Axis)
		}

		order.Payment = domain.PaymentPaid
		next, err := domain.Transition(order, nil, paymentPtr(domain.PaymentRefunded), now)
		if err != nil {
			t.Fatalf("expected refund from paid to succeed, got: %v", err)
		}
		if next.Payment != domain.PaymentRefunded {
			t.Errorf("expected refunded, got %s", next.Payment)
		}
	})

	t.Run("axes validate independently in one call", func(t *testing.T) {
		order := validOrder()
		next, err := domain.Transition(order, statusPtr(domain.StatusProcessing), paymentPtr(domain.PaymentPaid), now)
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if next.Status != domain.StatusProcessing || next.Payment != domain.PaymentPaid {
			t.Errorf("expected both axes updated, got %s/%s", next.Status, next.Payment)
		}
	})

	t.Run("delivered does not require paid", func(t *testing.T) {
		// cash-on-delivery orders are delivered while payment is pending
		order := validOrder()
		order.Status = domain.StatusShipped
		next, err := domain.Transition(order, statusPtr(domain.StatusDelivered), nil, now)
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if next.Payment != domain.PaymentPending {
			t.Errorf("expected payment untouched, got %s", next.Payment)
		}
	})

	t.Run("no-op transition succeeds trivially", func(t *testing.T) {
		order := validOrder()
		next, err := domain.Transition(order, statusPtr(domain.StatusPending), paymentPtr(domain.PaymentPending), now)
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if next.Status != domain.StatusPending || next.Payment != domain.PaymentPending {
			t.Errorf("unexpected state: %s/%s", next.Status, next.Payment)
		}
	})

	t.Run("unknown target status is a validation error", func(t *testing.T) {
		order := validOrder()
		bogus := domain.Status("archived")
		_, err := domain.Transition(order, &bogus, nil, now)
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("expected ValidationError, got: %v", err)
		}
	})
}

func TestSummarize(t *testing.T) {
	orders := []domain.Order{
		{Status: domain.StatusPending, Payment: domain.PaymentPending, Total: 10},
		{Status: domain.StatusPending, Payment: domain.PaymentPaid, Total: 20},
		{Status: domain.StatusShipped, Payment: domain.PaymentPaid, Total: 30},
		{Status: domain.StatusCancelled, Payment: domain.PaymentRefunded, Total: 5},
	}

	summary := domain.Summarize(orders)

	if summary.TotalOrders != 4 {
		t.Errorf("expected 4 orders, got %d", summary.TotalOrders)
	}
	if summary.StatusCounts[domain.StatusPending] != 2 {
		t.Errorf("expected 2 pending, got %d", summary.StatusCounts[domain.StatusPending])
	}
	if summary.StatusCounts[domain.StatusShipped] != 1 {
		t.Errorf("expected 1 shipped, got %d", summary.StatusCounts[domain.StatusShipped])
	}
	if summary.StatusCounts[domain.StatusDelivered] != 0 {
		t.Errorf("expected 0 delivered, got %d", summary.StatusCounts[domain.StatusDelivered])
	}
	if summary.PaymentCounts[domain.PaymentPaid] != 2 {
		t.Errorf("expected 2 paid, got %d", summary.PaymentCounts[domain.PaymentPaid])
	}

	// revenue includes cancelled orders, matching the dashboard
	if summary.Revenue != 65 {
		t.Errorf("expected revenue 65, got %v", summary.Revenue)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	summary := domain.Summarize(nil)
	if summary.TotalOrders != 0 || summary.Revenue != 0 {
		t.Errorf("expected zero summary, got %+v", summary)
	}
}
