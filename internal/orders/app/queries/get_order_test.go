package queries_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SouravDn-p/mobile-canvas-api/internal/orders/app/queries"
	"github.com/SouravDn-p/mobile-canvas-api/internal/orders/domain"
	"github.com/SouravDn-p/mobile-canvas-api/internal/orders/ports"
)

type inMemoryRepository struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
}

func newInMemoryRepository() *inMemoryRepository {
	return &inMemoryRepository{
		orders: make(map[string]domain.Order),
	}
}

func (r *inMemoryRepository) Create(ctx context.Context, order domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.ID] = order
	return nil
}

func (r *inMemoryRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, exists := r.orders[id]
	if !exists {
		return nil, ports.ErrNotFound
	}
	return &order, nil
}

func (r *inMemoryRepository) List(ctx context.Context, filter ports.ListFilter) ([]domain.Order, error) {
	return r.ListAll(ctx)
}

func (r *inMemoryRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	orders := make([]domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orders = append(orders, order)
	}
	return orders, nil
}

func (r *inMemoryRepository) Update(ctx context.Context, order domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.orders[order.ID]; !exists {
		return ports.ErrNotFound
	}
	r.orders[order.ID] = order
	return nil
}

func testOrder(id string, status domain.Status, payment domain.PaymentStatus, total float64) domain.Order {
	return domain.Order{
		ID:    id,
		Email: "user@example.com",
		Items: []domain.Item{
			{ProductID: "P1", Name: "Phone", Price: total, Quantity: 1},
		},
		Status:    status,
		Payment:   payment,
		Total:     total,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

func TestGetOrder(t *testing.T) {
	t.Run("returns order by ID", func(t *testing.T) {
		repo := newInMemoryRepository()
		handler := queries.NewGetOrderQueryHandler(repo)
		ctx := context.Background()

		expected := testOrder("test-order-123", domain.StatusPending, domain.PaymentPending, 19.99)
		if err := repo.Create(ctx, expected); err != nil {
			t.Fatalf("failed to create test order: %v", err)
		}

		result, err := handler.Handle(ctx, queries.GetOrderQuery{OrderID: "test-order-123"})

		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result == nil {
			t.Fatal("expected order to be returned, got nil")
		}
		if result.ID != expected.ID {
			t.Errorf("expected ID %s, got %s", expected.ID, result.ID)
		}
		if result.Email != expected.Email {
			t.Errorf("expected email %s, got %s", expected.Email, result.Email)
		}
		if result.Status != expected.Status {
			t.Errorf("expected status %s, got %s", expected.Status, result.Status)
		}
	})

	t.Run("returns not found error for nonexistent order", func(t *testing.T) {
		repo := newInMemoryRepository()
		handler := queries.NewGetOrderQueryHandler(repo)

		result, err := handler.Handle(context.Background(), queries.GetOrderQuery{OrderID: "nonexistent-order"})

		if !errors.Is(err, ports.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		if result != nil {
			t.Errorf("expected nil result, got %+v", result)
		}
	})

	t.Run("retrieves correct order from multiple orders", func(t *testing.T) {
		repo := newInMemoryRepository()
		handler := queries.NewGetOrderQueryHandler(repo)
		ctx := context.Background()

		orders := []domain.Order{
			testOrder("order-1", domain.StatusPending, domain.PaymentPending, 10),
			testOrder("order-2", domain.StatusDelivered, domain.PaymentPaid, 20),
			testOrder("order-3", domain.StatusCancelled, domain.PaymentRefunded, 30),
		}
		for _, order := range orders {
			if err := repo.Create(ctx, order); err != nil {
				t.Fatalf("failed to create order %s: %v", order.ID, err)
			}
		}

		for _, expected := range orders {
			result, err := handler.Handle(ctx, queries.GetOrderQuery{OrderID: expected.ID})
			if err != nil {
				t.Errorf("failed to get order %s: %v", expected.ID, err)
				continue
			}
			if result.ID != expected.ID {
				t.Errorf("expected ID %s, got %s", expected.ID, result.ID)
			}
			if result.Status != expected.Status {
				t.Errorf("expected status %s, got %s", expected.Status, result.Status)
			}
		}
	})
}

func TestGetOrderQueryValidation(t *testing.T) {
	tests := []struct {
		name    string
		query   queries.GetOrderQuery
		wantErr bool
	}{
		{"valid order ID", queries.GetOrderQuery{OrderID: "order-123"}, false},
		{"empty order ID", queries.GetOrderQuery{OrderID: ""}, true},
		{"whitespace order ID", queries.GetOrderQuery{OrderID: "  \t  "}, true},
		{"valid UUID order ID", queries.GetOrderQuery{OrderID: "550e8400-e29b-41d4-a716-446655440000"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if tt.wantErr {
				var verr *domain.ValidationError
				if !errors.As(err, &verr) {
					t.Errorf("expected ValidationError, got %v", err)
				}
			} else if err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}
