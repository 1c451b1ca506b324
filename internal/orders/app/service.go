package app

import (
	"context"
	"log/slog"

	"github.com/SouravDn-p/mobile-canvas-api/internal/orders/app/commands"
	"github.com/SouravDn-p/mobile-canvas-api/internal/orders/app/queries"
	"github.com/SouravDn-p/mobile-canvas-api/internal/orders/domain"
	"github.com/SouravDn-p/mobile-canvas-api/internal/orders/metrics"
	"github.com/SouravDn-p/mobile-canvas-api/internal/orders/ports"
)

// Service bundles use cases for handling orders via the API.
type Service struct {
	repo             ports.OrderRepository
	events           ports.EventBus
	idemStore        ports.IdempotencyStore
	metrics          *metrics.Metrics
	placeOrder       commands.PlaceOrderHandler
	transitionOrder  commands.TransitionOrderHandler
	updateOrderItems commands.UpdateOrderItemsHandler
	getOrder         *queries.GetOrderQueryHandler
	summarizeOrders  *queries.SummarizeOrdersQueryHandler
}

// Pricing carries the flat fees applied at checkout.
type Pricing struct {
	ShippingFee float64
	TaxRate     float64
}

// NewService wires required dependencies.
func NewService(
	repo ports.OrderRepository,
	events ports.EventBus,
	idem ports.IdempotencyStore,
	pricing Pricing,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Service {
	placeHandler := commands.NewPlaceOrderCommandHandler(repo, events, pricing.ShippingFee, pricing.TaxRate)
	observablePlace := commands.NewObservablePlaceOrderHandler(placeHandler, logger, m)

	return &Service{
		repo:             repo,
		events:           events,
		idemStore:        idem,
		metrics:          m,
		placeOrder:       observablePlace,
		transitionOrder:  commands.NewTransitionOrderCommandHandler(repo, events),
		updateOrderItems: commands.NewUpdateOrderItemsCommandHandler(repo, pricing.ShippingFee, pricing.TaxRate),
		getOrder:         queries.NewGetOrderQueryHandler(repo),
		summarizeOrders:  queries.NewSummarizeOrdersQueryHandler(repo),
	}
}

// PlaceOrderInput captures the checkout payload.
type PlaceOrderInput struct {
	Email           string                 `json:"email"`
	Items           []domain.Item          `json:"items"`
	ShippingAddress domain.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   domain.PaymentMethod   `json:"paymentMethod"`
	Notes           string                 `json:"notes,omitempty"`
}

// PlaceOrder orchestrates order creation and event emission.
func (s *Service) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*domain.Order, error) {
	cmd := commands.PlaceOrderCommand{
		Email:           input.Email,
		Items:           input.Items,
		ShippingAddress: input.ShippingAddress,
		PaymentMethod:   input.PaymentMethod,
		Notes:           input.Notes,
	}
	return s.placeOrder.Handle(ctx, cmd)
}

// GetOrder retrieves an order by ID.
func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.getOrder.Handle(ctx, queries.GetOrderQuery{OrderID: id})
}

// ListOrders returns orders using a filter.
func (s *Service) ListOrders(ctx context.Context, filter ports.ListFilter) ([]domain.Order, error) {
	return s.repo.List(ctx, filter)
}

// TransitionOrder moves an order along its status and/or payment axis.
func (s *Service) TransitionOrder(ctx context.Context, id string, status *domain.Status, payment *domain.PaymentStatus) (*domain.Order, error) {
	cmd := commands.TransitionOrderCommand{OrderID: id, Status: status, Payment: payment}
	order, err := s.transitionOrder.Handle(ctx, cmd)

	statusLabel, paymentLabel := "", ""
	if status != nil {
		statusLabel = string(*status)
	}
	if payment != nil {
		paymentLabel = string(*payment)
	}
	s.metrics.RecordTransition(ctx, statusLabel, paymentLabel, err == nil)

	return order, err
}

// UpdateOrderItems applies an admin line-item edit, recomputing totals.
func (s *Service) UpdateOrderItems(ctx context.Context, id string, items []domain.Item, notes *string) (*domain.Order, error) {
	cmd := commands.UpdateOrderItemsCommand{OrderID: id, Items: items, Notes: notes}
	return s.updateOrderItems.Handle(ctx, cmd)
}

// SummarizeOrders returns dashboard aggregates over every stored order.
func (s *Service) SummarizeOrders(ctx context.Context) (domain.Summary, error) {
	return s.summarizeOrders.Handle(ctx, queries.SummarizeOrdersQuery{})
}

// SaveIdempotentResponse writes response details for a key.
func (s *Service) SaveIdempotentResponse(ctx context.Context, key string, response ports.StoredResponse) error {
	return s.idemStore.Save(ctx, key, response)
}

// GetIdempotentResponse retrieves previously stored response data.
func (s *Service) GetIdempotentResponse(ctx context.Context, key string) (*ports.StoredResponse, error) {
	return s.idemStore.Get(ctx, key)
}
