package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/SouravDn-p/mobile-canvas-api/internal/orders/domain"
)

const (
	OrderPlacedQueue        = "order.placed"
	OrderStatusChangedQueue = "order.status_changed"

	publishTimeout = 3 * time.Second
)

// OrderPlaced is the wire contract emitted after a successful checkout.
type OrderPlaced struct {
	EventType string        `json:"eventType"`
	OrderID   string        `json:"orderId"`
	Email     string        `json:"email"`
	Items     []domain.Item `json:"items"`
	Total     float64       `json:"total"`
	Timestamp time.Time     `json:"timestamp"`
}

// OrderStatusChanged is emitted whenever either lifecycle axis moves.
type OrderStatusChanged struct {
	EventType string    `json:"eventType"`
	OrderID   string    `json:"orderId"`
	Status    string    `json:"status"`
	Payment   string    `json:"payment"`
	Timestamp time.Time `json:"timestamp"`
}

// RabbitPublisher publishes order events to durable RabbitMQ queues.
type RabbitPublisher struct {
	ch *amqp.Channel
}

// NewRabbitPublisher opens a channel and declares the queues it publishes to,
// so a publish never fails due to missing infra.
func NewRabbitPublisher(conn *amqp.Connection) (*RabbitPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	for _, queue := range []string{OrderPlacedQueue, OrderStatusChangedQueue} {
		if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			return nil, fmt.Errorf("declare %s: %w", queue, err)
		}
	}

	return &RabbitPublisher{ch: ch}, nil
}

func (p *RabbitPublisher) Close() error {
	return p.ch.Close()
}

func (p *RabbitPublisher) PublishOrderPlaced(ctx context.Context, order domain.Order) error {
	ev := OrderPlaced{
		EventType: "OrderPlaced",
		OrderID:   order.ID,
		Email:     order.Email,
		Items:     order.Items,
		Total:     order.Total,
		Timestamp: time.Now().UTC(),
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal OrderPlaced: %w", err)
	}

	return p.publishJSON(ctx, OrderPlacedQueue, body)
}

func (p *RabbitPublisher) PublishOrderStatusChanged(ctx context.Context, orderID string, status domain.Status, payment domain.PaymentStatus) error {
	ev := OrderStatusChanged{
		EventType: "OrderStatusChanged",
		OrderID:   orderID,
		Status:    string(status),
		Payment:   string(payment),
		Timestamp: time.Now().UTC(),
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal OrderStatusChanged: %w", err)
	}

	return p.publishJSON(ctx, OrderStatusChangedQueue, body)
}

func (p *RabbitPublisher) publishJSON(ctx context.Context, routingKey string, body []byte) error {
	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	return p.ch.PublishWithContext(
		pubCtx,
		"",         // default exchange
		routingKey, // queue name as routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}
