package domain

import "time"

// Status captures the fulfillment lifecycle of an order. The happy path is
// strictly forward: pending -> processing -> shipped -> delivered. Cancelled
// is reachable from pending or processing only; once shipped, cancellation
// must become a return/refund flow instead.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// PaymentStatus is a parallel axis, settable independently of Status. The
// system deliberately enforces no coupling between the two: a cash-on-delivery
// order can be delivered while payment is still pending.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

var statusEdges = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

var paymentEdges = map[PaymentStatus][]PaymentStatus{
	PaymentPending:  {PaymentPaid, PaymentFailed},
	PaymentPaid:     {PaymentRefunded},
	PaymentFailed:   {PaymentPending}, // payment retry
	PaymentRefunded: {},
}

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	_, ok := statusEdges[s]
	return ok
}

// CanTransitionTo reports whether the edge s -> next is legal. Staying in the
// same state is always allowed.
func (s Status) CanTransitionTo(next Status) bool {
	if s == next {
		return true
	}
	for _, allowed := range statusEdges[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Valid reports whether p is a known payment status value.
func (p PaymentStatus) Valid() bool {
	_, ok := paymentEdges[p]
	return ok
}

// CanTransitionTo reports whether the edge p -> next is legal.
func (p PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	if p == next {
		return true
	}
	for _, allowed := range paymentEdges[p] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transition validates the requested status and payment changes against
// their own transition tables and returns a new aggregate with UpdatedAt
// refreshed. Either field may be nil to leave its axis untouched; a same-state
// request succeeds trivially. The input order is not mutated, so the caller
// can diff old and new and decide whether to persist.
func Transition(order Order, newStatus *Status, newPayment *PaymentStatus, now time.Time) (Order, error) {
	next := order
	next.Items = make([]Item, len(order.Items))
	copy(next.Items, order.Items)

	if newStatus != nil {
		if !newStatus.Valid() {
			return Order{}, &ValidationError{Field: "status", Reason: "is unknown"}
		}
		if !order.Status.CanTransitionTo(*newStatus) {
			return Order{}, &InvalidTransitionError{
				Axis: "status",
				From: string(order.Status),
				To:   string(*newStatus),
			}
		}
		next.Status = *newStatus
	}

	if newPayment != nil {
		if !newPayment.Valid() {
			return Order{}, &ValidationError{Field: "payment", Reason: "is unknown"}
		}
		if !order.Payment.CanTransitionTo(*newPayment) {
			return Order{}, &InvalidTransitionError{
				Axis: "payment",
				From: string(order.Payment),
				To:   string(*newPayment),
			}
		}
		next.Payment = *newPayment
	}

	next.UpdatedAt = now.UTC()
	return next, nil
}

// Summary aggregates a snapshot of orders: counts per status and payment
// state, plus total revenue.
type Summary struct {
	TotalOrders   int                   `json:"totalOrders"`
	StatusCounts  map[Status]int        `json:"statusCounts"`
	PaymentCounts map[PaymentStatus]int `json:"paymentCounts"`
	Revenue       float64               `json:"revenue"`
}

// Summarize folds over orders without side effects. Revenue sums Total across
// every order, cancelled included, matching what the admin dashboard shows.
func Summarize(orders []Order) Summary {
	summary := Summary{
		StatusCounts:  make(map[Status]int),
		PaymentCounts: make(map[PaymentStatus]int),
	}

	for _, order := range orders {
		summary.TotalOrders++
		summary.StatusCounts[order.Status]++
		summary.PaymentCounts[order.Payment]++
		summary.Revenue += order.Total
	}

	return summary
}
