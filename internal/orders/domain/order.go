package domain

import (
	"strings"
	"time"
)

// Item is a frozen copy of a cart line taken at order-creation time. Orders
// keep their own snapshot so later catalog or cart edits never rewrite
// history.
type Item struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Image     string  `json:"image,omitempty"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// ShippingAddress is the structured delivery address captured at checkout.
type ShippingAddress struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
}

// PaymentMethod records how the customer intends to pay. MobileNumber is only
// set for mobile-money style methods.
type PaymentMethod struct {
	Type         string `json:"type"`
	MobileNumber string `json:"mobileNumber,omitempty"`
}

// Order is the full record of one placed order. Items and totals are
// immutable after creation except through an explicit admin edit, which must
// recompute the totals.
type Order struct {
	ID              string          `json:"_id"`
	Email           string          `json:"email"`
	Items           []Item          `json:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	Status          Status          `json:"status"`
	Payment         PaymentStatus   `json:"payment"`
	Totals          Totals          `json:"totals"`
	Total           float64         `json:"total"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// Validate ensures the order adheres to business constraints.
func (o Order) Validate() error {
	if strings.TrimSpace(o.Email) == "" {
		return &ValidationError{Field: "email", Reason: "is required"}
	}
	if !strings.Contains(o.Email, "@") {
		return &ValidationError{Field: "email", Reason: "must be valid"}
	}
	if len(o.Items) == 0 {
		return &ValidationError{Field: "items", Reason: "must not be empty"}
	}
	for _, item := range o.Items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	if !o.Status.Valid() {
		return &ValidationError{Field: "status", Reason: "is unknown"}
	}
	if !o.Payment.Valid() {
		return &ValidationError{Field: "payment", Reason: "is unknown"}
	}
	return nil
}

// Validate rejects states an item line can never legitimately be in.
func (i Item) Validate() error {
	if strings.TrimSpace(i.ProductID) == "" {
		return &ValidationError{Field: "productId", Reason: "is required"}
	}
	if i.Price < 0 {
		return &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if i.Quantity < 1 {
		return &ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}
	return nil
}

// IsTerminal indicates whether the order can still move along the status
// axis. The payment axis is tracked independently.
func (o Order) IsTerminal() bool {
	switch o.Status {
	case StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}
