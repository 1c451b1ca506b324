package domain

import "fmt"

// ValidationError reports input that can never be a legitimate item state.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// NotFoundError reports an operation that requires a line which is absent
// from the given snapshot.
type NotFoundError struct {
	ProductID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product %s not in cart", e.ProductID)
}
