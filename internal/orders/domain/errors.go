package domain

import "fmt"

// ValidationError reports order input that is never a legitimate state.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// InvalidTransitionError names the illegal edge an order was asked to take.
// Axis is either "status" or "payment".
type InvalidTransitionError struct {
	Axis string
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("illegal %s transition %s -> %s", e.Axis, e.From, e.To)
}
