package order

import (
	"errors"
	"fmt"

	"backoffice/internal/core/domain/model/kernel"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

	// ErrInvalidTransition is the sentinel behind every InvalidTransitionError.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrItemsAreFrozen is returned when items are added after the order left PENDING.
	ErrItemsAreFrozen = errors.New("order items can only change while the order is PENDING")

	// ErrOrderIsFinal is returned when a terminal order is edited.
	ErrOrderIsFinal = errors.New("order is in a terminal status")

	// ErrStaleRevert is returned when an undo entry no longer describes the
	// order's current status.
	ErrStaleRevert = errors.New("order status moved since the change being undone")
)

// InvalidTransitionError rejects a move that is not an edge of the status graph.
type InvalidTransitionError struct {
	OrderID kernel.UUID
	From    Status
	To      Status
}

func NewInvalidTransitionError(orderID kernel.UUID, from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{OrderID: orderID, From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: order %s cannot move from %s to %s", ErrInvalidTransition, e.OrderID, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
