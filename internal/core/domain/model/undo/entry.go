package undo

import (
	"errors"
	"fmt"
	"time"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"
)

const DefaultCapacity = 10

var ErrNothingToUndo = errors.New("nothing to undo")

// Entry records one applied transition and the stock effect it had.
type Entry struct {
	OrderID        kernel.UUID       `json:"order_id"`
	PreviousStatus order.Status      `json:"previous_status"`
	NewStatus      order.Status      `json:"new_status"`
	StockEffect    order.StockEffect `json:"stock_effect"`
	At             time.Time         `json:"at"`
}

// Equal reports whether both entries record the same change.
func (e Entry) Equal(other Entry) bool {
	return e.OrderID.IsEqual(other.OrderID) &&
		e.PreviousStatus == other.PreviousStatus &&
		e.NewStatus == other.NewStatus &&
		e.StockEffect == other.StockEffect &&
		e.At.Equal(other.At)
}

type NothingToUndoError struct {
	OrderID kernel.UUID
}

func NewNothingToUndoError(orderID kernel.UUID) *NothingToUndoError {
	return &NothingToUndoError{OrderID: orderID}
}

func (e *NothingToUndoError) Error() string {
	return fmt.Sprintf("%s: order %s", ErrNothingToUndo, e.OrderID)
}

func (e *NothingToUndoError) Unwrap() error {
	return ErrNothingToUndo
}
