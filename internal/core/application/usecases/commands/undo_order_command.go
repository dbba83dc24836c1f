package commands

import (
	"errors"
	"strings"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"
)

var ErrUndoOrderCommandIsNotConstructed = errors.New(
	"UndoOrderCommand must be created via NewUndoOrderCommand constructor",
)

// UndoOrderCommand reverts the latest recorded transition of an order.
type UndoOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   string

	guard guard.ConstructorGuard
}

func NewUndoOrderCommand(orderID kernel.UUID, actor string) (UndoOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return UndoOrderCommand{}, err
	}
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return UndoOrderCommand{}, errs.NewValueIsRequiredError("actor")
	}

	return UndoOrderCommand{
		orderID: orderID,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UndoOrderCommand) Validate() error {
	return c.guard.Validate(ErrUndoOrderCommandIsNotConstructed)
}

func (c UndoOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c UndoOrderCommand) Actor() string        { return c.actor }
