package commands

import (
	"errors"
	"strings"

	"backoffice/internal/core/domain/model/conflict"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand asks to move an order to a new status.
//
// Example:
//
//	cmd, err := NewTransitionOrderCommand(orderID, order.Confirmed, "clerk-7", nil)
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  order.Status
	actor   string
	base    *conflict.Snapshot

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand validates the request. base is the snapshot the
// caller decided on; nil skips conflict detection.
func NewTransitionOrderCommand(
	orderID kernel.UUID, target order.Status, actor string, base *conflict.Snapshot,
) (TransitionOrderCommand, error) {
	cmd := TransitionOrderCommand{
		base:  base,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
		cmd.setActor(actor),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	return cmd, nil
}

func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

func (c TransitionOrderCommand) OrderID() kernel.UUID     { return c.orderID }
func (c TransitionOrderCommand) Target() order.Status     { return c.target }
func (c TransitionOrderCommand) Actor() string            { return c.actor }
func (c TransitionOrderCommand) Base() *conflict.Snapshot { return c.base }

func (c *TransitionOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *TransitionOrderCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = target
	return nil
}

func (c *TransitionOrderCommand) setActor(actor string) error {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}
	c.actor = actor
	return nil
}
