package commands

import (
	"errors"
	"maps"
	"strings"

	"backoffice/internal/core/domain/model/conflict"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"
)

var ErrUpdateOrderDetailsCommandIsNotConstructed = errors.New(
	"UpdateOrderDetailsCommand must be created via NewUpdateOrderDetailsCommand constructor",
)

// UpdateOrderDetailsCommand edits customer, shipping, note and money fields of
// an order against the snapshot the caller read.
type UpdateOrderDetailsCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	base    conflict.Snapshot
	changes map[string]string
	actor   string

	guard guard.ConstructorGuard
}

func NewUpdateOrderDetailsCommand(
	orderID kernel.UUID, base conflict.Snapshot, changes map[string]string, actor string,
) (UpdateOrderDetailsCommand, error) {
	var errList []error
	if err := orderID.Validate(); err != nil {
		errList = append(errList, err)
	}
	if base.Version <= 0 {
		errList = append(errList, errs.NewValueIsRequiredError("base version"))
	}
	if len(changes) == 0 {
		errList = append(errList, errs.NewValueIsRequiredError("changes"))
	}
	if strings.TrimSpace(actor) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("actor"))
	}
	if err := errors.Join(errList...); err != nil {
		return UpdateOrderDetailsCommand{}, err
	}

	return UpdateOrderDetailsCommand{
		orderID: orderID,
		base:    conflict.NewSnapshot(base.Version, base.Fields),
		changes: maps.Clone(changes),
		actor:   strings.TrimSpace(actor),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrderDetailsCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderDetailsCommandIsNotConstructed)
}

func (c UpdateOrderDetailsCommand) OrderID() kernel.UUID       { return c.orderID }
func (c UpdateOrderDetailsCommand) Base() conflict.Snapshot    { return c.base }
func (c UpdateOrderDetailsCommand) Changes() map[string]string { return maps.Clone(c.changes) }
func (c UpdateOrderDetailsCommand) Actor() string              { return c.actor }
