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

var ErrUpdateMaterialCommandIsNotConstructed = errors.New(
	"UpdateMaterialCommand must be created via NewUpdateMaterialCommand constructor",
)

// UpdateMaterialCommand edits raw material master data against the snapshot
// the caller read. The balance is not editable.
type UpdateMaterialCommand struct { //nolint:recvcheck //using for validation
	materialID kernel.UUID
	base       conflict.Snapshot
	changes    map[string]string
	actor      string

	guard guard.ConstructorGuard
}

func NewUpdateMaterialCommand(
	materialID kernel.UUID, base conflict.Snapshot, changes map[string]string, actor string,
) (UpdateMaterialCommand, error) {
	var errList []error
	if err := materialID.Validate(); err != nil {
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
		return UpdateMaterialCommand{}, err
	}

	return UpdateMaterialCommand{
		materialID: materialID,
		base:       conflict.NewSnapshot(base.Version, base.Fields),
		changes:    maps.Clone(changes),
		actor:      strings.TrimSpace(actor),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateMaterialCommand) Validate() error {
	return c.guard.Validate(ErrUpdateMaterialCommandIsNotConstructed)
}

func (c UpdateMaterialCommand) MaterialID() kernel.UUID    { return c.materialID }
func (c UpdateMaterialCommand) Base() conflict.Snapshot    { return c.base }
func (c UpdateMaterialCommand) Changes() map[string]string { return maps.Clone(c.changes) }
func (c UpdateMaterialCommand) Actor() string              { return c.actor }
