package commands

import (
	"errors"
	"strings"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"
	"backoffice/internal/pkg/guard"
)

var ErrResolveConflictCommandIsNotConstructed = errors.New(
	"ResolveConflictCommand must be created via NewResolveConflictCommand constructor",
)

type ResolveConflictCommand struct { //nolint:recvcheck //using for validation
	recordID   kernel.UUID
	resolution string
	actor      string

	guard guard.ConstructorGuard
}

func NewResolveConflictCommand(recordID kernel.UUID, resolution, actor string) (ResolveConflictCommand, error) {
	var errList []error
	if err := recordID.Validate(); err != nil {
		errList = append(errList, err)
	}
	if strings.TrimSpace(resolution) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("resolution"))
	}
	if strings.TrimSpace(actor) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("actor"))
	}
	if err := errors.Join(errList...); err != nil {
		return ResolveConflictCommand{}, err
	}

	return ResolveConflictCommand{
		recordID:   recordID,
		resolution: strings.TrimSpace(resolution),
		actor:      strings.TrimSpace(actor),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ResolveConflictCommand) Validate() error {
	return c.guard.Validate(ErrResolveConflictCommandIsNotConstructed)
}

func (c ResolveConflictCommand) RecordID() kernel.UUID { return c.recordID }
func (c ResolveConflictCommand) Resolution() string    { return c.resolution }
func (c ResolveConflictCommand) Actor() string         { return c.actor }
