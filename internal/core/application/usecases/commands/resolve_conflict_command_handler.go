package commands

import (
	"context"
	"time"

	"backoffice/internal/core/domain/model/conflict"

	"github.com/rs/zerolog/log"
)

// ResolveConflictCommandHandler closes a conflict record. The conflicting data
// itself is fixed by a regular follow-up write.
type ResolveConflictCommandHandler struct {
	uowFactory ConflictUoWFactory
	now        func() time.Time
}

func NewResolveConflictCommandHandler(uowFactory ConflictUoWFactory) ResolveConflictCommandHandler {
	return ResolveConflictCommandHandler{
		uowFactory: uowFactory,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (h ResolveConflictCommandHandler) Handle(ctx context.Context, cmd ResolveConflictCommand) (*conflict.Record, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ConflictRepository()
	record, err := repo.Get(ctx, cmd.RecordID())
	if err != nil {
		return nil, err
	}
	if err = record.Resolve(cmd.Resolution(), cmd.Actor(), h.now()); err != nil {
		return nil, err
	}
	if err = repo.Update(ctx, record); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	log.Info().Str("record_id", record.ID().String()).Str("actor", cmd.Actor()).Msg("conflict resolved")
	return record, nil
}
