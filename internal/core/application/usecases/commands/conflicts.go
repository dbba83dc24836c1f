package commands

import (
	"context"
	"time"

	"backoffice/internal/core/domain/model/conflict"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/services"

	"github.com/rs/zerolog/log"
)

type conflictUoW interface {
	TxManager
	ConflictRepoFactory
}

// rejectWithConflict persists a DETECTED record, commits it on its own and
// returns the error that rejects the write. Nothing else the caller staged in
// the unit of work may be pending at this point.
func rejectWithConflict(
	ctx context.Context,
	uow conflictUoW,
	table string,
	entityID kernel.UUID,
	verdict services.Verdict,
	at time.Time,
) error {
	record, err := conflict.NewRecord(kernel.NewUUID(), table, entityID, verdict.Diffs, verdict.Priority, at)
	if err != nil {
		return err
	}
	if err = uow.ConflictRepository().Add(ctx, record); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	detected := conflict.NewDetectedError(record)
	log.Warn().
		Str("record_id", record.ID().String()).
		Str("entity_table", table).
		Str("entity_id", entityID.String()).
		Strs("fields", detected.Fields).
		Str("priority", string(record.Priority())).
		Msg("conflicting write rejected")
	return detected
}
