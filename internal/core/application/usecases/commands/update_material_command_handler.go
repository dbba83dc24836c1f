package commands

import (
	"context"
	"time"

	"backoffice/internal/core/domain/model/conflict"
	"backoffice/internal/core/domain/model/material"
	"backoffice/internal/core/domain/services"

	"github.com/rs/zerolog/log"
)

type UpdateMaterialCommandHandler struct {
	uowFactory StockUoWFactory
	detector   services.ConflictDetector
	now        func() time.Time
}

func NewUpdateMaterialCommandHandler(uowFactory StockUoWFactory) UpdateMaterialCommandHandler {
	return UpdateMaterialCommandHandler{
		uowFactory: uowFactory,
		detector:   services.NewConflictDetector(),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Handle validates the edit against the current row, then writes it with a
// version check. A concurrent ledger booking between read and write surfaces
// as errs.VersionIsInvalidError.
func (h UpdateMaterialCommandHandler) Handle(ctx context.Context, cmd UpdateMaterialCommand) (*material.RawMaterial, error) {
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

	materials := uow.MaterialRepository()
	m, err := materials.Get(ctx, cmd.MaterialID())
	if err != nil {
		return nil, err
	}

	now := h.now()
	if verdict := h.detector.Detect(conflict.TableRawMaterials, cmd.Base(), m.Snapshot(), cmd.Changes()); verdict.HasConflict() {
		return nil, rejectWithConflict(ctx, uow, conflict.TableRawMaterials, m.ID(), verdict, now)
	}

	if err = m.UpdateDetails(cmd.Changes(), now); err != nil {
		return nil, err
	}
	if err = materials.Update(ctx, m); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	log.Info().Str("material_id", m.ID().String()).Str("actor", cmd.Actor()).Int64("version", m.Version()).Msg("material updated")
	return m, nil
}
