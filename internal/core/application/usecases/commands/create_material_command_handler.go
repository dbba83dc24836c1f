package commands

import (
	"context"
	"time"

	"backoffice/internal/core/application/stockledger"
	"backoffice/internal/core/domain/model/material"

	"github.com/rs/zerolog/log"
)

type CreateMaterialCommandHandler struct {
	uowFactory CatalogUoWFactory
	now        func() time.Time
}

func NewCreateMaterialCommandHandler(uowFactory CatalogUoWFactory) CreateMaterialCommandHandler {
	return CreateMaterialCommandHandler{
		uowFactory: uowFactory,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (h CreateMaterialCommandHandler) Handle(ctx context.Context, cmd CreateMaterialCommand) (*material.RawMaterial, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	m, err := material.NewRawMaterial(cmd.MaterialID(), cmd.Name(), cmd.Unit(),
		cmd.MinStock(), cmd.MaxStock(), cmd.UnitPrice(), cmd.SupplierID(), h.now())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.MaterialRepository().Add(ctx, m); err != nil {
		return nil, err
	}

	if cmd.OpeningStock().IsPositive() {
		posting, err := stockledger.New(uow.LedgerRepository(), false).WithClock(h.now).
			Receive(ctx, m.ID(), cmd.OpeningStock(), "opening balance")
		if err != nil {
			return nil, err
		}
		m = posting.Material
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	log.Info().Str("material_id", m.ID().String()).Str("name", m.Name()).Str("stock", m.StockQuantity().String()).Msg("material created")
	return m, nil
}
