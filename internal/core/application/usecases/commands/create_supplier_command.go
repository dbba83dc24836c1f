package commands

import (
	"context"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/material"
)

// CreateSupplierCommandHandler stores supplier master data. The supplier
// entity validates its own input, so no separate command type is needed.
type CreateSupplierCommandHandler struct {
	uowFactory CatalogUoWFactory
}

func NewCreateSupplierCommandHandler(uowFactory CatalogUoWFactory) CreateSupplierCommandHandler {
	return CreateSupplierCommandHandler{uowFactory: uowFactory}
}

func (h CreateSupplierCommandHandler) Handle(
	ctx context.Context, id kernel.UUID, name, contactEmail, phone string,
) (*material.Supplier, error) {
	supplier, err := material.NewSupplier(id, name, contactEmail, phone)
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

	if err = uow.MaterialRepository().AddSupplier(ctx, supplier); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return supplier, nil
}
