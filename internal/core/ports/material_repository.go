package ports

import (
	"context"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/core/domain/model/material"
)

// MaterialRepository persists raw material master data. It never writes the
// stock balance; see LedgerRepository.
type MaterialRepository interface {
	Add(ctx context.Context, aggregate *material.RawMaterial) error

	// Update persists editable fields with the same version contract as
	// OrderRepository.Update.
	Update(ctx context.Context, aggregate *material.RawMaterial) error

	Get(ctx context.Context, id kernel.UUID) (*material.RawMaterial, error)

	// List returns every material ordered by name.
	List(ctx context.Context) ([]*material.RawMaterial, error)

	AddSupplier(ctx context.Context, supplier *material.Supplier) error
}
