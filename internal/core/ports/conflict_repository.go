package ports

import (
	"context"

	"backoffice/internal/core/domain/model/conflict"
	"backoffice/internal/core/domain/model/kernel"
)

type ConflictRepository interface {
	Add(ctx context.Context, record *conflict.Record) error
	Update(ctx context.Context, record *conflict.Record) error
	Get(ctx context.Context, id kernel.UUID) (*conflict.Record, error)
}
