package conflictrepo

import (
	"context"
	"errors"

	"backoffice/internal/core/domain/model/conflict"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormConflictRepository implements ports.ConflictRepository using GORM.
type GormConflictRepository struct {
	db *gorm.DB
}

func NewGormConflictRepository(db *gorm.DB) *GormConflictRepository {
	return &GormConflictRepository{db: db}
}

func (r *GormConflictRepository) Add(ctx context.Context, record *conflict.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update stores the resolution of a record.
func (r *GormConflictRepository) Update(ctx context.Context, record *conflict.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	result := r.db.WithContext(ctx).
		Model(&RecordDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":      dto.Status,
			"resolution":  dto.Resolution,
			"resolved_by": dto.ResolvedBy,
			"resolved_at": dto.ResolvedAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("conflict record", record.ID().String())
	}

	return nil
}

func (r *GormConflictRepository) Get(ctx context.Context, id kernel.UUID) (*conflict.Record, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RecordDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("conflict record", id.String())
		}
		return nil, err
	}

	return ToDomain(dto)
}
