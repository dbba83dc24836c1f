// Package conflictrepo persists conflict records.
package conflictrepo

import (
	"time"

	"backoffice/internal/core/domain/model/conflict"
	"backoffice/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// RecordDTO is one conflict_records row. The diverged fields are kept as a
// JSON array of {field, local, remote}.
type RecordDTO struct {
	ID          uuid.UUID                                `gorm:"type:uuid;primaryKey"`
	EntityTable string                                   `gorm:"type:varchar(64);not null"`
	EntityID    uuid.UUID                                `gorm:"type:uuid;not null;index"`
	Fields      datatypes.JSONType[[]conflict.FieldDiff] `gorm:"type:jsonb;not null"`
	Priority    string                                   `gorm:"type:varchar(16);not null"`
	Status      string                                   `gorm:"type:varchar(16);not null;index"`
	DetectedAt  time.Time                                `gorm:"not null;index"`
	Resolution  string                                   `gorm:"type:text"`
	ResolvedBy  string                                   `gorm:"type:varchar(128)"`
	ResolvedAt  *time.Time
}

func (RecordDTO) TableName() string {
	return "conflict_records"
}

func fromDomain(r *conflict.Record) RecordDTO {
	return RecordDTO{
		ID:          r.ID().Bytes(),
		EntityTable: r.EntityTable(),
		EntityID:    r.EntityID().Bytes(),
		Fields:      datatypes.NewJSONType(r.Fields()),
		Priority:    string(r.Priority()),
		Status:      string(r.Status()),
		DetectedAt:  r.DetectedAt(),
		Resolution:  r.Resolution(),
		ResolvedBy:  r.ResolvedBy(),
		ResolvedAt:  r.ResolvedAt(),
	}
}

// ToDomain rebuilds a record from its row. The conflict queries reuse it.
func ToDomain(dto RecordDTO) (*conflict.Record, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	entityID, err := kernel.UUIDFromGoogle(dto.EntityID)
	if err != nil {
		return nil, err
	}
	status, err := conflict.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return conflict.RestoreRecord(
		id,
		dto.EntityTable,
		entityID,
		dto.Fields.Data(),
		conflict.Priority(dto.Priority),
		status,
		dto.DetectedAt,
		dto.Resolution,
		dto.ResolvedBy,
		dto.ResolvedAt,
	), nil
}
