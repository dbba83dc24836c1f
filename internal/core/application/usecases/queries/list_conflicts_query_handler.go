package queries

import (
	"context"
	"database/sql"

	"backoffice/internal/core/domain/model/conflict"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ListConflictsQueryHandler struct {
	db *gorm.DB
}

func NewListConflictsQueryHandler(db *gorm.DB) (ListConflictsQueryHandler, error) {
	if db == nil {
		return ListConflictsQueryHandler{}, errs.NewValueIsRequiredError("db")
	}
	return ListConflictsQueryHandler{db: db}, nil
}

func (h ListConflictsQueryHandler) Handle(ctx context.Context, query ListConflictsQuery) ([]ConflictView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id, entity_table, entity_id, fields, priority, status,
			detected_at, resolution, resolved_by, resolved_at
		FROM conflict_records
		WHERE ?::text = '' OR status = ?
		ORDER BY detected_at DESC, id
	`, string(query.Status()), string(query.Status())).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]ConflictView, 0)
	for rows.Next() {
		var (
			view                 ConflictView
			id, entityID         uuid.UUID
			fields               datatypes.JSONType[[]conflict.FieldDiff]
			resolution, resolver sql.NullString
			resolvedAt           sql.NullTime
		)
		if err = rows.Scan(
			&id, &view.EntityTable, &entityID, &fields, &view.Priority, &view.Status,
			&view.DetectedAt, &resolution, &resolver, &resolvedAt,
		); err != nil {
			return nil, err
		}
		if view.ID, err = kernel.UUIDFromGoogle(id); err != nil {
			return nil, err
		}
		if view.EntityID, err = kernel.UUIDFromGoogle(entityID); err != nil {
			return nil, err
		}
		view.Fields = fields.Data()
		view.Resolution = resolution.String
		view.ResolvedBy = resolver.String
		if resolvedAt.Valid {
			at := resolvedAt.Time
			view.ResolvedAt = &at
		}
		views = append(views, view)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}
