package queries

import (
	"database/sql"
	"errors"

	"backoffice/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func optionalUUID(id uuid.NullUUID) (*kernel.UUID, error) {
	if !id.Valid {
		return nil, nil //nolint:nilnil // absent reference
	}
	k, err := kernel.UUIDFromGoogle(id.UUID)
	if err != nil {
		return nil, err
	}
	return &k, nil
}
