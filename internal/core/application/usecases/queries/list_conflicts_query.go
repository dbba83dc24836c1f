package queries

import (
	"errors"
	"time"

	"backoffice/internal/core/domain/model/conflict"
	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/guard"
)

var ErrListConflictsQueryIsNotConstructed = errors.New(
	"ListConflictsQuery must be created via NewListConflictsQuery constructor",
)

// ListConflictsQuery lists conflict records, newest first. An empty status
// lists every record.
type ListConflictsQuery struct {
	status conflict.Status

	guard guard.ConstructorGuard
}

func NewListConflictsQuery(status string) (ListConflictsQuery, error) {
	q := ListConflictsQuery{guard: guard.NewConstructorGuard()}
	if status == "" {
		return q, nil
	}
	parsed, err := conflict.ParseStatus(status)
	if err != nil {
		return ListConflictsQuery{}, err
	}
	q.status = parsed
	return q, nil
}

func (q ListConflictsQuery) Validate() error {
	return q.guard.Validate(ErrListConflictsQueryIsNotConstructed)
}

func (q ListConflictsQuery) Status() conflict.Status { return q.status }

type ConflictView struct {
	ID          kernel.UUID
	EntityTable string
	EntityID    kernel.UUID
	Fields      []conflict.FieldDiff
	Priority    string
	Status      string
	DetectedAt  time.Time
	Resolution  string
	ResolvedBy  string
	ResolvedAt  *time.Time
}
