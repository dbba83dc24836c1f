package conflict

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"backoffice/internal/core/domain/model/kernel"
	"backoffice/internal/pkg/errs"
)

var (
	ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord constructor")
	ErrRecordAlreadyResolved  = errors.New("conflict record is already resolved")
	ErrConflictDetected       = errors.New("conflict detected")
)

type Priority string

const (
	PriorityNormal Priority = "NORMAL"
	PriorityHigh   Priority = "HIGH"
)

type Status string

const (
	StatusDetected Status = "DETECTED"
	StatusResolved Status = "RESOLVED"
)

func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToUpper(s)) {
	case StatusDetected:
		return StatusDetected, nil
	case StatusResolved:
		return StatusResolved, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("conflict status", fmt.Errorf("%q is not a valid status", s))
	}
}

// FieldDiff holds the writer's (local) and the stored (remote) value of one field.
type FieldDiff struct {
	Field  string `json:"field"`
	Local  string `json:"local"`
	Remote string `json:"remote"`
}

type Record struct {
	id          kernel.UUID
	entityTable string
	entityID    kernel.UUID
	detectedAt  time.Time
	fields      []FieldDiff
	priority    Priority
	status      Status
	resolution  string
	resolvedBy  string
	resolvedAt  *time.Time

	isConstructed bool
}

func NewRecord(
	id kernel.UUID,
	entityTable string,
	entityID kernel.UUID,
	fields []FieldDiff,
	priority Priority,
	detectedAt time.Time,
) (*Record, error) {
	if err := errors.Join(id.Validate(), entityID.Validate()); err != nil {
		return nil, err
	}
	if entityTable == "" {
		return nil, errs.NewValueIsRequiredError("entity table")
	}
	if len(fields) == 0 {
		return nil, errs.NewValueIsRequiredError("conflict fields")
	}
	if priority != PriorityNormal && priority != PriorityHigh {
		return nil, errs.NewValueIsInvalidErrorWithCause("priority", fmt.Errorf("%q is not a valid priority", priority))
	}

	return &Record{
		id:            id,
		entityTable:   entityTable,
		entityID:      entityID,
		detectedAt:    detectedAt,
		fields:        append([]FieldDiff(nil), fields...),
		priority:      priority,
		status:        StatusDetected,
		isConstructed: true,
	}, nil
}

// RestoreRecord rebuilds a record loaded from storage.
func RestoreRecord(
	id kernel.UUID,
	entityTable string,
	entityID kernel.UUID,
	fields []FieldDiff,
	priority Priority,
	status Status,
	detectedAt time.Time,
	resolution, resolvedBy string,
	resolvedAt *time.Time,
) *Record {
	return &Record{
		id:            id,
		entityTable:   entityTable,
		entityID:      entityID,
		detectedAt:    detectedAt,
		fields:        fields,
		priority:      priority,
		status:        status,
		resolution:    resolution,
		resolvedBy:    resolvedBy,
		resolvedAt:    resolvedAt,
		isConstructed: true,
	}
}

func (r *Record) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRecordIsNotConstructed
	}
	return nil
}

func (r *Record) ID() kernel.UUID        { return r.id }
func (r *Record) EntityTable() string    { return r.entityTable }
func (r *Record) EntityID() kernel.UUID  { return r.entityID }
func (r *Record) DetectedAt() time.Time  { return r.detectedAt }
func (r *Record) Fields() []FieldDiff    { return append([]FieldDiff(nil), r.fields...) }
func (r *Record) Priority() Priority     { return r.priority }
func (r *Record) Status() Status         { return r.status }
func (r *Record) Resolution() string     { return r.resolution }
func (r *Record) ResolvedBy() string     { return r.resolvedBy }
func (r *Record) ResolvedAt() *time.Time { return r.resolvedAt }

// Resolve closes the record. Resolving twice is an error.
func (r *Record) Resolve(resolution, actor string, at time.Time) error {
	if r.status == StatusResolved {
		return ErrRecordAlreadyResolved
	}
	if strings.TrimSpace(resolution) == "" {
		return errs.NewValueIsRequiredError("resolution")
	}
	if strings.TrimSpace(actor) == "" {
		return errs.NewValueIsRequiredError("actor")
	}
	r.status = StatusResolved
	r.resolution = resolution
	r.resolvedBy = actor
	r.resolvedAt = &at
	return nil
}

// DetectedError rejects a write that diverged from the stored row.
type DetectedError struct {
	RecordID    kernel.UUID
	EntityTable string
	EntityID    kernel.UUID
	Fields      []string
	Priority    Priority
}

func NewDetectedError(r *Record) *DetectedError {
	fields := make([]string, 0, len(r.fields))
	for _, f := range r.fields {
		fields = append(fields, f.Field)
	}
	return &DetectedError{
		RecordID:    r.id,
		EntityTable: r.entityTable,
		EntityID:    r.entityID,
		Fields:      fields,
		Priority:    r.priority,
	}
}

func (e *DetectedError) Error() string {
	return fmt.Sprintf("%s: %s %s diverged on [%s] (record %s, priority %s)",
		ErrConflictDetected, e.EntityTable, e.EntityID, strings.Join(e.Fields, ", "), e.RecordID, e.Priority)
}

func (e *DetectedError) Unwrap() error {
	return ErrConflictDetected
}
