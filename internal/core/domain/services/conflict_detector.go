package services

import (
	"slices"
	"sort"

	"backoffice/internal/core/domain/model/conflict"
	"backoffice/internal/core/domain/model/material"
	"backoffice/internal/core/domain/model/order"
)

// FieldPolicy tells the detector how to treat the fields of one table.
type FieldPolicy struct {
	// Protected fields never follow last-write-wins.
	Protected map[string]struct{}
	// HighPriority fields raise the record priority to HIGH.
	HighPriority map[string]struct{}
}

// Verdict is the outcome of comparing a writer's base snapshot with the row.
type Verdict struct {
	Diffs    []conflict.FieldDiff
	Priority conflict.Priority
}

// HasConflict reports whether the write must be rejected.
func (v Verdict) HasConflict() bool {
	return len(v.Diffs) > 0
}

// ConflictDetector compares the snapshot a writer edited against with the
// current row.
//
// When versions match the write proceeds. Otherwise every field the writer
// saw is compared: a diverged field outside the change set is a conflict, and
// so is a diverged protected field inside it. Non-protected fields the writer
// changes itself are rebased silently. Protected and high priority fields
// missing from a stale base count as diverged, so a bare version token cannot
// overwrite them.
type ConflictDetector struct {
	policies map[string]FieldPolicy
}

func NewConflictDetector() ConflictDetector {
	return ConflictDetector{policies: DefaultFieldPolicies()}
}

// DefaultFieldPolicies returns the policies for orders and raw materials.
func DefaultFieldPolicies() map[string]FieldPolicy {
	return map[string]FieldPolicy{
		conflict.TableOrders: {
			Protected: set(order.FieldStatus, order.FieldStockCommitted),
			HighPriority: set(order.FieldStatus, order.FieldStockCommitted, order.FieldTotal, order.FieldReceived,
				order.FieldDiscount, order.FieldLaborCost, order.FieldNetProfit),
		},
		conflict.TableRawMaterials: {
			Protected:    set(material.FieldStockQuantity),
			HighPriority: set(material.FieldStockQuantity, material.FieldUnitPrice),
		},
	}
}

// Detect returns the conflicting fields, if any. changes maps field names to
// the values the writer wants to store.
func (d ConflictDetector) Detect(table string, base, current conflict.Snapshot, changes map[string]string) Verdict {
	if base.Version == current.Version {
		return Verdict{Priority: conflict.PriorityNormal}
	}

	policy := d.policies[table]
	fields := make([]string, 0, len(base.Fields))
	for f := range base.Fields {
		fields = append(fields, f)
	}
	for _, guarded := range []map[string]struct{}{policy.Protected, policy.HighPriority} {
		for f := range guarded {
			if _, seen := base.Fields[f]; !seen && !slices.Contains(fields, f) {
				fields = append(fields, f)
			}
		}
	}
	sort.Strings(fields)

	verdict := Verdict{Priority: conflict.PriorityNormal}
	for _, field := range fields {
		baseValue, seen := base.Fields[field]
		remote, ok := current.Value(field)
		if !ok || (seen && remote == baseValue) {
			continue
		}

		local, inChangeSet := changes[field]
		_, protected := policy.Protected[field]
		if inChangeSet && !protected {
			continue
		}
		if !inChangeSet {
			local = baseValue
		}

		verdict.Diffs = append(verdict.Diffs, conflict.FieldDiff{Field: field, Local: local, Remote: remote})
		if _, high := policy.HighPriority[field]; high {
			verdict.Priority = conflict.PriorityHigh
		}
	}
	return verdict
}

func set(fields ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		out[f] = struct{}{}
	}
	return out
}
