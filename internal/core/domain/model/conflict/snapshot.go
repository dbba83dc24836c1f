package conflict

import "maps"

const (
	TableOrders       = "orders"
	TableRawMaterials = "raw_materials"
)

// Snapshot is a writer's view of a row: its version and every comparable field
// rendered in canonical string form.
type Snapshot struct {
	Version int64
	Fields  map[string]string
}

func NewSnapshot(version int64, fields map[string]string) Snapshot {
	return Snapshot{Version: version, Fields: maps.Clone(fields)}
}

func (s Snapshot) Value(field string) (string, bool) {
	v, ok := s.Fields[field]
	return v, ok
}

// IsZero reports a snapshot the caller did not supply.
func (s Snapshot) IsZero() bool {
	return s.Version == 0 && len(s.Fields) == 0
}
