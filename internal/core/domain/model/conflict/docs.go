// Package conflict models disagreements between concurrent writers of the
// same order or raw material row.
//
// A writer edits against a Snapshot it read earlier. When the row moved on in
// the meantime and the divergence cannot be merged, a Record is persisted with
// one FieldDiff per divergent field and the write is rejected with a
// DetectedError. Records are resolved out-of-band and never deleted.
package conflict
