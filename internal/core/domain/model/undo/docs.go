// Package undo keeps the bounded per-order history of applied status changes.
//
// Each order owns a fixed-capacity Stack. Pushing onto a full stack evicts the
// oldest entry, so only the latest changes can be undone.
package undo
