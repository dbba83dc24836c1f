// Package kernel holds the primitives shared by every aggregate of the
// back-office domain.
//
// The package includes:
//   - UUID: an identity value object that rejects the nil UUID
package kernel
