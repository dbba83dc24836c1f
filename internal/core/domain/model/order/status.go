package order

import (
	"fmt"
	"strings"

	"backoffice/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	PENDING ──> CONFIRMED ──> PROCESSING ──> READY_TO_SHIP ──> SHIPPED ──> DELIVERED
//	   │            │              │
//	   └────────────┴──────────────┴──> CANCELLED ──> REFUNDED
//
// DELIVERED and REFUNDED are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota
	Pending
	Confirmed
	Processing
	ReadyToShip
	Shipped
	Delivered
	Cancelled
	Refunded
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:     "UNKNOWN",
		Pending:     "PENDING",
		Confirmed:   "CONFIRMED",
		Processing:  "PROCESSING",
		ReadyToShip: "READY_TO_SHIP",
		Shipped:     "SHIPPED",
		Delivered:   "DELIVERED",
		Cancelled:   "CANCELLED",
		Refunded:    "REFUNDED",
	}
}

// getSuccessors returns the only edges an order may follow.
func getSuccessors() map[Status][]Status {
	//nolint:exhaustive // Unknown has no edges
	return map[Status][]Status{
		Pending:     {Confirmed, Cancelled},
		Confirmed:   {Processing, Cancelled},
		Processing:  {ReadyToShip, Cancelled},
		ReadyToShip: {Shipped},
		Shipped:     {Delivered},
		Cancelled:   {Refunded},
		Delivered:   {},
		Refunded:    {},
	}
}

// AllStatuses lists every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, Confirmed, Processing, ReadyToShip, Shipped, Delivered, Cancelled, Refunded}
}

// ParseStatus converts the persisted or wire name of a status back to a Status.
// Matching is case-insensitive.
func ParseStatus(s string) (Status, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for status, str := range getStatusStrings() {
		if status != Unknown && str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the eight lifecycle states.
func (s Status) Validate() error {
	if _, ok := getSuccessors()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Successors returns a copy of the statuses reachable from s in one step.
func (s Status) Successors() []Status {
	return append([]Status(nil), getSuccessors()[s]...)
}

// IsTerminal reports whether no transition may leave s.
func (s Status) IsTerminal() bool {
	next, ok := getSuccessors()[s]
	return ok && len(next) == 0
}

// CanTransitionTo reports whether target is a direct successor of s.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range getSuccessors()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// releasesStock reports whether entering s gives committed stock back.
func (s Status) releasesStock() bool {
	return s == Cancelled || s == Refunded
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	parsed, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
