package round

import (
	"fmt"

	"roundplanner/internal/core/domain/model/shipment"
	"roundplanner/internal/pkg/errs"
)

var (
	// ErrInvalidStatus is returned for a status value outside the three round statuses.
	ErrInvalidStatus = errs.NewValueIsInvalidError("round status")

	// ErrStatusTransitionNotAllowed is returned when a completed round is moved
	// to any other status.
	ErrStatusTransitionNotAllowed = errs.NewValueIsInvalidError("round status transition")
)

// Status represents the lifecycle state of a round.
//
// State transitions:
//
//	Assigned <──> InProgress ──> Completed
//	    │                           ▲
//	    └───────────────────────────┘
//
// InProgress -> Assigned exists as a manual correction. Assigned -> Completed
// covers couriers that never marked the round as started. Nothing leaves
// Completed; setting Completed again is an idempotent re-apply.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Assigned is the initial status of every round.
	Assigned

	// InProgress means the courier is on the road.
	InProgress

	// Completed is final.
	Completed
)

var statusNames = map[Status]string{
	Assigned:   "assigned",
	InProgress: "in-progress",
	Completed:  "completed",
}

// shipmentCascade maps a round status to the status every shipment in the
// round takes when the round enters it. Statuses absent from the map do not
// cascade.
var shipmentCascade = map[Status]shipment.Status{
	Completed:  shipment.Delivered,
	InProgress: shipment.InTransit,
	Assigned:   shipment.AssignedToRound,
}

// ParseStatus converts the wire name ("assigned", "in-progress", "completed")
// into a Status. Any other value yields an error wrapping ErrInvalidStatus.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return Unknown, fmt.Errorf("%w: %q is not one of assigned, in-progress, completed", ErrInvalidStatus, s)
}

// Validate checks if the Status value is one of the three round statuses.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return fmt.Errorf("%w: %d is not a valid status", ErrInvalidStatus, s)
	}
	return nil
}

// String returns the wire name of the status, or "unknown".
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// ValidateTransition checks whether a round in status s may be set to next.
//
// Returns:
//   - an error wrapping ErrInvalidStatus if next is not a valid status
//   - an error wrapping ErrStatusTransitionNotAllowed if s is Completed and next is not
//   - nil otherwise
func (s Status) ValidateTransition(next Status) error {
	if err := next.Validate(); err != nil {
		return err
	}

	if s == Completed && next != Completed {
		return fmt.Errorf("%w: %s -> %s", ErrStatusTransitionNotAllowed, s, next)
	}

	return nil
}

// ShipmentCascade returns the shipment status that mirrors s and whether a
// mapping exists. Callers skip the cascade when ok is false.
//
// Example:
//
//	if target, ok := round.Completed.ShipmentCascade(); ok {
//	    // target == shipment.Delivered
//	}
func (s Status) ShipmentCascade() (shipment.Status, bool) {
	target, ok := shipmentCascade[s]
	return target, ok
}
