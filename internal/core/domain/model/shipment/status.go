// Package shipment holds the part of the shipment model this service writes:
// its status vocabulary. Shipment rows themselves belong to the shipment
// collaborator and are reached through ports.ShipmentDirectory.
package shipment

import (
	"fmt"

	"roundplanner/internal/pkg/errs"
)

// Status is the lifecycle state of a shipment.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	Pending
	Suggested
	AssignedToRound
	InTransit
	Delivered
	Cancelled
	DeliveryIssue
)

var statusNames = map[Status]string{
	Pending:         "pending",
	Suggested:       "suggested",
	AssignedToRound: "assigned-to-round",
	InTransit:       "in-transit",
	Delivered:       "delivered",
	Cancelled:       "cancelled",
	DeliveryIssue:   "delivery-issue",
}

// ParseStatus converts the wire name of a status into a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("shipment status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("shipment status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name, or "unknown".
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}
