package services

import (
	"strings"

	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/core/domain/model/round"
	"roundplanner/internal/core/domain/model/stop"
)

// PickupRefPrefix prefixes the company ID in the external identifier of a
// company pickup.
const PickupRefPrefix = "company-"

// StopRef identifies a stop in a route exchanged with the outside world.
// Deliveries are known by their stop ID. The pickup is known by the company
// it picks up from, since the oracle never sees pickup row IDs.
type StopRef struct {
	pickup bool
	id     kernel.UUID
}

// PickupRef refers to the pickup at companyID.
func PickupRef(companyID kernel.UUID) StopRef {
	return StopRef{pickup: true, id: companyID}
}

// DeliveryRef refers to the stop with stopID.
func DeliveryRef(stopID kernel.UUID) StopRef {
	return StopRef{id: stopID}
}

// RefOf returns the external reference of s within r.
func RefOf(r *round.Round, s *stop.Stop) StopRef {
	if s.IsPickup() && r.Company() != nil {
		return PickupRef(*r.Company())
	}
	return DeliveryRef(s.ID())
}

// ParseStopRef decodes "company-<uuid>" or "<uuid>".
func ParseStopRef(s string) (StopRef, error) {
	if rest, ok := strings.CutPrefix(s, PickupRefPrefix); ok {
		id, err := kernel.UUIDFromString(rest)
		if err != nil {
			return StopRef{}, err
		}
		return PickupRef(id), nil
	}

	id, err := kernel.UUIDFromString(s)
	if err != nil {
		return StopRef{}, err
	}
	return DeliveryRef(id), nil
}

func (r StopRef) IsPickup() bool {
	return r.pickup
}

// ID is the company ID of a pickup ref and the stop ID of a delivery ref.
func (r StopRef) ID() kernel.UUID {
	return r.id
}

func (r StopRef) String() string {
	if r.pickup {
		return PickupRefPrefix + r.id.String()
	}
	return r.id.String()
}
