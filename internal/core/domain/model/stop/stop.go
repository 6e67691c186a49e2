package stop

import (
	"errors"
	"fmt"

	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/pkg/errs"
)

var (
	// ErrStopIsNotConstructed is returned when a Stop instance was not created
	// through NewPickup, NewDelivery or RestoreStop.
	ErrStopIsNotConstructed = errors.New("Stop must be created via NewPickup, NewDelivery or RestoreStop constructor")
)

// Stop is one place a courier visits during a round. Its position in the
// round is the order index; everything else is fixed at creation.
//
// A CompanyPickup carries no shipment. A ClientDelivery carries exactly one.
// Coordinates are not stored on the stop: they come from the shipment
// destination or the company address.
type Stop struct {
	id         kernel.UUID
	roundID    kernel.UUID
	orderIndex int
	kind       Kind
	shipmentID *kernel.UUID

	isConstructed bool
}

// NewPickup creates the company pickup of a round.
func NewPickup(id, roundID kernel.UUID, orderIndex int) (*Stop, error) {
	return RestoreStop(id, roundID, orderIndex, CompanyPickup, nil)
}

// NewDelivery creates a delivery stop for shipmentID.
func NewDelivery(id, roundID kernel.UUID, orderIndex int, shipmentID kernel.UUID) (*Stop, error) {
	return RestoreStop(id, roundID, orderIndex, ClientDelivery, &shipmentID)
}

// RestoreStop rebuilds a stop from persisted state.
//
// Returns an error if:
//   - id or roundID are not valid UUIDs
//   - orderIndex is negative
//   - kind is unknown
//   - shipmentID is nil for a delivery or non-nil for a pickup
func RestoreStop(id, roundID kernel.UUID, orderIndex int, kind Kind, shipmentID *kernel.UUID) (*Stop, error) {
	s := &Stop{isConstructed: true}

	if err := errors.Join(
		s.setID(id),
		s.setRound(roundID),
		s.setOrderIndex(orderIndex),
		s.setKindAndShipment(kind, shipmentID),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate ensures the Stop instance was properly constructed.
func (s *Stop) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrStopIsNotConstructed
	}
	return nil
}

func (s *Stop) ID() kernel.UUID {
	return s.id
}

func (s *Stop) Round() kernel.UUID {
	return s.roundID
}

func (s *Stop) OrderIndex() int {
	return s.orderIndex
}

func (s *Stop) Kind() Kind {
	return s.kind
}

// Shipment returns the delivered shipment, or nil for the pickup.
func (s *Stop) Shipment() *kernel.UUID {
	return s.shipmentID
}

// IsPickup reports whether s is the company pickup.
func (s *Stop) IsPickup() bool {
	return s.kind == CompanyPickup
}

// IsEqual compares two stops by identifier.
func (s *Stop) IsEqual(other *Stop) bool {
	return other != nil && s.id.IsEqual(other.id)
}

func (s *Stop) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Stop) setRound(roundID kernel.UUID) error {
	if err := roundID.Validate(); err != nil {
		return err
	}
	s.roundID = roundID
	return nil
}

func (s *Stop) setOrderIndex(orderIndex int) error {
	if orderIndex < 0 {
		return errs.NewValueIsInvalidErrorWithCause("order index", fmt.Errorf("%d is negative", orderIndex))
	}
	s.orderIndex = orderIndex
	return nil
}

func (s *Stop) setKindAndShipment(kind Kind, shipmentID *kernel.UUID) error {
	if err := kind.Validate(); err != nil {
		return err
	}

	switch {
	case kind == ClientDelivery && shipmentID == nil:
		return errs.NewValueIsRequiredError("shipment ID for client delivery")
	case kind == CompanyPickup && shipmentID != nil:
		return errs.NewValueIsInvalidError("shipment ID on company pickup")
	}

	s.kind = kind
	if shipmentID != nil {
		if err := shipmentID.Validate(); err != nil {
			return err
		}
		id := *shipmentID
		s.shipmentID = &id
	}
	return nil
}
