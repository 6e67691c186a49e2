package commands

import (
	"errors"
	"time"

	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/core/domain/model/round"
	"roundplanner/internal/pkg/errs"
	"roundplanner/internal/pkg/guard"
)

var ErrCreateRoundCommandIsNotConstructed = errors.New(
	"CreateRoundCommand must be created via NewCreateRoundCommand constructor",
)

// CreateRoundCommand creates a round with one delivery stop per shipment,
// in the given order, plus the pickup first for company trips.
//
// Example:
//
//	roundID := kernel.NewUUID()
//	cmd, err := NewCreateRoundCommand(roundID, date, &courierID, "company-trip", &companyID, shipmentIDs)
//	if err != nil {
//	    return fmt.Errorf("invalid round data: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create round: %w", err)
//	}
type CreateRoundCommand struct { //nolint:recvcheck //using for validation
	roundID     kernel.UUID
	date        time.Time
	courierID   *kernel.UUID
	kind        round.Kind
	companyID   *kernel.UUID
	shipmentIDs []kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateRoundCommand validates the input. A shipment listed twice is a
// conflict; kind and company consistency is checked by the round itself.
func NewCreateRoundCommand(
	roundID kernel.UUID,
	date time.Time,
	courierID *kernel.UUID,
	kind string,
	companyID *kernel.UUID,
	shipmentIDs []kernel.UUID,
) (CreateRoundCommand, error) {
	cmd := CreateRoundCommand{
		date:      date,
		courierID: courierID,
		companyID: companyID,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRoundID(roundID),
		cmd.setKind(kind),
		cmd.setShipmentIDs(shipmentIDs),
	); err != nil {
		return CreateRoundCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateRoundCommand) Validate() error {
	return c.guard.Validate(ErrCreateRoundCommandIsNotConstructed)
}

func (c CreateRoundCommand) RoundID() kernel.UUID {
	return c.roundID
}

func (c CreateRoundCommand) Date() time.Time {
	return c.date
}

func (c CreateRoundCommand) CourierID() *kernel.UUID {
	return c.courierID
}

func (c CreateRoundCommand) Kind() round.Kind {
	return c.kind
}

func (c CreateRoundCommand) CompanyID() *kernel.UUID {
	return c.companyID
}

// ShipmentIDs returns the shipments in delivery order.
func (c CreateRoundCommand) ShipmentIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.shipmentIDs...)
}

func (c *CreateRoundCommand) setRoundID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.roundID = id
	return nil
}

func (c *CreateRoundCommand) setKind(kind string) error {
	k, err := round.ParseKind(kind)
	if err != nil {
		return err
	}
	c.kind = k
	return nil
}

func (c *CreateRoundCommand) setShipmentIDs(ids []kernel.UUID) error {
	seen := make(map[kernel.UUID]bool, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return err
		}
		if seen[id] {
			return errs.NewConflictError("shipment ID", id.String())
		}
		seen[id] = true
	}
	c.shipmentIDs = append([]kernel.UUID(nil), ids...)
	return nil
}
