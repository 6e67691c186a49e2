package commands

import (
	"context"

	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/core/domain/model/round"
	"roundplanner/internal/core/domain/model/stop"
)

// CreateRoundCommandHandler persists a new round with its stops and attaches
// its shipments, all in one transaction. Nothing is written unless every
// shipment can be attached.
type CreateRoundCommandHandler struct {
	uowFactory UoWFactory
}

// NewCreateRoundCommandHandler creates a handler for round creation.
func NewCreateRoundCommandHandler(uowFactory UoWFactory) CreateRoundCommandHandler {
	return CreateRoundCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the round creation command.
func (h CreateRoundCommandHandler) Handle(ctx context.Context, cmd CreateRoundCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	r, err := round.NewRound(cmd.RoundID(), cmd.Date(), cmd.CourierID(), cmd.Kind(), cmd.CompanyID())
	if err != nil {
		return err
	}

	stops, err := buildStops(r, cmd.ShipmentIDs())
	if err != nil {
		return err
	}
	if err = stop.ValidateSequence(stops); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.RoundRepository().Add(ctx, r); err != nil {
		return err
	}

	if err = uow.StopRepository().AddBatch(ctx, stops); err != nil {
		return err
	}

	if len(cmd.ShipmentIDs()) > 0 {
		if err = uow.ShipmentRepository().AttachToRound(ctx, r.ID(), cmd.ShipmentIDs()); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

func buildStops(r *round.Round, shipmentIDs []kernel.UUID) ([]*stop.Stop, error) {
	stops := make([]*stop.Stop, 0, len(shipmentIDs)+1)

	if r.Kind().IsCompanyTrip() {
		p, err := stop.NewPickup(kernel.NewUUID(), r.ID(), 0)
		if err != nil {
			return nil, err
		}
		stops = append(stops, p)
	}

	for _, shipmentID := range shipmentIDs {
		d, err := stop.NewDelivery(kernel.NewUUID(), r.ID(), len(stops), shipmentID)
		if err != nil {
			return nil, err
		}
		stops = append(stops, d)
	}

	return stops, nil
}
