package commands

import (
	"context"
	"log/slog"

	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/core/ports"
)

// SetRoundStatusResult separates the round update from the shipment cascade.
// A failed cascade after a committed round update is a partial success:
// RoundUpdated is true, CascadeApplied is false and Warning explains why.
type SetRoundStatusResult struct {
	RoundUpdated   bool
	CascadeApplied bool
	Warning        string
}

// SetRoundStatusCommandHandler applies round status transitions.
//
// The round status is committed first, then every shipment of the round's
// delivery stops receives the mapped status through the shipment directory.
//
// Example:
//
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err // nothing changed
//	}
//	if !result.CascadeApplied {
//	    log.Println(result.Warning)
//	}
type SetRoundStatusCommandHandler struct {
	uowFactory RoundStopsUoWFactory
	shipments  ports.ShipmentDirectory
	logger     *slog.Logger
}

// NewSetRoundStatusCommandHandler creates a handler for round status changes.
func NewSetRoundStatusCommandHandler(
	uowFactory RoundStopsUoWFactory,
	shipments ports.ShipmentDirectory,
	logger *slog.Logger,
) SetRoundStatusCommandHandler {
	return SetRoundStatusCommandHandler{
		uowFactory: uowFactory,
		shipments:  shipments,
		logger:     logger.With("component", "round-status"),
	}
}

// Handle validates the transition, persists it and runs the cascade.
func (h SetRoundStatusCommandHandler) Handle(ctx context.Context, cmd SetRoundStatusCommand) (SetRoundStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return SetRoundStatusResult{}, err
	}

	shipmentIDs, err := h.updateRound(ctx, cmd)
	if err != nil {
		return SetRoundStatusResult{}, err
	}

	target, ok := cmd.Status().ShipmentCascade()
	if !ok {
		return SetRoundStatusResult{RoundUpdated: true}, nil
	}
	if len(shipmentIDs) == 0 {
		return SetRoundStatusResult{RoundUpdated: true, CascadeApplied: true}, nil
	}

	if err = h.shipments.BulkSetStatus(ctx, shipmentIDs, target); err != nil {
		h.logger.WarnContext(ctx, "round status updated but shipment cascade failed",
			"round_id", cmd.RoundID().String(),
			"status", cmd.Status().String(),
			"shipments", len(shipmentIDs),
			"error", err,
		)
		return SetRoundStatusResult{
			RoundUpdated:   true,
			CascadeApplied: false,
			Warning:        "round status updated but shipment status cascade failed: " + err.Error(),
		}, nil
	}

	return SetRoundStatusResult{RoundUpdated: true, CascadeApplied: true}, nil
}

// updateRound commits the new status and returns the shipments to cascade to.
func (h SetRoundStatusCommandHandler) updateRound(ctx context.Context, cmd SetRoundStatusCommand) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	roundRepo := uow.RoundRepository()

	r, err := roundRepo.GetForUpdate(ctx, cmd.RoundID())
	if err != nil {
		return nil, err
	}

	if err = r.SetStatus(cmd.Status()); err != nil {
		return nil, err
	}

	if err = roundRepo.Update(ctx, r); err != nil {
		return nil, err
	}

	stops, err := uow.StopRepository().ListOrdered(ctx, cmd.RoundID())
	if err != nil {
		return nil, err
	}

	shipmentIDs := make([]kernel.UUID, 0, len(stops))
	for _, s := range stops {
		if id := s.Shipment(); id != nil {
			shipmentIDs = append(shipmentIDs, *id)
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return shipmentIDs, nil
}
