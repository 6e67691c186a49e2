package ports

import (
	"context"

	"roundplanner/internal/core/domain/model/kernel"
)

// ShipmentRepository writes shipment rows inside a unit of work. It covers
// only what round creation needs.
type ShipmentRepository interface {
	// AttachToRound sets round_id on every shipment and marks it
	// assigned-to-round.
	// Returns errs.ObjectNotFoundError for a missing shipment and
	// errs.ConflictError for a shipment that already belongs to a round.
	AttachToRound(ctx context.Context, roundID kernel.UUID, shipmentIDs []kernel.UUID) error
}
