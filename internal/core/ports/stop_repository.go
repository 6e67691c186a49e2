package ports

import (
	"context"

	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/core/domain/model/stop"
)

// StopRepository is the authoritative store of a round's stops.
//
// It does not renumber siblings: callers supply the index values of the
// whole affected set in one unit of work. Order indices are unique per round
// at commit time; a write that leaves a duplicate makes Commit fail with
// errs.ConflictError.
type StopRepository interface {
	// ListOrdered returns the round's stops sorted by ascending order index.
	ListOrdered(ctx context.Context, roundID kernel.UUID) ([]*stop.Stop, error)

	// WriteOrder sets one stop's order index.
	// Returns errs.ObjectNotFoundError if stopID does not belong to roundID.
	// A failed write does not abort the surrounding transaction.
	WriteOrder(ctx context.Context, roundID, stopID kernel.UUID, newIndex int) error

	// AddBatch persists the initial stops of a new round.
	AddBatch(ctx context.Context, stops []*stop.Stop) error
}
