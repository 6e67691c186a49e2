// Package ports defines the contracts between the round planning core and
// its infrastructure: repositories bound to a unit of work, and the external
// collaborators (shipments, companies, route oracle, distance provider).
package ports

import (
	"context"

	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/core/domain/model/round"
)

// RoundRepository defines the persistence contract for round aggregates.
type RoundRepository interface {
	// Add persists a new round.
	Add(ctx context.Context, aggregate *round.Round) error

	// Update persists the round's status change.
	Update(ctx context.Context, aggregate *round.Round) error

	// Get retrieves a round by identifier.
	// Returns errs.ObjectNotFoundError if it does not exist.
	Get(ctx context.Context, id kernel.UUID) (*round.Round, error)

	// GetForUpdate retrieves a round and locks its row until the surrounding
	// transaction ends. Every writer of a round's stops or status goes through
	// it first, which serializes writers per round.
	// Returns errs.ObjectNotFoundError if it does not exist.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*round.Round, error)
}
