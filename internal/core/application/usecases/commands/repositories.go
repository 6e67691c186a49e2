// Package commands contains the operations that change a round: manual stop
// moves, route application, status changes and round creation.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"roundplanner/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// RoundRepoFactory provides access to the round repository within a transaction.
	RoundRepoFactory interface {
		RoundRepository() ports.RoundRepository
	}

	// StopRepoFactory provides access to the stop repository within a transaction.
	StopRepoFactory interface {
		StopRepository() ports.StopRepository
	}

	// ShipmentRepoFactory provides access to the shipment repository within a transaction.
	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// RoundStopsUoW covers commands that lock a round and read or rewrite its stops.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   r, err := uow.RoundRepository().GetForUpdate(ctx, roundID)
	//   stops, err := uow.StopRepository().ListOrdered(ctx, roundID)
	//   // ... write new indices
	//
	//   err = uow.Commit(ctx)
	RoundStopsUoW interface {
		TxManager
		RoundRepoFactory
		StopRepoFactory
	}

	// RoundStopsUoWFactory creates new RoundStopsUoW instances.
	RoundStopsUoWFactory interface {
		Create() RoundStopsUoW
	}

	// UoW spans rounds, stops and shipments. Used by round creation.
	UoW interface {
		TxManager
		RoundRepoFactory
		StopRepoFactory
		ShipmentRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
