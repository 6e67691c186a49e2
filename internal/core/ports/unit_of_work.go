package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction. The transaction ignores
	// cancellation of ctx so writes are never interrupted half-way; deadlines
	// still come from the database connection settings.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns errs.ConflictError if deferred order index constraints fail.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// RoundRepository returns a RoundRepository bound to the current transaction.
	RoundRepository() RoundRepository

	// StopRepository returns a StopRepository bound to the current transaction.
	StopRepository() StopRepository

	// ShipmentRepository returns a ShipmentRepository bound to the current transaction.
	ShipmentRepository() ShipmentRepository
}
