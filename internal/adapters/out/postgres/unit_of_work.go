// Package postgres provides the GORM-based Unit of Work and the schema of
// the round planner.
//
// A unit of work wraps one database transaction. Repositories obtained from
// it while the transaction is open run inside that transaction; before Begin
// or after Commit/Rollback they use the plain connection.
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if _, err := uow.RoundRepository().GetForUpdate(ctx, roundID); err != nil {
//	    return err
//	}
//	if err := uow.StopRepository().WriteOrder(ctx, roundID, stopID, 2); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Stop order indices are checked at commit, so Commit may return an
// errs.ConflictError even though every WriteOrder succeeded.
//
// Each UnitOfWork is single-use per transaction and must not be shared
// between goroutines.
package postgres

import (
	"context"

	"roundplanner/internal/adapters/out/postgres/pgutil"
	"roundplanner/internal/adapters/out/postgres/roundrepo"
	"roundplanner/internal/adapters/out/postgres/shipmentrepo"
	"roundplanner/internal/adapters/out/postgres/stoprepo"
	"roundplanner/internal/core/ports"
	"roundplanner/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork with its own transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one database transaction.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin starts the transaction. Calling Begin twice is a no-op.
//
// The transaction keeps the values of ctx but not its cancellation: once a
// write sequence has started it runs to Commit or Rollback.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(context.WithoutCancel(ctx)).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	uow.tx = tx
	return nil
}

// Commit makes the transaction's changes permanent. A deferred unique
// constraint failing at this point is reported as errs.ConflictError.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil && pgutil.IsUniqueViolation(err) {
		return errs.NewConflictErrorWithCause("order index", pgutil.ConstraintName(err), err)
	}
	return err
}

// Rollback discards the transaction. It returns gorm.ErrInvalidTransaction
// when no transaction is open, which callers deferring it may ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// RoundRepository returns a round repository bound to the current transaction.
func (uow *GormUnitOfWork) RoundRepository() ports.RoundRepository {
	return roundrepo.NewGormRoundRepository(uow.conn())
}

// StopRepository returns a stop repository bound to the current transaction.
func (uow *GormUnitOfWork) StopRepository() ports.StopRepository {
	return stoprepo.NewGormStopRepository(uow.conn())
}

// ShipmentRepository returns a shipment repository bound to the current transaction.
func (uow *GormUnitOfWork) ShipmentRepository() ports.ShipmentRepository {
	return shipmentrepo.NewGormShipmentRepository(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
