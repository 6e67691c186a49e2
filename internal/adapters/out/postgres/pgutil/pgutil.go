// Package pgutil holds helpers shared by the GORM repositories.
package pgutil

import (
	"context"
	"errors"

	"roundplanner/internal/core/domain/model/kernel"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

// InTx reports whether db runs inside a transaction.
func InTx(db *gorm.DB) bool {
	_, ok := db.Statement.ConnPool.(gorm.TxCommitter)
	return ok
}

// Conn returns db bound to ctx. A transaction keeps the context it was begun
// with, so cancelling ctx never interrupts a statement half-way through a
// unit of work.
func Conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if InTx(db) {
		return db
	}
	return db.WithContext(ctx)
}

// IsUniqueViolation reports whether err comes from a unique constraint,
// translated by GORM or raw from the driver.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// ConstraintName returns the violated constraint, or "" when err does not
// carry one.
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

// Location builds a location from nullable coordinate columns. It returns
// nil when either column is NULL.
func Location(lat, lng *float64) (*kernel.Location, error) {
	if lat == nil || lng == nil {
		return nil, nil //nolint:nilnil // no coordinates is not an error
	}
	loc, err := kernel.NewLocation(*lat, *lng)
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

// IDs converts domain identifiers for use with "= ANY(?)".
func IDs(ids []kernel.UUID) pq.StringArray {
	out := make(pq.StringArray, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
