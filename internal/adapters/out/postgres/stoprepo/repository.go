package stoprepo

import (
	"context"
	"fmt"

	"roundplanner/internal/adapters/out/postgres/pgutil"
	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/core/domain/model/stop"
	"roundplanner/internal/pkg/errs"

	"gorm.io/gorm"
)

const writeOrderSavepoint = "write_order"

// GormStopRepository implements ports.StopRepository using GORM.
type GormStopRepository struct {
	db *gorm.DB
}

// NewGormStopRepository creates a new GORM stop repository.
func NewGormStopRepository(db *gorm.DB) *GormStopRepository {
	return &GormStopRepository{db: db}
}

// ListOrdered returns the round's stops by ascending order index.
func (r *GormStopRepository) ListOrdered(ctx context.Context, roundID kernel.UUID) ([]*stop.Stop, error) {
	if err := roundID.Validate(); err != nil {
		return nil, err
	}

	var dtos []StopDTO
	err := pgutil.Conn(ctx, r.db).
		Where("round_id = ?", roundID.Bytes()).
		Order("order_index").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	stops := make([]*stop.Stop, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		stops = append(stops, s)
	}

	return stops, nil
}

// WriteOrder sets one stop's order index. Inside a transaction the update
// runs under a savepoint, so a failed write leaves the transaction usable.
func (r *GormStopRepository) WriteOrder(ctx context.Context, roundID, stopID kernel.UUID, newIndex int) error {
	if newIndex < 0 {
		return errs.NewValueIsInvalidErrorWithCause("order index", fmt.Errorf("%d is negative", newIndex))
	}

	db := pgutil.Conn(ctx, r.db)
	inTx := pgutil.InTx(db)

	if inTx {
		if err := db.SavePoint(writeOrderSavepoint).Error; err != nil {
			return err
		}
	}

	result := db.Model(&StopDTO{}).
		Where("id = ? AND round_id = ?", stopID.Bytes(), roundID.Bytes()).
		Update("order_index", newIndex)

	err := result.Error
	switch {
	case err != nil && pgutil.IsUniqueViolation(err):
		err = errs.NewConflictErrorWithCause("order index", newIndex, err)
	case err == nil && result.RowsAffected == 0:
		err = errs.NewObjectNotFoundError("stop", stopID.String())
	}

	if err != nil && inTx {
		if rbErr := db.RollbackTo(writeOrderSavepoint).Error; rbErr != nil {
			return fmt.Errorf("%w (rollback to savepoint: %v)", err, rbErr)
		}
	}
	return err
}

// AddBatch inserts the initial stops of a round.
func (r *GormStopRepository) AddBatch(ctx context.Context, stops []*stop.Stop) error {
	if len(stops) == 0 {
		return nil
	}

	dtos := make([]StopDTO, 0, len(stops))
	for _, s := range stops {
		if err := s.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(s))
	}

	if err := pgutil.Conn(ctx, r.db).Create(&dtos).Error; err != nil {
		if pgutil.IsUniqueViolation(err) {
			return errs.NewConflictErrorWithCause("stop", pgutil.ConstraintName(err), err)
		}
		return err
	}

	return nil
}
