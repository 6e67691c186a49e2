package roundrepo

import (
	"context"
	"errors"

	"roundplanner/internal/adapters/out/postgres/pgutil"
	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/core/domain/model/round"
	"roundplanner/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRoundRepository implements ports.RoundRepository using GORM.
type GormRoundRepository struct {
	db *gorm.DB
}

// NewGormRoundRepository creates a new GORM round repository.
func NewGormRoundRepository(db *gorm.DB) *GormRoundRepository {
	return &GormRoundRepository{db: db}
}

// Add saves a new round to the database.
func (r *GormRoundRepository) Add(ctx context.Context, aggregate *round.Round) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := pgutil.Conn(ctx, r.db).Create(&dto).Error; err != nil {
		if pgutil.IsUniqueViolation(err) {
			return errs.NewConflictErrorWithCause("round ID", aggregate.ID().String(), err)
		}
		return err
	}

	return nil
}

// Update saves the round's mutable state.
func (r *GormRoundRepository) Update(ctx context.Context, aggregate *round.Round) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := pgutil.Conn(ctx, r.db).Model(&RoundDTO{}).Where("id = ?", dto.ID).
		Updates(map[string]any{"status": dto.Status, "courier_id": dto.CourierID})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("round", aggregate.ID().String())
	}

	return nil
}

// Get retrieves a round by ID.
func (r *GormRoundRepository) Get(ctx context.Context, id kernel.UUID) (*round.Round, error) {
	return r.get(pgutil.Conn(ctx, r.db), id)
}

// GetForUpdate retrieves a round with SELECT ... FOR UPDATE. Outside a
// transaction the lock is released as soon as the statement completes.
func (r *GormRoundRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*round.Round, error) {
	return r.get(pgutil.Conn(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormRoundRepository) get(db *gorm.DB, id kernel.UUID) (*round.Round, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RoundDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("round", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
