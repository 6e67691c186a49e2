// Package roundrepo persists round aggregates with GORM.
package roundrepo

import (
	"time"

	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/core/domain/model/round"

	"github.com/google/uuid"
)

// RoundDTO is the row of the rounds table. Kind and status are stored by
// their wire names.
type RoundDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Date      time.Time  `gorm:"type:date;not null;index"`
	CourierID *uuid.UUID `gorm:"type:uuid;index"`
	Kind      string     `gorm:"type:varchar(32);not null"`
	CompanyID *uuid.UUID `gorm:"type:uuid"`
	Status    string     `gorm:"type:varchar(32);not null"`
}

// TableName overrides GORM's default naming convention to use "rounds".
func (RoundDTO) TableName() string {
	return "rounds"
}

func optionalID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func restoreID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func fromDomain(r *round.Round) RoundDTO {
	return RoundDTO{
		ID:        r.ID().Bytes(),
		Date:      r.Date(),
		CourierID: optionalID(r.Courier()),
		Kind:      r.Kind().String(),
		CompanyID: optionalID(r.Company()),
		Status:    r.Status().String(),
	}
}

func toDomain(dto RoundDTO) (*round.Round, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	courierID, err := restoreID(dto.CourierID)
	if err != nil {
		return nil, err
	}

	companyID, err := restoreID(dto.CompanyID)
	if err != nil {
		return nil, err
	}

	kind, err := round.ParseKind(dto.Kind)
	if err != nil {
		return nil, err
	}

	status, err := round.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return round.RestoreRound(id, dto.Date, courierID, kind, companyID, status)
}
