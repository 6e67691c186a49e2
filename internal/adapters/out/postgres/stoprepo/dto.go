// Package stoprepo persists the stops of a round with GORM.
//
// Order indices are unique per round through the deferrable constraint
// created by postgres.Migrate, so swaps inside a transaction are legal and a
// duplicate only fails at commit.
package stoprepo

import (
	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/core/domain/model/stop"

	"github.com/google/uuid"
)

// StopDTO is the row of the stops table.
type StopDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RoundID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	OrderIndex int        `gorm:"not null"`
	Kind       string     `gorm:"type:varchar(32);not null"`
	ShipmentID *uuid.UUID `gorm:"type:uuid"`
}

// TableName overrides GORM's default naming convention to use "stops".
func (StopDTO) TableName() string {
	return "stops"
}

func fromDomain(s *stop.Stop) StopDTO {
	var shipmentID *uuid.UUID
	if id := s.Shipment(); id != nil {
		raw := id.Bytes()
		shipmentID = &raw
	}

	return StopDTO{
		ID:         s.ID().Bytes(),
		RoundID:    s.Round().Bytes(),
		OrderIndex: s.OrderIndex(),
		Kind:       s.Kind().String(),
		ShipmentID: shipmentID,
	}
}

func toDomain(dto StopDTO) (*stop.Stop, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	roundID, err := kernel.UUIDFromBytes(dto.RoundID[:])
	if err != nil {
		return nil, err
	}

	kind, err := stop.ParseKind(dto.Kind)
	if err != nil {
		return nil, err
	}

	var shipmentID *kernel.UUID
	if dto.ShipmentID != nil {
		sID, shipmentErr := kernel.UUIDFromBytes((*dto.ShipmentID)[:])
		if shipmentErr != nil {
			return nil, shipmentErr
		}
		shipmentID = &sID
	}

	return stop.RestoreStop(id, roundID, dto.OrderIndex, kind, shipmentID)
}
