// Package shipmentrepo reads and writes the shipments table.
//
// The table belongs to the shipment collaborator; this package touches only
// the columns round sequencing depends on.
package shipmentrepo

import (
	"github.com/google/uuid"
)

// ShipmentDTO is the row of the shipments table.
type ShipmentDTO struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RoundID        *uuid.UUID `gorm:"type:uuid;index"`
	Status         string     `gorm:"type:varchar(32);not null"`
	Label          string     `gorm:"type:varchar(255);not null;default:''"`
	DestinationLat *float64
	DestinationLng *float64
}

// TableName overrides GORM's default naming convention to use "shipments".
func (ShipmentDTO) TableName() string {
	return "shipments"
}
