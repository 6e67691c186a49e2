package ports

import (
	"context"

	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/core/domain/model/shipment"
)

// ShipmentDirectory is the shipment collaborator consumed outside any unit of
// work.
type ShipmentDirectory interface {
	// GetDestination returns the shipment's destination, or nil when it has
	// not been geocoded.
	GetDestination(ctx context.Context, shipmentID kernel.UUID) (*kernel.Location, error)

	// BulkSetStatus sets status on every shipment in shipmentIDs.
	BulkSetStatus(ctx context.Context, shipmentIDs []kernel.UUID, status shipment.Status) error
}

// CompanyDirectory is the company collaborator.
type CompanyDirectory interface {
	// GetAddress returns the company's pickup location, or nil when unknown.
	GetAddress(ctx context.Context, companyID kernel.UUID) (*kernel.Location, error)
}
