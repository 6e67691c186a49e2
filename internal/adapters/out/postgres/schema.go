package postgres

import (
	"fmt"

	"roundplanner/internal/adapters/out/postgres/companyrepo"
	"roundplanner/internal/adapters/out/postgres/roundrepo"
	"roundplanner/internal/adapters/out/postgres/shipmentrepo"
	"roundplanner/internal/adapters/out/postgres/stoprepo"

	"gorm.io/gorm"
)

// OrderIndexConstraint keeps order indices unique per round. It is checked
// at commit so that two stops can trade indices inside one transaction.
const OrderIndexConstraint = "uq_stops_round_order"

var constraints = []string{
	`DO $$
BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = '` + OrderIndexConstraint + `') THEN
		ALTER TABLE stops ADD CONSTRAINT ` + OrderIndexConstraint + `
			UNIQUE (round_id, order_index) DEFERRABLE INITIALLY DEFERRED;
	END IF;
END
$$`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_stops_round_shipment
		ON stops (round_id, shipment_id) WHERE shipment_id IS NOT NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_stops_round_pickup
		ON stops (round_id) WHERE kind = 'company-pickup'`,
}

// Migrate creates or updates the tables used by the service.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&roundrepo.RoundDTO{},
		&stoprepo.StopDTO{},
		&shipmentrepo.ShipmentDTO{},
		&companyrepo.CompanyDTO{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, stmt := range constraints {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("apply constraint: %w", err)
		}
	}
	return nil
}
