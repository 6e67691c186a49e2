package shipmentrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"roundplanner/internal/adapters/out/postgres/pgutil"
	"roundplanner/internal/core/domain/model/kernel"
	"roundplanner/internal/core/domain/model/shipment"
	"roundplanner/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormShipmentRepository implements ports.ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db *gorm.DB
}

// NewGormShipmentRepository creates a shipment repository bound to db.
func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

// AttachToRound links the shipments to the round and marks them
// assigned-to-round. Only unattached shipments are updated; when some rows
// are left over the cause is looked up to report NotFound or Conflict.
func (r *GormShipmentRepository) AttachToRound(ctx context.Context, roundID kernel.UUID, shipmentIDs []kernel.UUID) error {
	if len(shipmentIDs) == 0 {
		return nil
	}
	if err := roundID.Validate(); err != nil {
		return err
	}

	db := pgutil.Conn(ctx, r.db)
	result := db.Model(&ShipmentDTO{}).
		Where("id = ANY(?) AND round_id IS NULL", pgutil.IDs(shipmentIDs)).
		Updates(map[string]any{
			"round_id": roundID.Bytes(),
			"status":   shipment.AssignedToRound.String(),
		})
	if result.Error != nil {
		return result.Error
	}

	if int(result.RowsAffected) == len(shipmentIDs) {
		return nil
	}
	return r.diagnose(db, roundID, shipmentIDs)
}

func (r *GormShipmentRepository) diagnose(db *gorm.DB, roundID kernel.UUID, shipmentIDs []kernel.UUID) error {
	var rows []ShipmentDTO
	if err := db.Select("id", "round_id").Where("id = ANY(?)", pgutil.IDs(shipmentIDs)).Find(&rows).Error; err != nil {
		return err
	}

	found := make(map[string]ShipmentDTO, len(rows))
	for _, row := range rows {
		found[row.ID.String()] = row
	}

	var problems []error
	for _, id := range shipmentIDs {
		row, ok := found[id.String()]
		switch {
		case !ok:
			problems = append(problems, errs.NewObjectNotFoundError("shipment", id.String()))
		case row.RoundID != nil && *row.RoundID != roundID.Bytes():
			problems = append(problems, errs.NewConflictError("shipment round", id.String()))
		}
	}

	if len(problems) == 0 {
		// Every row is attached to this round already, which only happens
		// when the same id was sent twice.
		return errs.NewConflictError("shipment ID", joinIDs(shipmentIDs))
	}
	return errors.Join(problems...)
}

// GormShipmentDirectory implements ports.ShipmentDirectory over the shared
// shipments table.
type GormShipmentDirectory struct {
	db *gorm.DB
}

// NewGormShipmentDirectory creates a shipment directory bound to db.
func NewGormShipmentDirectory(db *gorm.DB) *GormShipmentDirectory {
	return &GormShipmentDirectory{db: db}
}

// GetDestination returns the shipment's destination, or nil when it has no
// coordinates yet.
func (d *GormShipmentDirectory) GetDestination(ctx context.Context, shipmentID kernel.UUID) (*kernel.Location, error) {
	if err := shipmentID.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	err := d.db.WithContext(ctx).
		Select("id", "destination_lat", "destination_lng").
		First(&dto, "id = ?", shipmentID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", shipmentID.String())
		}
		return nil, err
	}

	return pgutil.Location(dto.DestinationLat, dto.DestinationLng)
}

// BulkSetStatus sets status on all listed shipments in one statement.
func (d *GormShipmentDirectory) BulkSetStatus(ctx context.Context, shipmentIDs []kernel.UUID, status shipment.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if len(shipmentIDs) == 0 {
		return nil
	}

	result := d.db.WithContext(ctx).Model(&ShipmentDTO{}).
		Where("id = ANY(?)", pgutil.IDs(shipmentIDs)).
		Update("status", status.String())
	if result.Error != nil {
		return fmt.Errorf("set shipment status to %s: %w", status, result.Error)
	}
	return nil
}

func joinIDs(ids []kernel.UUID) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, id.String())
	}
	return strings.Join(parts, ",")
}
